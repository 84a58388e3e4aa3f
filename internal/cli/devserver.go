package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mentorlink-cli/internal/devserver"
	"mentorlink-cli/internal/logging"
)

func newDevServerCmd(app *App) *cobra.Command {
	var addr, dbPath, imageDir string
	var seed, dev bool

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run a local mentorlink API server (sqlite-backed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := app.cfg.Server
			flags := cmd.Flags()
			if flags.Changed("addr") {
				sc.Addr = addr
			}
			if flags.Changed("db") {
				sc.DBPath = dbPath
			}
			if flags.Changed("images") {
				sc.ImageDir = imageDir
			}
			if flags.Changed("seed") {
				sc.Seed = seed
			}

			log, err := logging.NewConsole(app.cfg.Log.Level, dev)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			// main cancels the context on SIGINT/SIGTERM.
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			srv, err := devserver.New(ctx, devserver.Options{
				DBPath:       sc.DBPath,
				ImageDir:     sc.ImageDir,
				JWTSecret:    sc.JWTSecret,
				TokenTTL:     sc.TokenTTL,
				PasswordCost: sc.PasswordCost,
				Seed:         sc.Seed,
				Logger:       log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer srv.Close()

			log.Info("starting dev server",
				zap.String("addr", sc.Addr),
				zap.String("db", sc.DBPath),
				zap.Bool("seed", sc.Seed),
			)
			return srv.ListenAndServe(ctx, sc.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides server.db_path)")
	cmd.Flags().StringVar(&imageDir, "images", "", "Directory for uploaded images (overrides server.image_dir)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Create the test mentor and mentee accounts")
	cmd.Flags().BoolVar(&dev, "dev-log", false, "Human-readable development logging")
	return cmd
}
