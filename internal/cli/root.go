package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mentorlink-cli/internal/api"
	"mentorlink-cli/internal/config"
	"mentorlink-cli/internal/directory"
	"mentorlink-cli/internal/format"
	"mentorlink-cli/internal/logging"
	"mentorlink-cli/internal/session"
	"mentorlink-cli/internal/tui"
)

type App struct {
	APIURL     string
	Token      string
	PrettyJSON bool
	Format     string

	cfg *config.Config
	log *zap.Logger
	// api is shared by every command of one invocation.
	api *api.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "mentorlink",
		Short:        "Mentor/mentee matching client (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  mentorlink

  # Scriptable commands
  mentorlink login --email mentee@test.com --password mentee1234
  MENTORLINK_TOKEN=... mentorlink match request mentor@test.com --message "hello"

  # Direct mentor lookup (shortcut for: mentorlink mentors show <email>)
  mentorlink mentor@test.com
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("MENTORLINK_API_URL", ""), "API base URL (overrides api.base_url)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("MENTORLINK_TOKEN", ""), "Access token for authenticated commands")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MENTORLINK_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newMentorsCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newMatchCmd(app))
	cmd.AddCommand(newDevServerCmd(app))

	return cmd
}

// init loads configuration once and builds the shared logger and client.
func (app *App) init() error {
	if app.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if u := strings.TrimSpace(app.APIURL); u != "" {
		cfg.API.BaseURL = u
	}
	log, err := logging.New(cfg.Log.DebugPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.log = log
	app.api = api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  log.Named("api"),
	})
	return nil
}

func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// A token passed on the command line starts the session already signed in.
	h := session.NewHolder()
	if t := strings.TrimSpace(app.Token); t != "" {
		h.SetCredential(t)
	}
	return tui.Run(ctx, tui.Options{
		API:           app.api,
		Session:       h,
		Logger:        app.log.Named("tui"),
		NotifyTimeout: app.cfg.TUI.NotifyTimeout,
		Locale:        directory.ParseLocale(app.cfg.TUI.Locale),
		Glyphs:        app.cfg.TUI.Glyphs,
	})
}

func requireToken(app *App) (string, error) {
	t := strings.TrimSpace(app.Token)
	if t == "" {
		return "", errNotAuthenticated
	}
	return t, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeData prints data in the {"data": ...} envelope, or text in --format text.
func writeData(cmd *cobra.Command, app *App, data, text any) error {
	if app.Format == "text" {
		return writeOut(cmd, app, text)
	}
	return writeOut(cmd, app, map[string]any{"data": data})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
