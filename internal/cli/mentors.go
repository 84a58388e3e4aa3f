package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"mentorlink-cli/internal/api"
	"mentorlink-cli/internal/directory"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
)

func newMentorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentors",
		Short: "Mentor directory commands",
	}
	cmd.AddCommand(newMentorsListCmd(app))
	cmd.AddCommand(newMentorsShowCmd(app))
	return cmd
}

func newMentorsListCmd(app *App) *cobra.Command {
	var filter, sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mentors",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := directory.ParseSortKey(sortBy)
			if err != nil {
				return writeErr(cmd, err)
			}
			src, err := app.api.ListMentors(cmd.Context(), api.MentorQuery{})
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgMentorsFailed))
			}
			out := directory.Derive(src, filter, key, directory.ParseLocale(app.cfg.TUI.Locale))
			if out == nil {
				out = []model.Mentor{}
			}
			return writeData(cmd, app, out, mentorRows(out))
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive substring of name or tech stack")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by (name|tech_stack); default keeps server order")
	return cmd
}

func newMentorsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <email>",
		Short: "Show one mentor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			src, err := app.api.ListMentors(cmd.Context(), api.MentorQuery{})
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgMentorsFailed))
			}
			for _, m := range src {
				if strings.EqualFold(m.Email, email) {
					return writeData(cmd, app, m, mentorRecord(m))
				}
			}
			return writeErr(cmd, errNotFound("mentor", email))
		},
	}
	return cmd
}
