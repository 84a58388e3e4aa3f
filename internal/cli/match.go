package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
)

func newMatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match request commands (requires --token)",
	}
	cmd.AddCommand(newMatchRequestCmd(app))
	cmd.AddCommand(newMatchListCmd(app))
	cmd.AddCommand(newMatchRespondCmd(app))
	cmd.AddCommand(newMatchCancelCmd(app))
	return cmd
}

func newMatchRequestCmd(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "request <mentor-email>",
		Short: "Send a match request to a mentor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := model.MatchInput{MentorEmail: strings.TrimSpace(args[0]), Message: message}
			if err := forms.ValidateMatchTarget(in); err != nil {
				return writeErr(cmd, err)
			}
			r, err := app.api.RequestMatch(cmd.Context(), token, in)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgMatchFailed))
			}
			return writeData(cmd, app, r, matchRecord(r))
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Message to the mentor")
	return cmd
}

func newMatchListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List match requests (received for mentors, sent for mentees)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rs, err := app.api.ListMatchRequests(cmd.Context(), token)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgMatchesFailed))
			}
			if rs == nil {
				rs = []model.MatchRequest{}
			}
			return writeData(cmd, app, rs, matchRows(rs))
		},
	}
}

func newMatchRespondCmd(app *App) *cobra.Command {
	var accept, reject bool

	cmd := &cobra.Command{
		Use:   "respond <mentee-email>",
		Short: "Accept or reject a pending request (mentors only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if accept == reject {
				return writeErr(cmd, errors.New("exactly one of --accept or --reject is required"))
			}
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := model.RespondInput{MenteeEmail: strings.TrimSpace(args[0]), Accept: accept}
			r, err := app.api.RespondMatch(cmd.Context(), token, in)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgRespondFailed))
			}
			return writeData(cmd, app, r, matchRecord(r))
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "Accept the request")
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the request")
	cmd.MarkFlagsMutuallyExclusive("accept", "reject")
	return cmd
}

func newMatchCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel your pending request (mentees only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := app.api.CancelMatch(cmd.Context(), token); err != nil {
				return writeErr(cmd, describe(err, forms.MsgCancelFailed))
			}
			return writeData(cmd, app, map[string]bool{"canceled": true}, forms.MsgMatchCanceled)
		},
	}
}
