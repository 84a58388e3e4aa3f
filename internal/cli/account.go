package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
)

func newSignupCmd(app *App) *cobra.Command {
	var in model.SignupInput
	var role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Email = strings.TrimSpace(in.Email)
			in.Name = strings.TrimSpace(in.Name)
			in.Role = model.ParseRole(role)
			if err := forms.ValidateSignup(in); err != nil {
				return writeErr(cmd, err)
			}
			if err := app.api.Register(cmd.Context(), in); err != nil {
				return writeErr(cmd, describe(err, forms.MsgSignupFailed))
			}
			out := map[string]string{"email": in.Email, "role": string(in.Role)}
			return writeData(cmd, app, out, forms.MsgSignupNotice)
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", envOr("MENTORLINK_PASSWORD", ""), "Password (min 6 characters)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(model.RoleMentee), "Role (mentor|mentee)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var in model.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for an access token",
		Long: strings.TrimSpace(`
Prints the access token. The token is not stored anywhere; pass it to later commands with
--token or MENTORLINK_TOKEN.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Email = strings.TrimSpace(in.Email)
			if err := forms.ValidateLogin(in); err != nil {
				return writeErr(cmd, err)
			}
			tok, err := app.api.Authenticate(cmd.Context(), in.Email, in.Password)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgLoginFailed))
			}
			return writeData(cmd, app, tok, tok.AccessToken)
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", envOr("MENTORLINK_PASSWORD", ""), "Password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
