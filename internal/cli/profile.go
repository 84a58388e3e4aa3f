package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/session"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands (requires --token)",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileEditCmd(app))
	cmd.AddCommand(newProfileImageCmd(app))
	cmd.AddCommand(newProfileImageURLCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := app.api.FetchProfile(cmd.Context(), token)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgProfileFetchFailed))
			}
			return writeData(cmd, app, p, profileRecord(p))
		},
	}
}

func newProfileEditCmd(app *App) *cobra.Command {
	var name, intro, techStack, role string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update profile fields; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, err := app.api.FetchProfile(cmd.Context(), token)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgProfileFetchFailed))
			}

			up := model.UpdateFromProfile(cur)
			flags := cmd.Flags()
			if flags.Changed("name") {
				up.Name = strings.TrimSpace(name)
			}
			if flags.Changed("intro") {
				up.Intro = intro
			}
			if flags.Changed("tech-stack") {
				up.TechStack = strings.TrimSpace(techStack)
			}
			if flags.Changed("role") {
				up.Role = model.ParseRole(role)
			}
			if err := forms.ValidateProfile(up); err != nil {
				return writeErr(cmd, err)
			}

			if _, err := app.api.UpdateProfile(cmd.Context(), token, up); err != nil {
				return writeErr(cmd, describe(err, forms.MsgProfileSaveFailed))
			}
			p := up.Apply(cur)
			return writeData(cmd, app, p, profileRecord(p))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&intro, "intro", "", "Introduction (markdown)")
	cmd.Flags().StringVar(&techStack, "tech-stack", "", "Comma-separated tech stack")
	cmd.Flags().StringVar(&role, "role", "", "Role (mentor|mentee)")
	return cmd
}

func newProfileImageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "image <file>",
		Short: "Upload a profile image (.jpg or .png, at most 1 MiB)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := app.api.FetchProfile(cmd.Context(), token)
			if err != nil {
				return writeErr(cmd, describe(err, forms.MsgProfileFetchFailed))
			}
			h := session.NewHolder()
			h.SetCredential(token)
			b := forms.UploadImage(app.api, h, time.Now)
			b.Draft = forms.ImageDraft{Path: args[0], Email: p.Email}
			if err := runBinding(cmd.Context(), &b); err != nil {
				return writeErr(cmd, err)
			}
			res, _ := b.Value()
			u := res.URL
			return writeData(cmd, app, map[string]string{"url": u}, u)
		},
	}
}

func newProfileImageURLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "image-url [email]",
		Short: "Print the profile image URL (defaults to your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var email string
			if len(args) == 1 {
				email = strings.TrimSpace(args[0])
			} else {
				token, err := requireToken(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				p, err := app.api.FetchProfile(cmd.Context(), token)
				if err != nil {
					return writeErr(cmd, describe(err, forms.MsgProfileFetchFailed))
				}
				email = p.Email
			}
			u := app.api.ProfileImageURL(email)
			return writeData(cmd, app, map[string]string{"url": u}, u)
		},
	}
}
