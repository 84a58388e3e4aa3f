// Package tui is the interactive terminal client: a mentor directory, account forms, the
// profile editor and the match request board.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/session"
)

type Options struct {
	API     forms.API
	Session *session.Holder
	Logger  *zap.Logger

	NotifyTimeout time.Duration
	Locale        language.Tag
	// Glyphs is "unicode" or "ascii".
	Glyphs string
}

func Run(ctx context.Context, opts Options) error {
	if opts.API == nil {
		return errors.New("tui: no API client")
	}
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, appOptions{
		API:           opts.API,
		Session:       opts.Session,
		Logger:        opts.Logger,
		NotifyTimeout: opts.NotifyTimeout,
		Locale:        opts.Locale,
	})
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
