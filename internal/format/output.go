package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular values can be rendered as a text table.
type Tabular interface {
	Table() (headers []string, rows [][]string)
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (tables for Tabular values, indented JSON otherwise)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func WriteText(w io.Writer, v any) error {
	switch t := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	case Tabular:
		headers, rows := t.Table()
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "(empty)")
			return err
		}
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		_, err := fmt.Fprintln(w, tbl.String())
		return err
	default:
		return WriteJSON(w, v, true)
	}
}
