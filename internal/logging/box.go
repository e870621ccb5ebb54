package logging

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Box renders message inside a rounded border, optionally with a header row.
// Used for failed-query dumps and subprocess banners.
func Box(header, message string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if header != "" {
		t.AppendHeader(table.Row{header})
	}
	t.AppendRow(table.Row{message})
	return t.Render()
}
