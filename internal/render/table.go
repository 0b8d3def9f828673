package render

import (
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/oidtree/internal/report"
)

// Sections renders each section as a title followed by two aligned columns.
func Sections(sections []report.Section, cfg *Config) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(paint(cfg, color.OpBold, s.Title))
		sb.WriteString("\n")

		rows := s.Rows
		if len(s.Columns) >= 2 {
			rows = append([]report.Row{{Label: s.Columns[0], Value: s.Columns[1]}}, rows...)
		}

		width := 0
		for _, r := range rows {
			if w := runewidth.StringWidth(r.Label); w > width {
				width = w
			}
		}
		for j, r := range rows {
			label := runewidth.FillRight(r.Label, width)
			if j == 0 && len(s.Columns) >= 2 {
				sb.WriteString("  " + paint(cfg, color.OpBold, label) + "  " + paint(cfg, color.OpBold, r.Value) + "\n")
				continue
			}
			sb.WriteString("  " + paint(cfg, color.FgCyan, label) + "  " + r.Value + "\n")
		}
	}
	return sb.String()
}

// WriteSections writes Sections(sections, cfg) to w.
func WriteSections(w io.Writer, sections []report.Section, cfg *Config) error {
	_, err := io.WriteString(w, Sections(sections, cfg))
	return err
}
