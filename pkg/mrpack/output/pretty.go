package output

import (
	"bytes"
	"fmt"
	"strings"
)

// PrettyRenderer formats elements with colors and styling using
// lipgloss. It produces a visually appealing output suitable for
// terminal display.
type PrettyRenderer struct{}

// Format writes the formatted output to the buffer.
func (r *PrettyRenderer) Format(w *bytes.Buffer, elements []Element) error {
	blocks := make([]string, 0, len(elements))
	for _, el := range elements {
		var block string
		switch el := el.(type) {
		case Table:
			block = r.formatTable(el)
		case Set:
			block = r.formatSet(el)
		case Incompatibilities:
			block = r.formatIncompatibilities(el)
		default:
			block = el.Render()
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	w.WriteString(strings.Join(blocks, "\n\n"))
	return nil
}

// formatTable lays the grid out with two-space gutters, a styled
// header row, and a rule between header and data. The last column is
// left unpadded to avoid trailing whitespace.
func (r *PrettyRenderer) formatTable(t Table) string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range t.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	header := t.Rows[0]
	for i, w := range widths {
		var cell string
		if i < len(header) {
			cell = header[i]
		}
		if i == len(widths)-1 {
			sb.WriteString(TableHeaderStyle.Render(cell))
			break
		}
		sb.WriteString(TableHeaderStyle.Render(padRight(cell, w)))
		sb.WriteString("  ")
	}
	sb.WriteString("\n")

	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	sb.WriteString(RuleStyle.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows[1:] {
		for i, w := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				sb.WriteString(r.styleCell(cell, 0))
				break
			}
			sb.WriteString(r.styleCell(cell, w))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// styleCell colors well-known cell values and pads to width.
func (r *PrettyRenderer) styleCell(cell string, width int) string {
	padded := padRight(cell, width)
	switch cell {
	case "yes":
		return SuccessStyle.Render(padded)
	case "no":
		return ErrorStyle.Render(padded)
	case "check manually":
		return WarningStyle.Render(padded)
	default:
		return ValueStyle.Render(padded)
	}
}

// formatSet renders a titled bullet list.
func (r *PrettyRenderer) formatSet(s Set) string {
	items := sortedFold(s.Items)
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(s.Title + ":"))
	for _, item := range items {
		sb.WriteString("\n  ")
		sb.WriteString(BulletStyle.Render("• "))
		sb.WriteString(ValueStyle.Render(item))
	}
	return sb.String()
}

// formatIncompatibilities renders a per-version compatibility summary.
func (r *PrettyRenderer) formatIncompatibilities(inc Incompatibilities) string {
	var modrinth, warning string
	if inc.CurseForgeWarning {
		modrinth = " Modrinth"
		warning = " (CurseForge mods must be checked manually)"
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("For version %s:", inc.GameVersion)))
	sb.WriteString("\n")

	mods := sortedFold(inc.Mods)
	if len(mods) == 0 {
		sb.WriteString(SuccessStyle.Render(fmt.Sprintf(
			"  All%s mods are compatible with this version%s", modrinth, warning)))
		return sb.String()
	}

	sb.WriteString(WarningStyle.Render(fmt.Sprintf(
		"  %d out of %d%s mods are incompatible with this version%s:",
		len(mods), inc.Total, modrinth, warning)))
	for _, mod := range mods {
		sb.WriteString("\n    ")
		sb.WriteString(ErrorStyle.Render(mod))
	}
	return sb.String()
}

// padRight pads a string with spaces on the right to achieve the
// desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func init() {
	Register("pretty", func() Renderer {
		return &PrettyRenderer{}
	})
}

// Ensure PrettyRenderer implements Renderer.
var _ Renderer = (*PrettyRenderer)(nil)
