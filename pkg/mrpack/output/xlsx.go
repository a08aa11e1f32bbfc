package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const notesSheet = "Notes"

// XLSXRenderer formats elements as an Excel workbook. Each table gets
// its own sheet and the remaining elements land on a final Notes
// sheet. The buffer receives the binary workbook, so this renderer is
// meant for files rather than terminals.
type XLSXRenderer struct{}

// Format writes the workbook to the buffer.
func (r *XLSXRenderer) Format(w *bytes.Buffer, elements []Element) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("building header style: %w", err)
	}

	tables := 0
	var notes []string
	for _, el := range elements {
		if t, ok := el.(Table); ok {
			tables++
			if err := r.writeTable(f, t, tables, headerStyle); err != nil {
				return err
			}
			continue
		}
		if s := el.Render(); s != "" {
			notes = append(notes, s)
		}
	}
	if len(notes) > 0 {
		if err := r.writeNotes(f, notes, tables == 0); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// writeTable puts one table on its own sheet with a styled header row.
func (r *XLSXRenderer) writeTable(f *excelize.File, t Table, n int, headerStyle int) error {
	name := "Report"
	if n > 1 {
		name = fmt.Sprintf("Report %d", n)
	}
	if n == 1 {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("naming sheet %s: %w", name, err)
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("adding sheet %s: %w", name, err)
	}

	for i, row := range t.Rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", j+1, i+1, err)
			}
			if err := f.SetCellValue(name, ref, cell); err != nil {
				return fmt.Errorf("writing cell %s: %w", ref, err)
			}
		}
	}
	if len(t.Rows) > 0 {
		if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("styling header row: %w", err)
		}
	}

	for j, width := range columnWidths(t.Rows) {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", j+1, err)
		}
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}
	return nil
}

// writeNotes collects the rendered non-table elements on one sheet,
// one line per row with a blank row between elements. When the
// workbook has no report sheet yet, the default sheet is reused.
func (r *XLSXRenderer) writeNotes(f *excelize.File, notes []string, rename bool) error {
	if rename {
		if err := f.SetSheetName("Sheet1", notesSheet); err != nil {
			return fmt.Errorf("naming sheet %s: %w", notesSheet, err)
		}
	} else if _, err := f.NewSheet(notesSheet); err != nil {
		return fmt.Errorf("adding sheet %s: %w", notesSheet, err)
	}

	row := 1
	for i, note := range notes {
		if i > 0 {
			row++
		}
		for _, line := range strings.Split(note, "\n") {
			ref, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("cell 1,%d: %w", row, err)
			}
			if err := f.SetCellValue(notesSheet, ref, line); err != nil {
				return fmt.Errorf("writing cell %s: %w", ref, err)
			}
			row++
		}
	}
	if err := f.SetColWidth(notesSheet, "A", "A", 80); err != nil {
		return fmt.Errorf("sizing column A: %w", err)
	}
	return nil
}

// columnWidths sizes each column to its longest cell, within bounds
// that keep the sheet readable.
func columnWidths(rows [][]string) []float64 {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]float64, cols)
	for _, row := range rows {
		for j, cell := range row {
			if w := float64(len(cell) + 2); w > widths[j] {
				widths[j] = w
			}
		}
	}
	for j, width := range widths {
		if width < 10 {
			widths[j] = 10
		} else if width > 60 {
			widths[j] = 60
		}
	}
	return widths
}

func init() {
	Register("xlsx", func() Renderer {
		return &XLSXRenderer{}
	})
}

// Ensure XLSXRenderer implements Renderer.
var _ Renderer = (*XLSXRenderer)(nil)
