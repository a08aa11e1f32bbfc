package output

import (
	"bytes"
)

// TableRenderer writes elements as plain text. Tables come out in
// github markdown layout and the remaining elements as indented text
// blocks, separated by blank lines. This is the default renderer.
type TableRenderer struct{}

// Format writes the formatted output to the buffer.
func (r *TableRenderer) Format(w *bytes.Buffer, elements []Element) error {
	w.WriteString(Render(elements))
	return nil
}

func init() {
	Register("table", func() Renderer {
		return &TableRenderer{}
	})
}

// Ensure TableRenderer implements Renderer.
var _ Renderer = (*TableRenderer)(nil)

// CSVRenderer writes the first table element as comma-separated values
// with proper quoting, using encoding/csv for RFC 4180 compliant
// output. Elements other than the first table are dropped, so the
// result is machine-readable without any stripping.
type CSVRenderer struct{}

// Format writes the formatted output to the buffer.
func (r *CSVRenderer) Format(w *bytes.Buffer, elements []Element) error {
	w.WriteString(RenderCSV(elements))
	return nil
}

func init() {
	Register("csv", func() Renderer {
		return &CSVRenderer{}
	})
}

// Ensure CSVRenderer implements Renderer.
var _ Renderer = (*CSVRenderer)(nil)
