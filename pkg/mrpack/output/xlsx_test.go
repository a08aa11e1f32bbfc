package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXRenderer_Format(t *testing.T) {
	renderer, err := Get("xlsx")
	require.NoError(t, err)
	assert.IsType(t, &XLSXRenderer{}, renderer)

	var buf bytes.Buffer
	elements := []Element{
		Table{Rows: [][]string{
			{"Name", "Version"},
			{"Fabric API", "0.86.1"},
		}},
		Set{Title: "missing", Items: []string{"ghost.jar"}},
	}
	require.NoError(t, renderer.Format(&buf, elements))

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Report", "Notes"}, wb.GetSheetList())

	got, err := wb.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", got)

	got, err = wb.GetCellValue("Report", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0.86.1", got)

	got, err = wb.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "missing:", got)

	got, err = wb.GetCellValue("Notes", "A2")
	require.NoError(t, err)
	assert.Equal(t, "  ghost.jar", got)
}

func TestXLSXRenderer_Format_MultipleTables(t *testing.T) {
	var buf bytes.Buffer
	elements := []Element{
		Table{Rows: [][]string{{"A"}, {"a"}}},
		Table{Rows: [][]string{{"B"}, {"b"}}},
	}
	require.NoError(t, (&XLSXRenderer{}).Format(&buf, elements))

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Report", "Report 2"}, wb.GetSheetList())

	got, err := wb.GetCellValue("Report 2", "A2")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestXLSXRenderer_Format_NotesOnly(t *testing.T) {
	var buf bytes.Buffer
	elements := []Element{
		Incompatibilities{Total: 1, GameVersion: "1.20"},
	}
	require.NoError(t, (&XLSXRenderer{}).Format(&buf, elements))

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Notes"}, wb.GetSheetList())

	got, err := wb.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "For version 1.20:", got)
}
