package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRenderer_Format(t *testing.T) {
	renderer, err := Get("table")
	require.NoError(t, err)
	assert.IsType(t, &TableRenderer{}, renderer)

	var buf bytes.Buffer
	elements := []Element{
		Table{Rows: [][]string{{"A", "B"}, {"a", "b"}}},
		Incompatibilities{Total: 2, GameVersion: "1.20"},
	}
	require.NoError(t, renderer.Format(&buf, elements))

	want := `| A   | B   |
|-----|-----|
| a   | b   |

For version 1.20:
  All mods are compatible with this version`
	assert.Equal(t, want, buf.String())
}

func TestTableRenderer_Format_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableRenderer{}).Format(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestCSVRenderer_Format(t *testing.T) {
	renderer, err := Get("csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVRenderer{}, renderer)

	var buf bytes.Buffer
	elements := []Element{
		Set{Title: "skipped", Items: []string{"x"}},
		Table{Rows: [][]string{{"A", "B"}, {"a", "b"}, {"c", "d"}}},
	}
	require.NoError(t, renderer.Format(&buf, elements))
	assert.Equal(t, "A,B\na,b\nc,d", buf.String())
}

func TestCSVRenderer_Format_NoTable(t *testing.T) {
	var buf bytes.Buffer
	elements := []Element{List{Items: []string{"x"}}}
	require.NoError(t, (&CSVRenderer{}).Format(&buf, elements))
	assert.Empty(t, buf.String())
}
