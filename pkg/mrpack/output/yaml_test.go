package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLRenderer_Format(t *testing.T) {
	renderer, err := Get("yaml")
	require.NoError(t, err)
	assert.IsType(t, &YAMLRenderer{}, renderer)

	var buf bytes.Buffer
	elements := []Element{
		Table{Rows: [][]string{{"A"}, {"a"}}},
		Incompatibilities{Total: 2, GameVersion: "1.19.4"},
	}
	require.NoError(t, renderer.Format(&buf, elements))

	var doc struct {
		Elements []map[string]interface{} `yaml:"elements"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Elements, 2)

	assert.Equal(t, "table", doc.Elements[0]["kind"])
	assert.Equal(t, []interface{}{"A"}, doc.Elements[0]["header"])

	inc := doc.Elements[1]
	assert.Equal(t, "incompatibilities", inc["kind"])
	assert.Equal(t, "1.19.4", inc["game_version"])
	assert.Equal(t, 2, inc["total"])
	assert.Equal(t, false, inc["curseforge_warning"])
}

func TestYAMLRenderer_Format_SortsSetItems(t *testing.T) {
	var buf bytes.Buffer
	elements := []Element{Set{Title: "files", Items: []string{"b.jar", "A.jar"}}}
	require.NoError(t, (&YAMLRenderer{}).Format(&buf, elements))

	var doc struct {
		Elements []struct {
			Kind  string   `yaml:"kind"`
			Title string   `yaml:"title"`
			Items []string `yaml:"items"`
		} `yaml:"elements"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "set", doc.Elements[0].Kind)
	assert.Equal(t, "files", doc.Elements[0].Title)
	assert.Equal(t, []string{"A.jar", "b.jar"}, doc.Elements[0].Items)
}
