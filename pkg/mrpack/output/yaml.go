package output

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// yamlOutput represents the full YAML output structure.
type yamlOutput struct {
	Elements []interface{} `yaml:"elements"`
}

// yamlTable represents a table element in YAML output.
type yamlTable struct {
	Kind   string     `yaml:"kind"`
	Header []string   `yaml:"header"`
	Rows   [][]string `yaml:"rows"`
}

// yamlList represents a list element in YAML output.
type yamlList struct {
	Kind  string   `yaml:"kind"`
	Items []string `yaml:"items"`
}

// yamlSet represents a set element in YAML output.
type yamlSet struct {
	Kind  string   `yaml:"kind"`
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// yamlIncompatibilities represents a compatibility summary in YAML
// output.
type yamlIncompatibilities struct {
	Kind              string   `yaml:"kind"`
	GameVersion       string   `yaml:"game_version"`
	Total             int      `yaml:"total"`
	Incompatible      []string `yaml:"incompatible"`
	CurseForgeWarning bool     `yaml:"curseforge_warning"`
}

// YAMLRenderer formats elements as YAML.
// It produces the same structure as JSONRenderer but in YAML format.
type YAMLRenderer struct{}

// Format writes the formatted output to the buffer.
func (r *YAMLRenderer) Format(w *bytes.Buffer, elements []Element) error {
	output := r.buildOutput(elements)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return encoder.Close()
}

// buildOutput converts the element sequence to the YAML output
// structure.
func (r *YAMLRenderer) buildOutput(elements []Element) yamlOutput {
	docs := make([]interface{}, 0, len(elements))
	for _, el := range elements {
		switch el := el.(type) {
		case Table:
			doc := yamlTable{Kind: "table", Header: []string{}, Rows: [][]string{}}
			if len(el.Rows) > 0 {
				doc.Header = el.Rows[0]
				doc.Rows = el.Rows[1:]
			}
			docs = append(docs, doc)
		case List:
			items := el.Items
			if items == nil {
				items = []string{}
			}
			docs = append(docs, yamlList{Kind: "list", Items: items})
		case Set:
			docs = append(docs, yamlSet{
				Kind:  "set",
				Title: el.Title,
				Items: sortedFold(el.Items),
			})
		case Incompatibilities:
			docs = append(docs, yamlIncompatibilities{
				Kind:              "incompatibilities",
				GameVersion:       el.GameVersion,
				Total:             el.Total,
				Incompatible:      sortedFold(el.Mods),
				CurseForgeWarning: el.CurseForgeWarning,
			})
		default:
			docs = append(docs, yamlList{Kind: "list", Items: []string{el.Render()}})
		}
	}
	return yamlOutput{Elements: docs}
}

func init() {
	Register("yaml", func() Renderer {
		return &YAMLRenderer{}
	})
}

// Ensure YAMLRenderer implements Renderer.
var _ Renderer = (*YAMLRenderer)(nil)
