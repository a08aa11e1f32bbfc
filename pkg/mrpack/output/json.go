package output

import (
	"bytes"
	"encoding/json"
)

// jsonOutput represents the full JSON output structure.
type jsonOutput struct {
	Elements []interface{} `json:"elements"`
}

// jsonTable represents a table element in JSON output. The header is
// split off from the data rows so consumers do not have to know the
// first-row convention.
type jsonTable struct {
	Kind   string     `json:"kind"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// jsonList represents a list element in JSON output.
type jsonList struct {
	Kind  string   `json:"kind"`
	Items []string `json:"items"`
}

// jsonSet represents a set element in JSON output.
type jsonSet struct {
	Kind  string   `json:"kind"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// jsonIncompatibilities represents a compatibility summary in JSON
// output.
type jsonIncompatibilities struct {
	Kind              string   `json:"kind"`
	GameVersion       string   `json:"game_version"`
	Total             int      `json:"total"`
	Incompatible      []string `json:"incompatible"`
	CurseForgeWarning bool     `json:"curseforge_warning"`
}

// JSONRenderer formats elements as a single indented JSON document.
// Every element appears as a typed object with a "kind" discriminator.
type JSONRenderer struct{}

// Format writes the formatted output to the buffer.
func (r *JSONRenderer) Format(w *bytes.Buffer, elements []Element) error {
	output := r.buildOutput(elements)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildOutput converts the element sequence to the JSON output
// structure.
func (r *JSONRenderer) buildOutput(elements []Element) jsonOutput {
	docs := make([]interface{}, 0, len(elements))
	for _, el := range elements {
		switch el := el.(type) {
		case Table:
			doc := jsonTable{Kind: "table", Header: []string{}, Rows: [][]string{}}
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
			docs = append(docs, jsonList{Kind: "list", Items: items})
		case Set:
			docs = append(docs, jsonSet{
				Kind:  "set",
				Title: el.Title,
				Items: sortedFold(el.Items),
			})
		case Incompatibilities:
			docs = append(docs, jsonIncompatibilities{
				Kind:              "incompatibilities",
				GameVersion:       el.GameVersion,
				Total:             el.Total,
				Incompatible:      sortedFold(el.Mods),
				CurseForgeWarning: el.CurseForgeWarning,
			})
		default:
			docs = append(docs, jsonList{Kind: "list", Items: []string{el.Render()}})
		}
	}
	return jsonOutput{Elements: docs}
}

func init() {
	Register("json", func() Renderer {
		return &JSONRenderer{}
	})
}

// Ensure JSONRenderer implements Renderer.
var _ Renderer = (*JSONRenderer)(nil)
