// Package output provides the element model for command results and
// renderers for displaying them in various formats (table, csv, json,
// yaml, pretty, xlsx).
//
// Commands do not print text directly. They produce a sequence of
// Elements, typed pieces of output such as a table, a flat list, a
// titled set, or a compatibility summary, and a renderer lays the
// sequence out in its concrete format.
//
// The package uses a registry pattern to allow registration of multiple
// renderer implementations that can be selected at runtime.
//
// Basic usage:
//
//	renderer, err := output.Get("table")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := renderer.Format(&buf, elements); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned by Get when no renderer has been
// registered under the requested name.
var ErrUnknownRenderer = errors.New("unknown renderer")

// Element is a single typed unit of command output. Render returns the
// plain text form; an Element may render to the empty string, in which
// case Render skips it entirely.
type Element interface {
	Render() string
}

// List is a sequence of lines rendered in the order given.
type List struct {
	Items []string
}

// Render joins the lines with newlines. An empty List renders to "".
func (l List) Render() string {
	return strings.Join(l.Items, "\n")
}

// Set is a titled collection of distinct items. Order of Items does not
// matter; rendering sorts them.
type Set struct {
	Title string
	Items []string
}

// Render produces the title followed by one indented line per item,
// sorted case-insensitively. An empty Set renders to "".
func (s Set) Render() string {
	items := sortedFold(s.Items)
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString(":")
	for _, item := range items {
		b.WriteString("\n  ")
		b.WriteString(item)
	}
	return b.String()
}

// Table is a grid of cells. The first row is the header; rows are
// rendered in the order given, with no sorting and no alignment
// guessing.
type Table struct {
	Rows [][]string
}

// Render lays the grid out as a github-flavored markdown table. Every
// column is left-aligned and sized to its widest cell, with headers
// padded by two extra spaces. An empty Table renders to "".
func (t Table) Render() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	header := t.Rows[0]
	widths := make([]int, cols)
	for i := range widths {
		if i < len(header) {
			widths[i] = len(header[i]) + 2
		}
	}
	for _, row := range t.Rows[1:] {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, w := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprintf(&b, "| %-*s ", w, cell)
		}
		b.WriteString("|\n")
	}

	writeRow(header)
	for _, w := range widths {
		b.WriteString("|")
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderCSV produces the grid, header row included, as RFC 4180 style
// comma-separated values without a trailing newline.
func (t Table) RenderCSV() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(t.Rows); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Incompatibilities summarizes which of a modpack's resolved mods do
// not support a particular game version. When the pack also contains
// unresolved jar files the wording is qualified, since those files
// cannot be checked automatically.
type Incompatibilities struct {
	// Total is the number of resolved mods that were checked.
	Total int

	// GameVersion is the version the mods were checked against.
	GameVersion string

	// Mods holds the names of the incompatible mods.
	Mods []string

	// CurseForgeWarning marks packs with unresolved jar files.
	CurseForgeWarning bool
}

// Render produces the per-version summary block.
func (inc Incompatibilities) Render() string {
	var modrinth, warning string
	if inc.CurseForgeWarning {
		modrinth = " Modrinth"
		warning = " (CurseForge mods must be checked manually)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "For version %s:", inc.GameVersion)
	mods := sortedFold(inc.Mods)
	if len(mods) == 0 {
		fmt.Fprintf(&b, "\n  All%s mods are compatible with this version%s", modrinth, warning)
		return b.String()
	}
	fmt.Fprintf(&b, "\n  %d out of %d%s mods are incompatible with this version%s:",
		len(mods), inc.Total, modrinth, warning)
	for _, mod := range mods {
		b.WriteString("\n    ")
		b.WriteString(mod)
	}
	return b.String()
}

// MissingMods builds the standard listing for files the registry could
// not account for. Both the diff and report commands emit it with the
// same wording.
func MissingMods(files []string) Set {
	return Set{
		Title: "Mods supposed to be on Modrinth, but not found",
		Items: files,
	}
}

// sortedFold returns the distinct items sorted case-insensitively,
// breaking case-only ties bytewise.
func sortedFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

// Render renders each element and joins the non-empty results with
// blank lines. Elements that render to "" disappear entirely rather
// than leaving stray separators.
func Render(elements []Element) string {
	rendered := make([]string, 0, len(elements))
	for _, el := range elements {
		if s := el.Render(); s != "" {
			rendered = append(rendered, s)
		}
	}
	return strings.Join(rendered, "\n\n")
}

// RenderCSV renders the first Table in the sequence as CSV. Sequences
// without a table produce "".
func RenderCSV(elements []Element) string {
	for _, el := range elements {
		if t, ok := el.(Table); ok {
			return t.RenderCSV()
		}
	}
	return ""
}

// Renderer is the interface that all output renderers must implement.
type Renderer interface {
	// Format writes the formatted elements to the buffer.
	// It returns an error if formatting fails.
	Format(w *bytes.Buffer, elements []Element) error
}

// RendererFactory is a function that creates a new Renderer instance.
type RendererFactory func() Renderer

// Registry manages renderer registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]RendererFactory
}

// NewRegistry creates a new renderer registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]RendererFactory),
	}
}

// Register adds a renderer factory to the registry.
// It will replace any existing renderer with the same name.
func (r *Registry) Register(name string, factory RendererFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new renderer instance by name.
// It returns an error if the renderer is not found.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRenderer, name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered renderer names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global renderer registry.
var DefaultRegistry = NewRegistry()

// Register adds a renderer factory to the default registry.
func Register(name string, factory RendererFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new renderer instance from the default registry.
func Get(name string) (Renderer, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all renderer names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
