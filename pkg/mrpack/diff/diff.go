// Package diff compares two resolved modpacks and reports what changed
// between them: pack metadata, loader dependencies, mod versions, and
// the files shipped outside the index.
package diff

import (
	"sort"
	"strings"

	"github.com/jamesainslie/mrpack/pkg/mrpack/modpack"
	"github.com/jamesainslie/mrpack/pkg/mrpack/output"
)

// Row is one line of a comparison: a key plus its value on each side.
// A side the key is absent from is the empty string.
type Row struct {
	Key string
	Old string
	New string
}

// Changes compares two string maps and reports changed keys, then
// added keys, then removed keys, each group sorted case-insensitively.
// Together the rows cover every key on which the maps disagree.
func Changes(old, new map[string]string) []Row {
	var changed, added, removed []string
	for k, v := range old {
		nv, ok := new[k]
		switch {
		case !ok:
			removed = append(removed, k)
		case nv != v:
			changed = append(changed, k)
		}
	}
	for k := range new {
		if _, ok := old[k]; !ok {
			added = append(added, k)
		}
	}
	sortFold(changed)
	sortFold(added)
	sortFold(removed)

	rows := make([]Row, 0, len(changed)+len(added)+len(removed))
	for _, k := range changed {
		rows = append(rows, Row{Key: k, Old: old[k], New: new[k]})
	}
	for _, k := range added {
		rows = append(rows, Row{Key: k, New: new[k]})
	}
	for _, k := range removed {
		rows = append(rows, Row{Key: k, Old: old[k]})
	}
	return rows
}

// Diff produces the old-versus-new elements for two resolved modpacks:
// a change table covering metadata, dependencies, mods, and override
// files, followed by the union of both packs' unresolved file listings.
func Diff(old, new *modpack.Modpack) []output.Element {
	rows := [][]string{{"Name", "Old", "New"}}
	sections := [][]Row{
		packData(old, new),
		Changes(old.ModVersionsByName(), new.ModVersionsByName()),
		Changes(old.UnknownFiles, new.UnknownFiles),
		Changes(old.OtherFiles, new.OtherFiles),
	}
	for _, section := range sections {
		for _, row := range section {
			rows = append(rows, []string{row.Key, row.Old, row.New})
		}
	}

	return []output.Element{
		output.Table{Rows: rows},
		output.MissingMods(union(old.MissingFiles, new.MissingFiles)),
	}
}

// packData diffs the identifying fields, in a fixed order and only
// when they differ, followed by the loader dependencies.
func packData(old, new *modpack.Modpack) []Row {
	var rows []Row
	if old.Name != new.Name {
		rows = append(rows, Row{Key: "modpack name", Old: old.Name, New: new.Name})
	}
	if old.Version != new.Version {
		rows = append(rows, Row{Key: "modpack version", Old: old.Version, New: new.Version})
	}
	if old.GameVersion != new.GameVersion {
		rows = append(rows, Row{
			Key: "minecraft",
			Old: old.GameVersion.String(),
			New: new.GameVersion.String(),
		})
	}
	return append(rows, Changes(old.Dependencies, new.Dependencies)...)
}

// union merges the lists, dropping duplicates, sorted like the
// rendered output.
func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, lists := range [][]string{a, b} {
		for _, item := range lists {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	sortFold(out)
	return out
}

// sortFold sorts in place, case-insensitively, falling back to byte
// order for case-only ties.
func sortFold(items []string) {
	sort.Slice(items, func(i, j int) bool {
		li, lj := strings.ToLower(items[i]), strings.ToLower(items[j])
		if li != lj {
			return li < lj
		}
		return items[i] < items[j]
	})
}
