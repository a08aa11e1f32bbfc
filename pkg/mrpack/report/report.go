// Package report assembles the compatibility listing for a resolved
// modpack: one table row per dependency, mod, and override file, plus
// a per-version summary of which mods would break there.
package report

import (
	"sort"
	"strings"

	"github.com/jamesainslie/mrpack/pkg/mrpack/gamever"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modpack"
	"github.com/jamesainslie/mrpack/pkg/mrpack/output"
)

// Fixed leading columns of the report table. One column per checked
// game version follows them.
const (
	colName             = "Name"
	colLink             = "Link"
	colInstalledVersion = "Installed version"
	colClient           = "On client"
	colServer           = "On server"
	colLatest           = "Latest game version"
)

const fixedColumns = 6

// Build produces the report elements for one resolved modpack: the
// compatibility table, the listing of files the registry did not
// recognize, and one summary per checked game version. The checked set
// is the pack's own game version unioned with the supplied ones,
// ascending.
func Build(pack *modpack.Modpack, versions []gamever.Version) []output.Element {
	checked := gamever.NewSet(pack.GameVersion)
	for _, v := range versions {
		checked.Add(v)
	}
	ascending := checked.Sorted()

	rows := [][]string{headers(ascending)}
	rows = append(rows, packRows(pack, len(ascending))...)
	resolved, incompatible := modRows(pack, ascending)
	rows = append(rows, resolved...)
	rows = append(rows, unknownRows(pack, len(ascending))...)
	rows = append(rows, otherRows(pack, len(ascending))...)

	elements := []output.Element{
		output.Table{Rows: rows},
		output.MissingMods(pack.MissingFiles),
	}
	warn := len(pack.UnknownFiles) > 0
	for _, v := range ascending {
		elements = append(elements, output.Incompatibilities{
			Total:             len(pack.Mods),
			GameVersion:       v.String(),
			Mods:              incompatible[v],
			CurseForgeWarning: warn,
		})
	}
	return elements
}

func headers(versions []gamever.Version) []string {
	h := []string{colName, colLink, colInstalledVersion, colClient, colServer, colLatest}
	for _, v := range versions {
		h = append(h, v.String())
	}
	return h
}

// packRows emits the identity and platform rows, then one row per
// declared dependency sorted case-insensitively by name.
func packRows(pack *modpack.Modpack, versions int) [][]string {
	rows := [][]string{
		metaRow("modpack: "+pack.Name, pack.Version, versions),
		metaRow("minecraft", pack.GameVersion.String(), versions),
	}
	keys := make([]string, 0, len(pack.Dependencies))
	for k := range pack.Dependencies {
		keys = append(keys, k)
	}
	sortFold(keys)
	for _, k := range keys {
		rows = append(rows, metaRow(k, pack.Dependencies[k], versions))
	}
	return rows
}

// metaRow fills only the name and installed-version cells.
func metaRow(name, version string, versions int) []string {
	row := make([]string, fixedColumns+versions)
	row[0] = name
	row[2] = version
	return row
}

// modRows emits one row per resolved mod, sorted case-insensitively by
// display name, and accumulates per checked version the names of the
// mods that do not support it. Requirement cells show the effective
// environment, overrides included.
func modRows(pack *modpack.Modpack, versions []gamever.Version) ([][]string, map[gamever.Version][]string) {
	incompatible := make(map[gamever.Version][]string, len(versions))
	mods := pack.SortedMods()
	rows := make([][]string, 0, len(mods))
	for _, mod := range mods {
		row := []string{
			mod.Name,
			mod.Link,
			mod.Version,
			mod.Env.Client.String(),
			mod.Env.Server.String(),
			mod.LatestGameVersion().String(),
		}
		for _, v := range versions {
			if mod.CompatibleWith(v) {
				row = append(row, "yes")
				continue
			}
			row = append(row, "no")
			incompatible[v] = append(incompatible[v], mod.Name)
		}
		rows = append(rows, row)
	}
	return rows, incompatible
}

// unknownRows emits one row per jar that exists only in the override
// trees, sorted by path. Nothing can be resolved for these, so every
// requirement cell is "unknown" and every compatibility cell is a
// "check manually" sentinel.
func unknownRows(pack *modpack.Modpack, versions int) [][]string {
	paths := make([]string, 0, len(pack.UnknownFiles))
	for path := range pack.UnknownFiles {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		row := []string{
			path,
			"unknown - probably CurseForge",
			pack.UnknownFiles[path],
			"unknown",
			"unknown",
			"unknown",
		}
		for i := 0; i < versions; i++ {
			row = append(row, "check manually")
		}
		rows = append(rows, row)
	}
	return rows
}

// otherRows emits one row per non-jar override file, sorted by path,
// with the fingerprint in the installed-version cell and everything
// else blank.
func otherRows(pack *modpack.Modpack, versions int) [][]string {
	paths := make([]string, 0, len(pack.OtherFiles))
	for path := range pack.OtherFiles {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		row := make([]string, fixedColumns+versions)
		row[0] = path
		row[1] = "non-mod file"
		row[2] = pack.OtherFiles[path]
		rows = append(rows, row)
	}
	return rows
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
