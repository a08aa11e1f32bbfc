// Package modpack parses Modrinth modpack archives and reconciles
// them against the registry into queryable Modpack values. Parsing
// (ReadArchive) needs no network; resolution (Resolve, Load) performs
// exactly two bulk registry lookups however many archives it is
// given.
package modpack

import (
	"sort"
	"strings"

	"github.com/jamesainslie/mrpack/pkg/mrpack/gamever"
)

// Modpack is the reconciled form of one mrpack archive. It is built
// once by the resolver and not mutated afterwards.
type Modpack struct {
	// Name and Version identify the modpack.
	Name    string
	Version string

	// GameVersion is the pack's declared target game version.
	GameVersion gamever.Version

	// Dependencies is the declared dependency map, minus the
	// reserved minecraft key.
	Dependencies map[string]string

	// Mods maps project ids to resolved mods. Identity for mod
	// membership is the project id; display ordering is by name.
	Mods map[string]Mod

	// MissingFiles lists the jar basenames of indexed hashes the
	// registry did not recognize, sorted and deduplicated. Every
	// indexed hash lands either here or in Mods.
	MissingFiles []string

	// UnknownFiles and OtherFiles carry the archive's override-tree
	// entries verbatim, path to fingerprint.
	UnknownFiles map[string]string
	OtherFiles   map[string]string
}

// SortedMods returns the pack's mods ordered by display name,
// case-insensitively. Mods sharing a folded name keep a stable order
// by project id.
func (p *Modpack) SortedMods() []Mod {
	ids := make([]string, 0, len(p.Mods))
	for id := range p.Mods {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	mods := make([]Mod, 0, len(ids))
	for _, id := range ids {
		mods = append(mods, p.Mods[id])
	}
	sort.SliceStable(mods, func(i, j int) bool {
		return strings.ToLower(mods[i].Name) < strings.ToLower(mods[j].Name)
	})
	return mods
}

// ModVersionsByName re-keys the pack's mods from project id to display
// name, valued by installed version. Two projects sharing a name
// collapse to one entry; iterating project ids in sorted order makes
// the surviving entry deterministic.
func (p *Modpack) ModVersionsByName() map[string]string {
	ids := make([]string, 0, len(p.Mods))
	for id := range p.Mods {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(map[string]string, len(ids))
	for _, id := range ids {
		mod := p.Mods[id]
		out[mod.Name] = mod.Version
	}
	return out
}
