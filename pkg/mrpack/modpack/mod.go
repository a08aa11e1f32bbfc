package modpack

import (
	"net/url"

	"github.com/jamesainslie/mrpack/pkg/mrpack/gamever"
)

// modURLBase prefixes every Modrinth project page link.
const modURLBase = "https://modrinth.com/mod/"

// Mod is one resolved mod of a modpack.
type Mod struct {
	// Name is the project's display title.
	Name string

	// Link is the project's Modrinth page, derived from the slug.
	Link string

	// Version is the installed version number from the version
	// record owning the mod's file hash.
	Version string

	// DeclaredEnv is the registry-declared environment. Env is the
	// effective one after any per-file override from the archive.
	DeclaredEnv Env
	Env         Env

	// License is the registry license id, empty when undeclared.
	License string

	// SourceURL and IssuesURL point at the project's repository and
	// bug tracker, empty when undeclared.
	SourceURL string
	IssuesURL string

	// GameVersions is the set of game versions the project supports,
	// never empty for a resolved mod.
	GameVersions gamever.Set
}

// LatestGameVersion returns the newest game version the mod supports.
func (m Mod) LatestGameVersion() gamever.Version {
	return m.GameVersions.Max()
}

// CompatibleWith reports whether the mod supports the given game
// version.
func (m Mod) CompatibleWith(v gamever.Version) bool {
	return m.GameVersions.Contains(v)
}

// escapePath percent-encodes s as a URL path: spaces become %20 while
// ":" and "/" stay intact. Slugs and project URLs from the registry
// are not guaranteed to be pre-encoded.
func escapePath(s string) string {
	return (&url.URL{Path: s}).EscapedPath()
}
