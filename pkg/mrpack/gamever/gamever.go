// Package gamever provides the Minecraft game version value type used
// throughout mrpack. A version is two or three dotted non-negative
// integers ("1.20", "1.19.4"); ordering is numeric per segment, so
// "1.2" sorts before "1.10", and a two-segment version sorts before
// the same two segments with any patch ("1.20" < "1.20.0").
package gamever

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// versionPattern matches dotted versions with two or three segments.
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)?$`)

// ErrInvalid indicates that a string is not a valid game version.
var ErrInvalid = errors.New("invalid game version")

// Version is an immutable, comparable game version. The zero value is
// not a valid version; construct via Parse or MustParse. Version is
// usable as a map key, and two Versions are equal exactly when their
// canonical strings are equal.
type Version struct {
	major, minor, patch int
	hasPatch            bool
}

// Parse parses a dotted version string. It accepts exactly two or
// three non-negative integer segments and rejects everything else
// with ErrInvalid. Segment count is preserved: "1.20" and "1.20.0"
// parse to distinct versions.
func Parse(s string) (Version, error) {
	if !versionPattern.MatchString(s) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	parts := strings.Split(s, ".")
	segs := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
		segs[i] = n
	}

	v := Version{major: segs[0], minor: segs[1]}
	if len(segs) == 3 {
		v.patch = segs[2]
		v.hasPatch = true
	}
	return v, nil
}

// MustParse is Parse that panics on error. Intended for tests and
// compile-time-constant version strings.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical dotted form, round-tripping the
// original segment count.
func (v Version) String() string {
	if v.hasPatch {
		return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	}
	return fmt.Sprintf("%d.%d", v.major, v.minor)
}

// Compare returns -1, 0, or 1 ordering v against o. The order is
// lexicographic on the integer segments, with a missing patch segment
// sorting before a present one.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.major, o.major); c != 0 {
		return c
	}
	if c := cmpInt(v.minor, o.minor); c != 0 {
		return c
	}
	if !v.hasPatch && !o.hasPatch {
		return 0
	}
	if !v.hasPatch {
		return -1
	}
	if !o.hasPatch {
		return 1
	}
	return cmpInt(v.patch, o.patch)
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Set is an unordered collection of distinct Versions.
type Set map[Version]struct{}

// NewSet returns a Set containing the given versions.
func NewSet(versions ...Version) Set {
	s := make(Set, len(versions))
	for _, v := range versions {
		s[v] = struct{}{}
	}
	return s
}

// FromList parses a list of candidate version strings into a Set.
// Entries that do not parse are skipped: registry-supplied version
// lists are untrusted and routinely contain snapshot and pre-release
// identifiers outside the dotted grammar. Callers that need strict
// validation should use Parse directly.
func FromList(candidates []string) Set {
	s := make(Set)
	for _, c := range candidates {
		if v, err := Parse(c); err == nil {
			s[v] = struct{}{}
		}
	}
	return s
}

// Add inserts v into the set.
func (s Set) Add(v Version) {
	s[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s Set) Contains(v Version) bool {
	_, ok := s[v]
	return ok
}

// Max returns the greatest version in the set. The set must be
// non-empty.
func (s Set) Max() Version {
	var max Version
	first := true
	for v := range s {
		if first || max.Less(v) {
			max = v
			first = false
		}
	}
	return max
}

// Sorted returns the set's versions in ascending order.
func (s Set) Sorted() []Version {
	out := make([]Version, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Strings returns the canonical strings of the set's versions in
// ascending order.
func (s Set) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, v := range sorted {
		out[i] = v.String()
	}
	return out
}

// Union returns a new Set containing every version in s or o.
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range o {
		out[v] = struct{}{}
	}
	return out
}
