package modpack

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jamesainslie/mrpack/pkg/mrpack/gamever"
)

// indexName is the manifest entry every mrpack archive must contain.
const indexName = "modrinth.index.json"

// minecraftKey is the reserved dependency key naming the game version.
const minecraftKey = "minecraft"

// overrideTrees are the archive directories whose contents ship
// verbatim alongside the indexed files.
var overrideTrees = []string{"overrides/", "client-overrides/", "server-overrides/"}

// ErrArchive indicates that an mrpack archive could not be loaded.
// Every zip, JSON, and validation failure folds into it; the cause is
// carried in the message only.
var ErrArchive = errors.New("failed to load mrpack file")

// Archive is the parsed, not yet resolved content of one mrpack file.
type Archive struct {
	// Name and Version identify the modpack itself.
	Name    string
	Version string

	// GameVersion is the target version from the reserved minecraft
	// dependency key.
	GameVersion gamever.Version

	// Dependencies is the declared dependency map without the
	// reserved minecraft key.
	Dependencies map[string]string

	// Hashes maps each indexed sha512 to the file's jar basename.
	Hashes map[string]string

	// Envs maps indexed sha512s to their per-file environment
	// override. Only files declaring an override block appear here.
	Envs map[string]Env

	// UnknownFiles and OtherFiles map override-tree entry paths to
	// content fingerprints: jars land in UnknownFiles, everything
	// else in OtherFiles. Neither is deduplicated against the index.
	UnknownFiles map[string]string
	OtherFiles   map[string]string
}

// index mirrors the JSON layout of modrinth.index.json. Env blocks
// decode as raw maps so the key set can be validated.
type index struct {
	Name         string            `json:"name"`
	VersionID    string            `json:"versionId"`
	Dependencies map[string]string `json:"dependencies"`
	Files        []indexEntry      `json:"files"`
}

type indexEntry struct {
	Path   string            `json:"path"`
	Hashes map[string]string `json:"hashes"`
	Env    map[string]string `json:"env"`
}

// ReadArchive opens an mrpack archive and parses its index and
// override trees. All failures are wrapped into ErrArchive.
func ReadArchive(filename string) (*Archive, error) {
	a, err := readArchive(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return a, nil
}

func readArchive(filename string) (*Archive, error) {
	z, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer z.Close()

	f, err := z.Open(indexName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var idx index
	if err := json.NewDecoder(f).Decode(&idx); err != nil {
		return nil, err
	}

	a, err := parseIndex(&idx)
	if err != nil {
		return nil, err
	}

	a.UnknownFiles = make(map[string]string)
	a.OtherFiles = make(map[string]string)
	for _, entry := range z.File {
		if entry.FileInfo().IsDir() || !underOverrides(entry.Name) {
			continue
		}
		fingerprint := fmt.Sprintf("%08x", entry.CRC32)
		if path.Ext(entry.Name) == ".jar" {
			a.UnknownFiles[entry.Name] = fingerprint
		} else {
			a.OtherFiles[entry.Name] = fingerprint
		}
	}

	return a, nil
}

func parseIndex(idx *index) (*Archive, error) {
	if idx.Name == "" {
		return nil, errors.New("index missing name")
	}
	if idx.VersionID == "" {
		return nil, errors.New("index missing versionId")
	}
	if idx.Dependencies[minecraftKey] == "" {
		return nil, errors.New("index missing minecraft dependency")
	}

	gameVersion, err := gamever.Parse(idx.Dependencies[minecraftKey])
	if err != nil {
		return nil, err
	}

	deps := make(map[string]string, len(idx.Dependencies)-1)
	for k, v := range idx.Dependencies {
		if k != minecraftKey {
			deps[k] = v
		}
	}

	a := &Archive{
		Name:         idx.Name,
		Version:      idx.VersionID,
		GameVersion:  gameVersion,
		Dependencies: deps,
		Hashes:       make(map[string]string, len(idx.Files)),
		Envs:         make(map[string]Env),
	}

	for _, entry := range idx.Files {
		if entry.Path == "" {
			return nil, errors.New("index file entry missing path")
		}
		hash := entry.Hashes["sha512"]
		if hash == "" {
			return nil, fmt.Errorf("file %s: missing sha512 hash", entry.Path)
		}
		a.Hashes[hash] = path.Base(entry.Path)
		if entry.Env != nil {
			env, err := ParseEnv(entry.Env)
			if err != nil {
				return nil, fmt.Errorf("file %s: %v", entry.Path, err)
			}
			a.Envs[hash] = env
		}
	}

	return a, nil
}

func underOverrides(name string) bool {
	for _, tree := range overrideTrees {
		if strings.HasPrefix(name, tree) {
			return true
		}
	}
	return false
}
