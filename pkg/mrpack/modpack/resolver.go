package modpack

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jamesainslie/mrpack/pkg/mrpack/gamever"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modrinth"
)

// ErrProject indicates that a registry project record could not be
// turned into a usable mod.
var ErrProject = errors.New("failed to load mod")

// Registry is the consumer-side view of the bulk lookup endpoints.
// modrinth.Client satisfies it directly; the cache package provides a
// decorating implementation.
type Registry interface {
	VersionFiles(ctx context.Context, hashes []string) (map[string]modrinth.Version, error)
	Projects(ctx context.Context, ids []string) ([]modrinth.Project, error)
}

var _ Registry = (*modrinth.Client)(nil)

// modStub is the parsed, archive-independent part of a project record.
type modStub struct {
	name         string
	link         string
	env          Env
	license      string
	sourceURL    string
	issuesURL    string
	gameVersions gamever.Set
}

// Load reads the given archives and resolves them in one shot.
func Load(ctx context.Context, reg Registry, paths ...string) ([]*Modpack, error) {
	archives := make([]*Archive, 0, len(paths))
	for _, p := range paths {
		a, err := ReadArchive(p)
		if err != nil {
			return nil, err
		}
		archives = append(archives, a)
	}
	return Resolve(ctx, reg, archives...)
}

// Resolve reconciles the archives against the registry. The hashes of
// all archives share one version lookup, and the resulting project ids
// share one project lookup, so the registry sees exactly two calls
// however many archives are resolved. A project record that cannot be
// parsed fails the whole resolution; there are no partial results.
func Resolve(ctx context.Context, reg Registry, archives ...*Archive) ([]*Modpack, error) {
	hashSet := make(map[string]struct{})
	for _, a := range archives {
		for h := range a.Hashes {
			hashSet[h] = struct{}{}
		}
	}
	hashes := make([]string, 0, len(hashSet))
	for h := range hashSet {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	versions, err := reg.VersionFiles(ctx, hashes)
	if err != nil {
		return nil, err
	}

	// A hash counts as known only when it appears in a returned file
	// list. The response may also vouch for a hash it does not key
	// directly; owners records which record vouches for each hash,
	// first record in sorted key order winning.
	keys := make([]string, 0, len(versions))
	for k := range versions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	owners := make(map[string]string)
	for _, key := range keys {
		for _, f := range versions[key].Files {
			h := f.Hashes.SHA512
			if h == "" {
				continue
			}
			if _, ok := owners[h]; !ok {
				owners[h] = key
			}
		}
	}

	idSet := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		idSet[v.ProjectID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	projects, err := reg.Projects(ctx, ids)
	if err != nil {
		return nil, err
	}

	stubs := make(map[string]modStub, len(projects))
	for _, p := range projects {
		stub, err := parseStub(p)
		if err != nil {
			return nil, err
		}
		stubs[p.ID] = stub
	}

	packs := make([]*Modpack, 0, len(archives))
	for _, a := range archives {
		pack, err := reconcile(a, versions, owners, stubs)
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// parseStub turns a project record into a stub, escaping the slug and
// URLs once per project. A bad side requirement or an empty usable
// version set fails the project.
func parseStub(p modrinth.Project) (modStub, error) {
	client, err := ParseRequirement(p.ClientSide)
	if err != nil {
		return modStub{}, fmt.Errorf("%w %s: %v", ErrProject, p.Title, err)
	}
	server, err := ParseRequirement(p.ServerSide)
	if err != nil {
		return modStub{}, fmt.Errorf("%w %s: %v", ErrProject, p.Title, err)
	}

	versions := gamever.FromList(p.GameVersions)
	if len(versions) == 0 {
		return modStub{}, fmt.Errorf("%w %s: no usable game versions", ErrProject, p.Title)
	}

	license := ""
	if p.License != nil {
		license = p.License.ID
	}

	return modStub{
		name:         p.Title,
		link:         modURLBase + escapePath(p.Slug),
		env:          Env{Client: client, Server: server},
		license:      license,
		sourceURL:    escapePath(p.SourceURL),
		issuesURL:    escapePath(p.IssuesURL),
		gameVersions: versions,
	}, nil
}

// reconcile sorts each of the archive's indexed hashes into a resolved
// mod or a missing file.
func reconcile(a *Archive, versions map[string]modrinth.Version, owners map[string]string, stubs map[string]modStub) (*Modpack, error) {
	mods := make(map[string]Mod)
	missingSet := make(map[string]struct{})

	for hash, jar := range a.Hashes {
		owner, known := owners[hash]
		if !known {
			missingSet[jar] = struct{}{}
			continue
		}

		record, ok := versions[hash]
		if !ok {
			record = versions[owner]
		}

		stub, ok := stubs[record.ProjectID]
		if !ok {
			return nil, fmt.Errorf("%w %s: project missing from registry response", ErrProject, record.ProjectID)
		}

		env := stub.env
		if override, ok := a.Envs[hash]; ok {
			env = override
		}

		mods[record.ProjectID] = Mod{
			Name:         stub.name,
			Link:         stub.link,
			Version:      record.VersionNumber,
			DeclaredEnv:  stub.env,
			Env:          env,
			License:      stub.license,
			SourceURL:    stub.sourceURL,
			IssuesURL:    stub.issuesURL,
			GameVersions: stub.gameVersions,
		}
	}

	missing := make([]string, 0, len(missingSet))
	for jar := range missingSet {
		missing = append(missing, jar)
	}
	sort.Strings(missing)

	return &Modpack{
		Name:         a.Name,
		Version:      a.Version,
		GameVersion:  a.GameVersion,
		Dependencies: a.Dependencies,
		Mods:         mods,
		MissingFiles: missing,
		UnknownFiles: a.UnknownFiles,
		OtherFiles:   a.OtherFiles,
	}, nil
}
