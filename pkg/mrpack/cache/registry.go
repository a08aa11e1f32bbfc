package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jamesainslie/mrpack/pkg/mrpack/logging"
	"github.com/jamesainslie/mrpack/pkg/mrpack/modrinth"
)

// Source is the upstream registry consulted on cache misses.
type Source interface {
	VersionFiles(ctx context.Context, hashes []string) (map[string]modrinth.Version, error)
	Projects(ctx context.Context, ids []string) ([]modrinth.Project, error)
}

// Registry is a read-through cache in front of an upstream registry.
// Cached records answer lookups directly; the remaining keys travel
// upstream in one batch and the responses are written back. Keys the
// upstream does not recognize are never cached, so they are retried
// on the next run.
type Registry struct {
	store  *Store
	source Source
	ttl    time.Duration
	log    *logging.Logger
}

// NewRegistry wraps source with the given store. Records written back
// expire after ttl; a ttl of zero disables expiry.
func NewRegistry(store *Store, source Source, ttl time.Duration) *Registry {
	return &Registry{
		store:  store,
		source: source,
		ttl:    ttl,
		log:    logging.Get("cache"),
	}
}

// VersionFiles resolves file hashes to version records, consulting
// the store before the upstream registry.
func (r *Registry) VersionFiles(ctx context.Context, hashes []string) (map[string]modrinth.Version, error) {
	result := make(map[string]modrinth.Version, len(hashes))
	var misses []string

	for _, hash := range hashes {
		version, err := r.store.GetVersion(hash)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				r.log.Debug("version cache read failed", "hash", hash, "error", err)
			}
			misses = append(misses, hash)
			continue
		}
		result[hash] = version
	}

	r.log.Debug("version lookup",
		"requested", len(hashes),
		"hits", len(hashes)-len(misses),
		"misses", len(misses))

	if len(misses) == 0 {
		return result, nil
	}

	fetched, err := r.source.VersionFiles(ctx, misses)
	if err != nil {
		return nil, err
	}

	if err := r.store.PutVersions(fetched, r.ttl); err != nil {
		r.log.Warn("version cache write failed", "error", err)
	}

	for hash, version := range fetched {
		result[hash] = version
	}
	return result, nil
}

// Projects resolves project ids to project records, consulting the
// store before the upstream registry. Records are returned in input
// id order; ids unknown to both the store and the upstream are
// omitted.
func (r *Registry) Projects(ctx context.Context, ids []string) ([]modrinth.Project, error) {
	byID := make(map[string]modrinth.Project, len(ids))
	var misses []string

	for _, id := range ids {
		project, err := r.store.GetProject(id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				r.log.Debug("project cache read failed", "id", id, "error", err)
			}
			misses = append(misses, id)
			continue
		}
		byID[id] = project
	}

	r.log.Debug("project lookup",
		"requested", len(ids),
		"hits", len(ids)-len(misses),
		"misses", len(misses))

	if len(misses) > 0 {
		fetched, err := r.source.Projects(ctx, misses)
		if err != nil {
			return nil, err
		}

		if err := r.store.PutProjects(fetched, r.ttl); err != nil {
			r.log.Warn("project cache write failed", "error", err)
		}

		for _, project := range fetched {
			byID[project.ID] = project
		}
	}

	projects := make([]modrinth.Project, 0, len(byID))
	for _, id := range ids {
		if project, ok := byID[id]; ok {
			projects = append(projects, project)
		}
	}
	return projects, nil
}
