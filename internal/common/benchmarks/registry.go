// internal/common/benchmarks/registry.go
package benchmarks

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"roi-assessment-workers/pkg/roi"
)

// ErrProfileNotFound is returned by Resolve for an id the registry does not hold.
var ErrProfileNotFound = errors.New("benchmark profile not found")

// Registry is an immutable set of named benchmark profiles.
type Registry struct {
	defaultID string
	profiles  map[string]roi.BenchmarkConfig
	source    string
}

// NewRegistry validates every profile and requires the default to be present.
// Profile ids are case-insensitive.
func NewRegistry(defaultID string, profiles map[string]roi.BenchmarkConfig, source string) (*Registry, error) {
	defaultID = normalizeID(defaultID)
	if defaultID == "" {
		return nil, errors.New("default benchmark profile id is required")
	}

	copied := make(map[string]roi.BenchmarkConfig, len(profiles))
	for id, profile := range profiles {
		id = normalizeID(id)
		if id == "" {
			return nil, errors.New("benchmark profile id cannot be blank")
		}
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", id, err)
		}
		copied[id] = profile
	}

	if _, ok := copied[defaultID]; !ok {
		return nil, fmt.Errorf("default profile %q: %w", defaultID, ErrProfileNotFound)
	}

	return &Registry{defaultID: defaultID, profiles: copied, source: source}, nil
}

// Resolve returns the canonical id and config for id; a blank id means the default.
func (r *Registry) Resolve(id string) (string, roi.BenchmarkConfig, error) {
	id = normalizeID(id)
	if id == "" {
		id = r.defaultID
	}
	profile, ok := r.profiles[id]
	if !ok {
		return id, roi.BenchmarkConfig{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return id, profile, nil
}

func (r *Registry) DefaultID() string { return r.defaultID }

// Source names where the profiles came from: redis, postgres or config.
func (r *Registry) Source() string { return r.source }

func (r *Registry) ProfileIDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Profiles returns a copy of the profile map.
func (r *Registry) Profiles() map[string]roi.BenchmarkConfig {
	out := make(map[string]roi.BenchmarkConfig, len(r.profiles))
	for id, p := range r.profiles {
		out[id] = p
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
