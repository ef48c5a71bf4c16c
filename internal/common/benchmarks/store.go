// internal/common/benchmarks/store.go
package benchmarks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/metrics"
	"roi-assessment-workers/pkg/roi"
)

// ErrRegistryUnavailable wraps a failed initial load.
var ErrRegistryUnavailable = errors.New("benchmark registry unavailable")

// RegistryLoader is satisfied by *Loader.
type RegistryLoader interface {
	Load(ctx context.Context) (*Registry, error)
}

// DefaultLoadTimeout bounds one registry load, independent of the job that
// triggered it.
const DefaultLoadTimeout = 10 * time.Second

// Store keeps the current Registry and reloads it once it is older than the
// refresh interval. A failed reload keeps serving the previous registry.
// Concurrent callers share one in-flight load.
type Store struct {
	loader      RegistryLoader
	refresh     time.Duration
	loadTimeout time.Duration
	logger      logger.Logger
	now         func() time.Time
	loads       singleflight.Group

	mu       sync.Mutex
	current  *Registry
	loadedAt time.Time
}

// NewStore returns a Store; refresh <= 0 loads once and never refreshes.
func NewStore(loader RegistryLoader, refresh time.Duration, log logger.Logger) *Store {
	return &Store{
		loader:      loader,
		refresh:     refresh,
		loadTimeout: DefaultLoadTimeout,
		logger:      log,
		now:         time.Now,
	}
}

// Registry returns the current registry, loading or refreshing it as needed.
// ctx only bounds the wait: when it ends first the load carries on for the
// next caller, and a stale registry is served if there is one.
func (s *Store) Registry(ctx context.Context) (*Registry, error) {
	s.mu.Lock()
	current := s.current
	fresh := current != nil && (s.refresh <= 0 || s.now().Sub(s.loadedAt) < s.refresh)
	s.mu.Unlock()

	if fresh {
		return current, nil
	}

	select {
	case res := <-s.loads.DoChan("registry", s.load):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Registry), nil
	case <-ctx.Done():
		if current != nil {
			return current, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, ctx.Err())
	}
}

func (s *Store) load() (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()

	reg, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.current != nil {
			s.logger.Warn("benchmark refresh failed, keeping previous profiles", map[string]interface{}{
				"error":  err,
				"source": s.current.Source(),
			})
			// Back off for a full interval before trying again.
			s.loadedAt = s.now()
			return s.current, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	if s.current != nil {
		metrics.BenchmarkProfilesLoaded.WithLabelValues(s.current.Source()).Set(0)
	}
	metrics.BenchmarkProfilesLoaded.WithLabelValues(reg.Source()).Set(float64(len(reg.ProfileIDs())))

	s.current = reg
	s.loadedAt = s.now()
	return reg, nil
}

// Resolve looks id up in the current registry.
func (s *Store) Resolve(ctx context.Context, id string) (string, roi.BenchmarkConfig, error) {
	reg, err := s.Registry(ctx)
	if err != nil {
		return "", roi.BenchmarkConfig{}, err
	}
	return reg.Resolve(id)
}
