// internal/common/benchmarks/loader.go
package benchmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roi-assessment-workers/internal/common/config"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/pkg/roi"
)

const (
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
	SourceConfig   = "config"
)

const selectActiveProfiles = `
	SELECT profile_id, new_lead_pickup_rate, database_pickup_rate,
	       answer_to_appointment, appointment_to_deal,
	       voice_ai_monthly_cost, avg_agent_hourly_value
	FROM benchmark_profiles
	WHERE active = true
	ORDER BY profile_id`

// snapshot is the JSON document shared through Redis.
type snapshot struct {
	DefaultProfile string                         `json:"defaultProfile"`
	Profiles       map[string]roi.BenchmarkConfig `json:"profiles"`
	LoadedAt       time.Time                      `json:"loadedAt"`
}

// Loader assembles a Registry from the Redis snapshot, the benchmark_profiles
// table and the config file. db and cache may be nil.
type Loader struct {
	cfg    config.BenchmarksConfig
	db     *sql.DB
	cache  redis.Cmdable
	logger logger.Logger
	now    func() time.Time
}

func NewLoader(cfg config.BenchmarksConfig, db *sql.DB, cache redis.Cmdable, log logger.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		db:     db,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "benchmark-loader"}),
		now:    time.Now,
	}
}

// Load prefers a cached snapshot. Without one it layers config defaults,
// config profiles and active database rows (later wins), then publishes the
// result to Redis when it came from the database.
func (l *Loader) Load(ctx context.Context) (*Registry, error) {
	if reg, ok := l.fromCache(ctx); ok {
		return reg, nil
	}

	profiles := map[string]roi.BenchmarkConfig{
		normalizeID(l.cfg.DefaultProfile): l.cfg.Defaults,
	}
	for id, p := range l.cfg.Profiles {
		profiles[normalizeID(id)] = p
	}
	source := SourceConfig

	if l.db != nil {
		rows, err := l.fromDatabase(ctx)
		if err != nil {
			return nil, err
		}
		for id, p := range rows {
			profiles[id] = p
		}
		if len(rows) > 0 {
			source = SourcePostgres
		}
	}

	reg, err := NewRegistry(l.cfg.DefaultProfile, profiles, source)
	if err != nil {
		return nil, err
	}

	if source == SourcePostgres {
		l.publish(ctx, reg)
	}

	l.logger.Info("benchmark profiles loaded", map[string]interface{}{
		"source":   source,
		"profiles": reg.ProfileIDs(),
		"default":  reg.DefaultID(),
	})
	return reg, nil
}

func (l *Loader) fromCache(ctx context.Context) (*Registry, bool) {
	if l.cache == nil {
		return nil, false
	}

	raw, err := l.cache.Get(ctx, l.cfg.CacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("benchmark snapshot unavailable", map[string]interface{}{"error": err})
		}
		return nil, false
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		l.logger.Warn("discarding unreadable benchmark snapshot", map[string]interface{}{"error": err})
		return nil, false
	}

	defaultID := snap.DefaultProfile
	if defaultID == "" {
		defaultID = l.cfg.DefaultProfile
	}
	reg, err := NewRegistry(defaultID, snap.Profiles, SourceRedis)
	if err != nil {
		l.logger.Warn("discarding invalid benchmark snapshot", map[string]interface{}{"error": err})
		return nil, false
	}
	return reg, true
}

func (l *Loader) fromDatabase(ctx context.Context) (map[string]roi.BenchmarkConfig, error) {
	rows, err := l.db.QueryContext(ctx, selectActiveProfiles)
	if err != nil {
		return nil, fmt.Errorf("query benchmark_profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[string]roi.BenchmarkConfig)
	for rows.Next() {
		var (
			id string
			p  roi.BenchmarkConfig
		)
		if err := rows.Scan(&id, &p.NewLeadPickupRate, &p.DatabasePickupRate,
			&p.AnswerToAppointment, &p.AppointmentToDeal,
			&p.VoiceAIMonthlyCost, &p.AvgAgentHourlyValue); err != nil {
			return nil, fmt.Errorf("scan benchmark_profiles: %w", err)
		}
		if err := p.Validate(); err != nil {
			l.logger.Warn("skipping invalid benchmark profile row", map[string]interface{}{
				"profileId": id,
				"error":     err,
			})
			continue
		}
		profiles[normalizeID(id)] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate benchmark_profiles: %w", err)
	}
	return profiles, nil
}

func (l *Loader) publish(ctx context.Context, reg *Registry) {
	if l.cache == nil {
		return
	}
	payload, err := json.Marshal(snapshot{
		DefaultProfile: reg.DefaultID(),
		Profiles:       reg.Profiles(),
		LoadedAt:       l.now().UTC(),
	})
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, l.cfg.CacheKey, payload, l.cfg.BenchmarkCacheTTL()).Err(); err != nil {
		l.logger.Warn("failed to publish benchmark snapshot", map[string]interface{}{"error": err})
	}
}
