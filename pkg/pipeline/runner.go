package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/cache"
	apperr "github.com/matzehuels/archwall/pkg/errors"
	"github.com/matzehuels/archwall/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute validates comp and renders every requested format, serving
// artifacts from the cache where possible.
func (r *Runner) Execute(ctx context.Context, comp arch.Composition, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := comp.Validate(); err != nil {
		return nil, err
	}

	hash, err := Hash(comp)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "hash composition")
	}

	result := &Result{
		RunID:     uuid.New(),
		Hash:      hash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	logger := opts.Logger.With("run", result.RunID.String()[:8])
	result.Stats.Arches = len(comp.Arches)
	result.Stats.Painted, result.Stats.Skipped = countPaintable(comp)

	start := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{Format: format, Scale: opts.Scale})

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				logger.Warn("cache read failed", "format", format, "err", err)
			}
			if hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				logger.Debug("cache hit", "format", format, "bytes", len(data))
				result.Artifacts[format] = data
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data, err := r.render(ctx, comp, format, opts.Scale)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		result.CacheInfo.Misses = append(result.CacheInfo.Misses, format)

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered composition",
		"name", comp.Name,
		"formats", opts.Formats,
		"painted", result.Stats.Painted,
		"skipped", result.Stats.Skipped,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) render(ctx context.Context, comp arch.Composition, format string, scale float64) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, comp.Name, format)
	start := time.Now()

	data, stats, err := RenderFormat(comp, format, scale)
	hooks.OnRenderComplete(ctx, comp.Name, format, stats.Painted, stats.Skipped, time.Since(start), err)
	if err != nil {
		return nil, apperr.Propagate(err, "render %s", format)
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
