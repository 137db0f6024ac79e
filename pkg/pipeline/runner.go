package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/cache"
	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → synthesize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	dest, err := Parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result := &Result{Permutation: dest}

	// Stage 1: Synthesize
	synthStart := time.Now()
	net, synthHit, err := r.SynthesizeWithCacheInfo(ctx, dest, opts)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	result.Network = net
	result.Stats = Stats{
		N:              net.N,
		Levels:         net.Levels(),
		Columns:        net.Columns(),
		Switches:       net.Switches(),
		SynthesizeTime: time.Since(synthStart),
	}
	result.CacheInfo.SynthesizeHit = synthHit
	result.NetworkHash = NetworkHash(net)

	r.Logger.Info("synthesized network",
		"n", net.N,
		"levels", net.Levels(),
		"switches", result.Stats.Switches,
		"cached", synthHit,
		"duration", result.Stats.SynthesizeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, net, dest, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SynthesizeWithCacheInfo synthesizes the network for dest, consulting the
// cache first unless opts.Refresh is set. Every freshly built network is
// verified before it is cached or returned.
func (r *Runner) SynthesizeWithCacheInfo(ctx context.Context, dest []int, opts Options) (*benes.Network, bool, error) {
	cacheKey := r.Keyer.NetworkKey(cache.HashPermutation(dest))
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			net, cachedDest, err := io.UnmarshalNetwork(data)
			if err == nil && slices.Equal(cachedDest, dest) {
				hooks.OnCacheHit(ctx, "network")
				return net, true, nil
			}
			r.Logger.Warn("discarding unreadable cache entry", "key", cacheKey, "err", err)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		hooks.OnCacheMiss(ctx, "network")
	}

	observability.Pipeline().OnSynthesizeStart(ctx, len(dest))
	start := time.Now()
	net, err := benes.Synthesize(dest)
	if err == nil {
		err = benes.Verify(net, dest)
	}
	levels := 0
	if net != nil {
		levels = net.Levels()
	}
	observability.Pipeline().OnSynthesizeComplete(ctx, len(dest), levels, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := io.MarshalNetwork(net, dest); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLNetwork); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "network", len(data))
		}
	}
	return net, false, nil
}

// Synthesize is a convenience wrapper that calls SynthesizeWithCacheInfo and discards the cache hit info.
func (r *Runner) Synthesize(ctx context.Context, dest []int, opts Options) (*benes.Network, error) {
	net, _, err := r.SynthesizeWithCacheInfo(ctx, dest, opts)
	return net, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, net *benes.Network, dest []int, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Cache()

	netHash := NetworkHash(net)
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(netHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, net, dest, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(netHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// NetworkHash returns the content hash of a network's switch matrix.
func NetworkHash(net *benes.Network) string {
	data, _ := io.MarshalNetwork(net, nil)
	return cache.Hash(data)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
