package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsmith/pkg/cache"
	"github.com/matzehuels/qrsmith/pkg/observability"
	"github.com/matzehuels/qrsmith/pkg/qr"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and server use this to avoid duplicating caching logic.
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

// Execute runs the complete resolve → encode → render pipeline.
//
// Encoding always happens so the result carries fresh metadata; only
// rendered artifacts go through the cache, since rasterization is the
// expensive stage.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	raw, err := opts.Raw()
	if err != nil {
		return nil, err
	}
	req, err := qr.Resolve(raw)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Request:     req,
		RequestHash: requestHash(req),
	}

	// Stage 1+2: Encode
	encodeStart := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, len(req.Text))
	res, err := qr.Encode(req)
	observability.Pipeline().OnEncodeComplete(ctx, resultVersion(res), time.Since(encodeStart), err)
	if err != nil {
		return nil, err
	}
	result.Metadata = qr.ExtractMetadata(req, res.Segments, res, qr.ClassifyMode(res.Segments))
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Info("encoded symbol",
		"version", result.Metadata.Version,
		"size", result.Metadata.Size,
		"mask", result.Metadata.Mask,
		"duration", result.Stats.EncodeTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.renderWithCache(ctx, res, result.Metadata, result.RequestHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderWithCache returns all requested artifacts, serving from the
// cache when every format is present and unexpired.
func (r *Runner) renderWithCache(ctx context.Context, res *qr.Result, meta qr.Metadata, hash string, opts Options) (map[string][]byte, bool, error) {
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, format)
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := renderFormats(res, meta, opts.Formats)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, format)
		_ = r.Cache.Set(ctx, key, data, cache.DefaultTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// resultVersion is nil-safe for hook reporting on encode failure.
func resultVersion(res *qr.Result) int {
	if res == nil {
		return 0
	}
	return res.Version
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// requestHash derives the cache key material for a resolved request.
// Every field that changes the output participates.
func requestHash(req qr.Request) string {
	return cache.HashString(fmt.Sprintf("%s\x00%d\x00%d\x00%d\x00%d\x00%d\x00%t",
		req.Text, req.Mode, req.EccLevel, req.MinVersion, req.MaxVersion, req.Mask, req.BoostEcc))
}
