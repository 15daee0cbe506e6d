package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdoc/pkg/cache"
	"github.com/matzehuels/graphdoc/pkg/doc"
	"github.com/matzehuels/graphdoc/pkg/dot"
	docio "github.com/matzehuels/graphdoc/pkg/io"
	"github.com/matzehuels/graphdoc/pkg/render"
)

// Runner encapsulates pipeline execution with caching. Both CLI and API use
// it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner with
// different documents.
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

// Execute runs the complete transform → generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, d *doc.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.EdgeCount = d.EdgeCount()

	if opts.ColorAlpha {
		transformed, err := d.ApplyColorAlpha()
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
		d = transformed
	}

	genStart := time.Now()
	text, genHit, err := r.GenerateWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Text = text
	result.TextHash = cache.Hash([]byte(text))
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.GenerateHit = genHit

	opts.Logger.Info("generated text",
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"bytes", len(text),
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, text, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo produces the diagram text with caching and reports
// whether the result came from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, d *doc.Document, opts Options) (string, bool, error) {
	var buf bytes.Buffer
	if err := docio.WriteJSON(d, &buf); err != nil {
		return "", false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	cacheKey := r.Keyer.TextKey(cache.Hash(buf.Bytes()))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return string(data), true, nil
		}
	}

	text := dot.Generate(d)
	_ = r.Cache.Set(ctx, cacheKey, []byte(text), cache.TTLText)
	return text, false, nil
}

// Generate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, d *doc.Document, opts Options) (string, error) {
	text, _, err := r.GenerateWithCacheInfo(ctx, d, opts)
	return text, err
}

// RenderWithCacheInfo produces artifacts for every requested format with
// per-format caching. The "dot" format is the text itself and never touches
// the cache or the layout engine.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, text string, opts Options) (map[string][]byte, bool, error) {
	if err := validateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	textHash := cache.Hash([]byte(text))

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		if format == render.FormatDOT {
			artifacts[format] = []byte(text)
			continue
		}

		cacheKey := r.Keyer.ArtifactKey(textHash, format)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		allCached = false

		var (
			data []byte
			err  error
		)
		switch format {
		case render.FormatSVG:
			data, err = render.SVG(ctx, text)
		case render.FormatPNG:
			data, err = render.PNG(ctx, text)
		}
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, text string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, text, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
