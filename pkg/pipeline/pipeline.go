// Package pipeline composes the graphdoc stages - transform, generate,
// render - behind a single cached runner shared by the CLI and the API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Transform: fold alpha companion columns into their color columns
//  2. Generate: produce the diagram-description text for the document
//  3. Render: hand the text to the layout engine for svg/png artifacts
//
// Each stage is a pure function of its input, so stage results are cached by
// content hash: identical documents always generate identical text, and
// identical text always renders identical artifacts.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, document, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdoc/pkg/render"
)

// DefaultFormat is the artifact format used when none is requested.
const DefaultFormat = render.FormatDOT

// Options configures a pipeline run.
type Options struct {
	// ColorAlpha applies the color/alpha transform before generation.
	ColorAlpha bool `json:"color_alpha,omitempty"`

	// Formats are the artifact formats to produce (dot, svg, png).
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached stage results.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives stage progress. Not serialized.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Text is the generated diagram-description text.
	Text string

	// TextHash is the content hash of the text.
	TextHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the generated text came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}
	}
	return nil
}
