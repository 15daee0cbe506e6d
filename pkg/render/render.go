// Package render hands generated diagram text to the external layout engine
// and returns image artifacts. The engine consumes the text as-is; this
// package never inspects or rewrites it.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// SVG renders diagram text to SVG using the layout engine.
func SVG(ctx context.Context, text string) ([]byte, error) {
	return renderAs(ctx, text, graphviz.SVG)
}

// PNG renders diagram text to PNG using the layout engine.
func PNG(ctx context.Context, text string) ([]byte, error) {
	return renderAs(ctx, text, graphviz.PNG)
}

func renderAs(ctx context.Context, text string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init layout engine: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("layout engine rejected text: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
