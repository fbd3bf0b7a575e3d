package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/render/nodelink"
	"github.com/matzehuels/treeviz/pkg/render/svg"
	"github.com/matzehuels/treeviz/pkg/render/text"
)

// RenderFromLayout generates output artifacts in the requested formats.
// This is the preferred entry point when you have a graph.Layout.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, l)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	style, err := svg.StyleFor(opts.Style)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	// PNG and PDF are converted from the SVG, so draw it at most once.
	var svgData []byte
	drawSVG := func() []byte {
		if svgData == nil {
			svgData = svg.Render(l, svg.WithStyle(style))
		}
		return svgData
	}
	dotOpts := nodelink.Options{Detailed: opts.Detailed}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = drawSVG()
		case FormatPNG:
			data, err = render.ToPNG(ctx, drawSVG(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, drawSVG())
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, dotOpts))
		case FormatGraphviz:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(l, dotOpts))
		case FormatMermaid:
			data = []byte(text.Mermaid(l))
		case FormatASCII:
			data = []byte(text.ASCII(l))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts preserve their original rendering settings.
func applyLayoutMetadata(opts Options, l graph.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	return opts
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., a saved file).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, l, opts)
}
