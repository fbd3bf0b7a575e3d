// Package render provides output rendering for laid-out structures.
//
// # Overview
//
// Every renderer consumes a [graph.Layout], the serialized result of
// pkg/layout, so a layout file written by one run can be rendered by
// another. This package provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Native SVG drawing (in [svg] subpackage)
//   - Graphviz output with pinned positions (in [nodelink] subpackage)
//   - Plain-text outputs: ASCII and Mermaid (in [text] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	out := svg.Render(layout, svg.WithStyle(svg.Dark{}))
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// [graph.Layout]: github.com/matzehuels/treeviz/pkg/graph.Layout
// [svg]: github.com/matzehuels/treeviz/pkg/render/svg
// [nodelink]: github.com/matzehuels/treeviz/pkg/render/nodelink
// [text]: github.com/matzehuels/treeviz/pkg/render/text
package render
