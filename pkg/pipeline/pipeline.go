// Package pipeline provides the core visualization pipeline for treeviz.
//
// This package implements the complete parse → build → layout → render
// pipeline used by both the CLI and the HTTP API, so that every entry point
// behaves the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Parse the bracketed value array and reconstruct the structure
//  2. Layout: Compute node positions with the subtree-width engine
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "[1, 2, 3, null, 4]",
//	    Kind:    "binary",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	t, err := runner.Build(ctx, opts)
//	l, err := runner.GenerateLayout(ctx, t, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultKind is the structure kind used when none is given.
	DefaultKind = string(tree.KindBinary)

	// DefaultStyle is the default visual style.
	DefaultStyle = graph.StyleSimple

	// DefaultScale is the PNG rasterization factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
	FormatMermaid  = "mermaid"
	FormatASCII    = "ascii"
)

// Formats lists every supported output format.
var Formats = []string{
	FormatSVG, FormatPNG, FormatPDF, FormatJSON,
	FormatDOT, FormatGraphviz, FormatMermaid, FormatASCII,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphviz: true,
	FormatMermaid:  true,
	FormatASCII:    true,
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraphviz:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension, including the dot, for a format.
// Graphviz-rendered SVG gets ".gv.svg" so it does not collide with ".svg".
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return ".gv.svg"
	case FormatMermaid:
		return ".mmd"
	case FormatASCII:
		return ".txt"
	default:
		return "." + format
	}
}

// IsBinary reports whether a format produces non-text output.
func IsBinary(format string) bool {
	return format == FormatPNG || format == FormatPDF
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleSimple: true,
	graph.StyleDark:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Input       string `json:"input"`
	Kind        string `json:"kind,omitempty" validate:"omitempty,oneof=binary nary graph"`
	MaxChildren int    `json:"max_children,omitempty"`

	// Layout options
	ShowAbsent bool          `json:"show_absent,omitempty"`
	Geometry   layout.Config `json:"geometry"`

	// Render options
	Formats  []string `json:"formats,omitempty" validate:"dive,oneof=svg png pdf json dot graphviz mermaid ascii"`
	Style    string   `json:"style,omitempty" validate:"omitempty,oneof=simple dark"`
	Detailed bool     `json:"detailed,omitempty"` // DOT labels carry the array index
	Scale    float64  `json:"scale,omitempty" validate:"gte=0"`
	Refresh  bool     `json:"refresh,omitempty"` // bypass cached layouts and artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the built structure.
	Tree *tree.Tree

	// GraphHash is the content hash of the serialized structure.
	GraphHash string

	// Layout contains the positioned nodes and edges.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputLen     int
	NodeCount    int
	VisibleNodes int
	Cycles       int
	BuildTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

var validate = validator.New()

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot, graphviz, mermaid, ascii)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, dark)", style)
	}
	return nil
}

// ValidateKind checks that a structure kind is valid.
func ValidateKind(kind string) error {
	_, err := tree.ParseKind(kind)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the fields needed to build a structure.
func (o *Options) ValidateForBuild() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeEmptyInput, "input is required")
	}
	o.SetLayoutDefaults()
	return o.check()
}

// SetLayoutDefaults sets default values for building and layout computation.
// A zero Geometry means the default geometry.
func (o *Options) SetLayoutDefaults() {
	o.Kind = strings.ToLower(strings.TrimSpace(o.Kind))
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if o.MaxChildren < 0 {
		o.MaxChildren = 0
	}
	if o.Geometry == (layout.Config{}) {
		o.Geometry = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.check()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return o.check()
}

// check runs the struct tags and maps the first failing field to an error code.
func (o *Options) check() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	fe := verrs[0]
	// Slice elements report as "Formats[0]".
	field, _, _ := strings.Cut(fe.StructField(), "[")
	switch field {
	case "Kind":
		return ValidateKind(o.Kind)
	case "Style":
		return ValidateStyle(o.Style)
	case "Formats":
		return ValidateFormats(o.Formats)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %v", fe.Field(), fe.Value())
	}
}

// TreeKind returns the structure kind. Call after SetLayoutDefaults.
func (o *Options) TreeKind() tree.Kind { return tree.Kind(o.Kind) }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	g := layout.New(o.Geometry).Config()
	return cache.LayoutKeyOpts{
		Kind:              o.Kind,
		MaxChildren:       o.MaxChildren,
		ShowAbsent:        o.ShowAbsent,
		NodeSpacing:       g.NodeSpacing,
		LevelSpacing:      g.LevelSpacing,
		NodeRadius:        g.NodeRadius,
		HorizontalPadding: g.HorizontalPadding,
		VerticalPadding:   g.VerticalPadding,
		PairRadiusScale:   g.PairRadiusScale,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Style: o.Style}
	switch format {
	case FormatDOT, FormatGraphviz:
		opts.Detailed = o.Detailed
	case FormatPNG:
		opts.Scale = o.Scale
	}
	return opts
}
