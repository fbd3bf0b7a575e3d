package layout

// Default geometry, in SVG user units.
const (
	DefaultNodeSpacing       = 80.0
	DefaultLevelSpacing      = 100.0
	DefaultNodeRadius        = 30.0
	DefaultHorizontalPadding = 150.0
	DefaultVerticalPadding   = 80.0
	DefaultPairRadiusScale   = 1.3
)

// Config holds the geometry used by an Engine.
type Config struct {
	NodeSpacing       float64 `json:"node_spacing"`  // horizontal distance per width unit
	LevelSpacing      float64 `json:"level_spacing"` // vertical distance per depth level
	NodeRadius        float64 `json:"node_radius"`
	HorizontalPadding float64 `json:"horizontal_padding"`
	VerticalPadding   float64 `json:"vertical_padding"`
	PairRadiusScale   float64 `json:"pair_radius_scale"` // radius multiplier for two-part labels
}

// DefaultConfig returns the default geometry.
func DefaultConfig() Config {
	return Config{
		NodeSpacing:       DefaultNodeSpacing,
		LevelSpacing:      DefaultLevelSpacing,
		NodeRadius:        DefaultNodeRadius,
		HorizontalPadding: DefaultHorizontalPadding,
		VerticalPadding:   DefaultVerticalPadding,
		PairRadiusScale:   DefaultPairRadiusScale,
	}
}

// withDefaults fills zero-valued fields. Paddings may legitimately be zero,
// so only spacings, radius and scale are defaulted.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NodeSpacing <= 0 {
		c.NodeSpacing = d.NodeSpacing
	}
	if c.LevelSpacing <= 0 {
		c.LevelSpacing = d.LevelSpacing
	}
	if c.NodeRadius <= 0 {
		c.NodeRadius = d.NodeRadius
	}
	if c.PairRadiusScale <= 0 {
		c.PairRadiusScale = d.PairRadiusScale
	}
	return c
}

// radius returns the drawn radius for a node.
func (c Config) radius(pair bool) float64 {
	if pair {
		return c.NodeRadius * c.PairRadiusScale
	}
	return c.NodeRadius
}
