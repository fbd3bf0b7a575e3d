package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies a serialized layout.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout.
type LayoutKeyOpts struct {
	Kind              string  `json:"kind"`
	MaxChildren       int     `json:"max_children"`
	ShowAbsent        bool    `json:"show_absent"`
	NodeSpacing       float64 `json:"node_spacing"`
	LevelSpacing      float64 `json:"level_spacing"`
	NodeRadius        float64 `json:"node_radius"`
	HorizontalPadding float64 `json:"horizontal_padding"`
	VerticalPadding   float64 `json:"vertical_padding"`
	PairRadiusScale   float64 `json:"pair_radius_scale"`
}

// ArtifactKeyOpts lists every option that changes a rendered output.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	Detailed bool    `json:"detailed"`
	Scale    float64 `json:"scale"`
}

// DefaultKeyer builds versioned, hashed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:v1:<sha256>".
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:v1", inputHash, opts)
}

// ArtifactKey returns "artifact:v1:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", layoutHash, opts)
}
