package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the DOT text produced from a given input.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered image of a given DOT text.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change the DOT produced from an input.
type LayoutKeyOpts struct {
	Format     string `json:"format"`
	DepthLimit int    `json:"depth_limit"`
	Noun       string `json:"noun"`
	FontSize   int    `json:"font_size"`
}

// ArtifactKeyOpts holds the options that change the rendered bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, dotHash, opts)
}
