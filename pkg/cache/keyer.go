package cache

// CodecVersion is mixed into every key. Bump it whenever an encoder's output
// for the same graph changes.
const CodecVersion = 1

// Keyer builds cache keys for pipeline results.
type Keyer interface {
	// ConvertKey identifies one encoded output of a parsed text input.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string

	// GenerateKey identifies one encoded output of a generated graph.
	GenerateKey(opts GenerateKeyOpts) string
}

// ConvertKeyOpts are the conversion options that affect an output's bytes.
type ConvertKeyOpts struct {
	Format string `json:"format"`
	Output string `json:"output"`
}

// GenerateKeyOpts are the generator options that affect an output's bytes.
type GenerateKeyOpts struct {
	Model       string  `json:"model"`
	Nodes       int     `json:"nodes"`
	Attach      int     `json:"attach"`
	Probability float64 `json:"probability"`
	Seed        uint64  `json:"seed"`
	Output      string  `json:"output"`
}

// DefaultKeyer produces unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConvertKey implements [Keyer].
func (DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", CodecVersion, inputHash, opts)
}

// GenerateKey implements [Keyer].
func (DefaultKeyer) GenerateKey(opts GenerateKeyOpts) string {
	return hashKey("generate", CodecVersion, opts)
}
