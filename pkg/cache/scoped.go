package cache

// ScopedKeyer wraps a Keyer with a namespace prefix so several tools, or
// several graphbin deployments, can share one Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "graphbin:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ConvertKey generates a prefixed conversion key.
func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}

// GenerateKey generates a prefixed generation key.
func (k *ScopedKeyer) GenerateKey(opts GenerateKeyOpts) string {
	return k.prefix + k.inner.GenerateKey(opts)
}
