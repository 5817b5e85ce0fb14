package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend, for example one redis server behind several preview servers:
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "preview:watch45:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FrameKey generates a prefixed frame key.
func (k *ScopedKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(configHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameHash, opts)
}
