package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis database without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "permnet:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) NetworkKey(permHash string) string {
	return k.prefix + k.inner.NetworkKey(permHash)
}

func (k *ScopedKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(networkHash, opts)
}
