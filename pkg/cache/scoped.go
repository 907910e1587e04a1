package cache

// ScopedKeyer wraps a Keyer and prefixes every key with a scope, so
// multiple deployments can share one backend without collisions.
type ScopedKeyer struct {
	scope string
	inner Keyer
}

// NewScopedKeyer returns a Keyer that prefixes keys with scope. An
// empty scope falls back to unscoped keys.
func NewScopedKeyer(scope string, inner Keyer) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{scope: scope, inner: inner}
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(requestHash, format string) string {
	key := k.inner.ArtifactKey(requestHash, format)
	if k.scope == "" {
		return key
	}
	return k.scope + ":" + key
}
