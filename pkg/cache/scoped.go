package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments (or a
// staging and a production server) can share one Redis database without
// reading each other's entries.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "wordsphere:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil the DefaultKeyer is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AnalysisKey returns the prefixed analysis key.
func (k *ScopedKeyer) AnalysisKey(url string) string {
	return k.prefix + k.inner.AnalysisKey(url)
}
