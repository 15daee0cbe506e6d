// Package cache provides the caching collaborator used by the pipeline and
// the selection store. Backends share one byte-oriented interface; keys are
// derived from content hashes so identical inputs always hit.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs per cached artifact class. Generated text and rendered artifacts are
// pure functions of their inputs, so long TTLs are safe; vectors are caller
// data and never expire by default.
const (
	TTLText     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLVector   = time.Duration(0) // no expiration
)

// Cache is the minimal byte-store contract shared by all backends.
// Get reports a miss with a false second return and a nil error; errors are
// reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for the artifact classes graphdoc caches.
type Keyer interface {
	// TextKey keys generated diagram text by document content hash.
	TextKey(docHash string) string
	// ArtifactKey keys rendered output by text hash and format.
	ArtifactKey(textHash, format string) string
	// VectorKey keys a cached scalar vector by selection hash and name.
	VectorKey(selHash, name string) string
}

// DefaultKeyer is the stateless key scheme used when no scoping is needed.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default key scheme.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TextKey generates a key for generated diagram text.
func (k *DefaultKeyer) TextKey(docHash string) string {
	return "text:" + docHash
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(textHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, textHash)
}

// VectorKey generates a key for a cached selection vector.
func (k *DefaultKeyer) VectorKey(selHash, name string) string {
	return fmt.Sprintf("vector:%s:%s", name, selHash)
}

// ScopedKeyer wraps a Keyer with a prefix so callers sharing one backend
// (e.g. one Redis instance) get isolated namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TextKey generates a prefixed key for generated diagram text.
func (k *ScopedKeyer) TextKey(docHash string) string {
	return k.prefix + k.inner.TextKey(docHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(textHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(textHash, format)
}

// VectorKey generates a prefixed key for a cached selection vector.
func (k *ScopedKeyer) VectorKey(selHash, name string) string {
	return k.prefix + k.inner.VectorKey(selHash, name)
}
