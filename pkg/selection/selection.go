// Package selection tracks subsets of document elements and caches auxiliary
// scalar vectors computed for them (typically results pulled back from the
// external algorithms boundary, such as centrality scores).
//
// A Selection is a plain value: an element kind plus the ordered ids of the
// selected elements. Edge ids use the endpoint-pair key "from->to". The core
// only reads resolved attribute values for a selection; vector persistence is
// delegated to a [cache.Cache] via [Store].
package selection

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matzehuels/graphdoc/pkg/cache"
	"github.com/matzehuels/graphdoc/pkg/doc"
	"github.com/matzehuels/graphdoc/pkg/errors"
)

// Kind distinguishes node selections from edge selections.
type Kind string

// Selection kinds.
const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// Selection is an ordered set of node ids or edge keys.
type Selection struct {
	Kind Kind
	IDs  []string
}

// Nodes creates a node selection over the given ids.
func Nodes(ids ...string) Selection {
	return Selection{Kind: KindNode, IDs: ids}
}

// Edges creates an edge selection over the given endpoint-pair keys
// (see [doc.Edge.Key]).
func Edges(keys ...string) Selection {
	return Selection{Kind: KindEdge, IDs: keys}
}

// AttrValues reads the named attribute cell for every selected element, in
// selection order. Elements missing from the document and absent cells both
// read as the empty string.
func (s Selection) AttrValues(d *doc.Document, attr string) []string {
	out := make([]string, len(s.IDs))
	switch s.Kind {
	case KindNode:
		byID := make(map[string]doc.Node)
		for _, n := range d.Nodes() {
			byID[n.ID] = n
		}
		for i, id := range s.IDs {
			out[i] = byID[id].Attr(attr)
		}
	case KindEdge:
		byKey := make(map[string]doc.Edge)
		for _, e := range d.Edges() {
			if _, ok := byKey[e.Key()]; !ok {
				byKey[e.Key()] = e
			}
		}
		for i, key := range s.IDs {
			out[i] = byKey[key].Attr(attr)
		}
	}
	return out
}

// hash derives a stable content hash for the selection.
func (s Selection) hash() string {
	return cache.Hash([]byte(string(s.Kind) + ":" + strings.Join(s.IDs, "\x00")))
}

// Store caches scalar vectors keyed by selection content and a caller-chosen
// name. It does not interpret the vectors.
type Store struct {
	cache cache.Cache
	keyer cache.Keyer
}

// NewStore creates a vector store on top of a cache backend.
// A nil cache disables storage (every read misses); a nil keyer uses the
// default key scheme.
func NewStore(c cache.Cache, keyer cache.Keyer) *Store {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Store{cache: c, keyer: keyer}
}

// PutVector stores a scalar vector for the selection under name.
func (st *Store) PutVector(ctx context.Context, sel Selection, name string, vec []float64) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "vector name must not be empty")
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode vector %q", name)
	}
	return st.cache.Set(ctx, st.keyer.VectorKey(sel.hash(), name), data, cache.TTLVector)
}

// Vector retrieves a stored scalar vector. The boolean reports whether a
// vector was found for this selection and name.
func (st *Store) Vector(ctx context.Context, sel Selection, name string) ([]float64, bool, error) {
	data, hit, err := st.cache.Get(ctx, st.keyer.VectorKey(sel.hash(), name))
	if err != nil || !hit {
		return nil, false, err
	}
	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "decode vector %q", name)
	}
	return vec, true, nil
}
