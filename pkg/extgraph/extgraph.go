// Package extgraph is the conversion boundary between a graphdoc document and
// the minimal labeled-multigraph value consumed by external graph-algorithm
// libraries (shortest paths, centrality, community detection).
//
// The boundary value carries only what the algorithms need: the ordered node
// id list, the ordered edge endpoint pairs, and a declared subset of numeric
// attributes aligned by position to the corresponding table. Everything else
// is dropped at the boundary and is not restored by the reverse conversion;
// callers needing attribute preservation across an algorithmic round trip
// re-merge the original document's tables with [MergeAttrs].
package extgraph

import (
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/graphdoc/pkg/doc"
	"github.com/matzehuels/graphdoc/pkg/errors"
)

// Endpoints is one edge of the boundary multigraph.
type Endpoints struct {
	From string
	To   string
}

// Graph is the minimal labeled-multigraph value exchanged with external
// algorithm libraries. NodeValues and EdgeValues hold one float64 per node or
// edge, aligned by position to NodeIDs and Edges; a cell that was absent in
// the source table is NaN.
type Graph struct {
	Directed   bool
	NodeIDs    []string
	Edges      []Endpoints
	NodeValues map[string][]float64
	EdgeValues map[string][]float64
}

// FromDocument converts a document to the boundary value, carrying only the
// declared numeric attributes. A declared attribute is read from whichever
// table defines its column; absent or empty cells become NaN.
//
// Fails with a CONFIG_ERROR when a declared attribute cell does not parse as
// a number. The exact node id set and edge multiset are always preserved.
func FromDocument(d *doc.Document, declared []string) (*Graph, error) {
	nodes := d.Nodes()
	edges := d.Edges()

	g := &Graph{
		Directed:   d.Directed(),
		NodeIDs:    make([]string, len(nodes)),
		Edges:      make([]Endpoints, len(edges)),
		NodeValues: make(map[string][]float64),
		EdgeValues: make(map[string][]float64),
	}
	for i, n := range nodes {
		g.NodeIDs[i] = n.ID
	}
	for i, e := range edges {
		g.Edges[i] = Endpoints{From: e.From, To: e.To}
	}

	nodeCols := d.NodeColumns()
	edgeCols := d.EdgeColumns()
	for _, attr := range declared {
		if slices.Contains(nodeCols, attr) {
			vals := make([]float64, len(nodes))
			for i, n := range nodes {
				v, err := parseCell(attr, n.Attr(attr))
				if err != nil {
					return nil, err
				}
				vals[i] = v
			}
			g.NodeValues[attr] = vals
		}
		if slices.Contains(edgeCols, attr) {
			vals := make([]float64, len(edges))
			for i, e := range edges {
				v, err := parseCell(attr, e.Attr(attr))
				if err != nil {
					return nil, err
				}
				vals[i] = v
			}
			g.EdgeValues[attr] = vals
		}
	}
	return g, nil
}

// ToDocument converts a boundary value back into a document. Numeric values
// are coerced to text cells; NaN cells stay empty. Node ids arrive before
// edges, so endpoint auto-creation is never involved.
//
// Edge values are restored by edge index, so parallel edges keep their own
// cells. Pair-keyed attribute writes would smear one value across every
// duplicate of the pair.
func ToDocument(g *Graph) (*doc.Document, error) {
	d, err := doc.New(g.Directed).WithNodes(g.NodeIDs, nil)
	if err != nil {
		return nil, err
	}

	for i, e := range g.Edges {
		attrs := make(map[string]string)
		for attr, vals := range g.EdgeValues {
			if math.IsNaN(vals[i]) {
				continue
			}
			attrs[attr] = formatValue(vals[i])
		}
		d, err = d.WithEdges([][2]string{{e.From, e.To}}, attrs, false)
		if err != nil {
			return nil, err
		}
	}

	for attr, vals := range g.NodeValues {
		for i, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			d, err = d.WithNodeAttrs(g.NodeIDs[i], map[string]string{attr: formatValue(v)})
			if err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// MergeAttrs copies every attribute cell of orig onto result, joining nodes
// by id and edges by endpoint pair. Elements of result with no counterpart in
// orig are left as-is. This restores the attributes an algorithmic round trip
// dropped at the boundary.
func MergeAttrs(result, orig *doc.Document) (*doc.Document, error) {
	out := result
	var err error
	for _, n := range orig.Nodes() {
		if !out.HasNode(n.ID) || len(n.Attrs) == 0 {
			continue
		}
		out, err = out.WithNodeAttrs(n.ID, n.Attrs)
		if err != nil {
			return nil, err
		}
	}

	have := make(map[string]bool)
	for _, e := range out.Edges() {
		have[e.Key()] = true
	}
	merged := make(map[string]bool)
	for _, e := range orig.Edges() {
		if !have[e.Key()] || len(e.Attrs) == 0 || merged[e.Key()] {
			continue
		}
		merged[e.Key()] = true
		out, err = out.WithEdgeAttrs(e.From, e.To, e.Attrs)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseCell(attr, cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeConfig, "attribute %q value %q is not numeric", attr, cell)
	}
	return v, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
