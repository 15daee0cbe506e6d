// Package dot generates the diagram-description text for a document: a
// digraph/graph block with default-attribute statements, node and edge
// statements, collapsed cluster placeholders, and same-rank subgraph hints.
//
// Generation is a pure fold over the document's ordered tables. Each stage
// consumes a typed intermediate block structure and produces the next one;
// nothing is mutated once handed to a later stage, so generating a document
// twice yields byte-identical text.
package dot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphdoc/pkg/doc"
)

// Grouping directive columns. These drive the cluster and rank stages and are
// never emitted as per-element attribute fragments.
const (
	ColCluster = "cluster"
	ColRank    = "rank"
)

// nodeAttrNames is the fixed set of node attributes that resolve into text.
// Columns outside this set stay in the document but are excluded from output.
var nodeAttrNames = map[string]struct{}{
	"label": {}, "shape": {}, "style": {}, "color": {}, "fillcolor": {},
	"fontcolor": {}, "fontname": {}, "fontsize": {}, "penwidth": {},
	"height": {}, "width": {}, "pos": {}, "tooltip": {}, "xlabel": {},
	"sides": {}, "peripheries": {}, "orientation": {}, "skew": {},
	"distortion": {}, "fixedsize": {}, "image": {}, "margin": {},
}

// edgeAttrNames is the fixed set of edge attributes that resolve into text.
var edgeAttrNames = map[string]struct{}{
	"label": {}, "style": {}, "color": {}, "fontcolor": {}, "fontname": {},
	"fontsize": {}, "penwidth": {}, "arrowhead": {}, "arrowtail": {},
	"arrowsize": {}, "weight": {}, "dir": {}, "minlen": {}, "len": {},
	"constraint": {}, "decorate": {}, "tooltip": {}, "headport": {},
	"tailport": {}, "xlabel": {},
}

// resolveAttrs folds one element's attribute cells into the joined fragment
// list. Columns are visited in table order; cells that are empty, outside the
// recognized set, or grouping directives contribute nothing. Every emitted
// fragment has the form "name = 'value'" and fragments are joined with ", ",
// so fragment order equals column order by construction.
func resolveAttrs(cols []string, recognized map[string]struct{}, cell func(string) string) string {
	var frags []string
	for _, col := range cols {
		if col == ColCluster || col == ColRank {
			continue
		}
		if _, ok := recognized[col]; !ok {
			continue
		}
		v := cell(col)
		if v == "" {
			continue
		}
		frags = append(frags, fmt.Sprintf("%s = '%s'", col, v))
	}
	return strings.Join(frags, ", ")
}

// ResolveNodeAttrs returns the joined attribute fragments for one node row.
func ResolveNodeAttrs(cols []string, n doc.Node) string {
	return resolveAttrs(cols, nodeAttrNames, n.Attr)
}

// ResolveEdgeAttrs returns the joined attribute fragments for one edge row.
func ResolveEdgeAttrs(cols []string, e doc.Edge) string {
	return resolveAttrs(cols, edgeAttrNames, e.Attr)
}
