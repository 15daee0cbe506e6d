package dot

import "github.com/matzehuels/graphdoc/pkg/doc"

// nodeStmt is one node declaration: the quoted id, its resolved attribute
// fragments, and the grouping directives the later stages consume.
type nodeStmt struct {
	id      string
	attrs   string
	cluster string
	rank    string
}

// edgeStmt is one edge declaration with resolved attribute fragments.
type edgeStmt struct {
	from  string
	to    string
	attrs string
}

// nodeGroup is a run of node statements in the node block. A non-empty rank
// marks a same-rank subgraph wrapper; otherwise the statements stand alone.
type nodeGroup struct {
	rank  string
	stmts []nodeStmt
}

// blocks is the intermediate result each generation stage builds on. Fields
// are explicit and always present; a stage that has nothing to contribute
// leaves its field empty rather than undefined.
type blocks struct {
	directed bool

	graphDefaults []string
	nodeDefaults  []string
	edgeDefaults  []string

	nodes  []nodeStmt
	groups []nodeGroup
	edges  []edgeStmt
}

// buildBlocks runs the attribute-resolution stage: every table row becomes a
// statement with its fragments resolved in column order.
func buildBlocks(d *doc.Document) blocks {
	b := blocks{
		directed:      d.Directed(),
		graphDefaults: d.DefaultAttrs(doc.NamespaceGraph),
		nodeDefaults:  d.DefaultAttrs(doc.NamespaceNode),
		edgeDefaults:  d.DefaultAttrs(doc.NamespaceEdge),
	}

	nodeCols := d.NodeColumns()
	for _, n := range d.Nodes() {
		b.nodes = append(b.nodes, nodeStmt{
			id:      n.ID,
			attrs:   ResolveNodeAttrs(nodeCols, n),
			cluster: n.Attr(ColCluster),
			rank:    n.Attr(ColRank),
		})
	}

	edgeCols := d.EdgeColumns()
	for _, e := range d.Edges() {
		b.edges = append(b.edges, edgeStmt{
			from:  e.From,
			to:    e.To,
			attrs: ResolveEdgeAttrs(edgeCols, e),
		})
	}
	return b
}
