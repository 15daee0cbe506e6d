package dot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphdoc/pkg/doc"
)

// Connector tokens between edge endpoints. The document's directed flag picks
// one token for the whole edge block; per-edge direction overrides do not
// exist in the generated text.
const (
	ConnectorDirected   = "->"
	ConnectorUndirected = "--"
)

// Generate renders a document into its diagram-description text.
//
// The output is assembled in a fixed sequence: the graph-type token and
// opening brace; the default-attribute blocks in graph, node, edge order,
// each omitted entirely when its statement list is empty; the node block
// after cluster collapsing and rank grouping; the edge block; the closing
// brace. A final cleanup pass removes every empty bracketed attribute group
// so no stray "[]" survives.
//
// Attribute values are emitted verbatim between single quotes. Quotes or
// braces inside values are not escaped; callers own value hygiene.
func Generate(d *doc.Document) string {
	b := buildBlocks(d)
	b = collapseClusters(b)
	b = groupRanks(b)
	return cleanup(render(b))
}

func render(b blocks) string {
	token := "graph"
	connector := ConnectorUndirected
	if b.directed {
		token = "digraph"
		connector = ConnectorDirected
	}

	parts := []string{token + " {"}
	for _, def := range []struct {
		ns    string
		stmts []string
	}{
		{"graph", b.graphDefaults},
		{"node", b.nodeDefaults},
		{"edge", b.edgeDefaults},
	} {
		if len(def.stmts) > 0 {
			parts = append(parts, fmt.Sprintf("%s [%s]", def.ns, strings.Join(def.stmts, ", ")))
		}
	}

	if block := renderNodeBlock(b.groups); block != "" {
		parts = append(parts, block)
	}
	if block := renderEdgeBlock(b.edges, connector); block != "" {
		parts = append(parts, block)
	}

	return strings.Join(parts, "\n\n") + "\n\n}\n"
}

func renderNodeBlock(groups []nodeGroup) string {
	var lines []string
	for _, g := range groups {
		if g.rank == "" {
			for _, n := range g.stmts {
				lines = append(lines, nodeLine(n))
			}
			continue
		}
		lines = append(lines, "subgraph{rank = same")
		for _, n := range g.stmts {
			lines = append(lines, nodeLine(n))
		}
		lines = append(lines, "}")
	}
	return strings.Join(lines, "\n")
}

func renderEdgeBlock(edges []edgeStmt, connector string) string {
	var lines []string
	for _, e := range edges {
		lines = append(lines, fmt.Sprintf("'%s'%s'%s' [%s]", e.from, connector, e.to, e.attrs))
	}
	return strings.Join(lines, "\n")
}

func nodeLine(n nodeStmt) string {
	return fmt.Sprintf("'%s' [%s]", n.id, n.attrs)
}

// cleanup strips the empty bracketed attribute groups left behind by
// statements whose attribute list resolved to zero fragments.
func cleanup(s string) string {
	return strings.ReplaceAll(s, " []", "")
}
