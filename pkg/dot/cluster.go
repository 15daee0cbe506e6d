package dot

import "fmt"

// PlaceholderID returns the synthetic node id substituted for a cluster.
func PlaceholderID(cluster string) string {
	return "cluster_" + cluster
}

// collapseClusters replaces every group of nodes sharing a non-empty cluster
// value with one placeholder statement labeled with the cluster id and member
// count. The placeholder takes the position of the group's first member.
// Groups of zero or one members collapse the same way - there is no
// small-group exception.
//
// Edges are rewritten against the membership map: an edge with both endpoints
// in the same cluster is suppressed entirely, and any endpoint belonging to a
// cluster is replaced with that cluster's placeholder id. Edge attributes
// survive rewriting untouched.
func collapseClusters(b blocks) blocks {
	member := make(map[string]string)
	count := make(map[string]int)
	for _, n := range b.nodes {
		if n.cluster != "" {
			member[n.id] = n.cluster
			count[n.cluster]++
		}
	}
	if len(member) == 0 {
		return b
	}

	out := b
	out.nodes = nil
	emitted := make(map[string]bool)
	for _, n := range b.nodes {
		if n.cluster == "" {
			out.nodes = append(out.nodes, n)
			continue
		}
		if emitted[n.cluster] {
			continue
		}
		emitted[n.cluster] = true
		out.nodes = append(out.nodes, nodeStmt{
			id:    PlaceholderID(n.cluster),
			attrs: fmt.Sprintf("label = 'cluster %s (%d nodes)'", n.cluster, count[n.cluster]),
		})
	}

	out.edges = nil
	for _, e := range b.edges {
		fc, tc := member[e.from], member[e.to]
		if fc != "" && fc == tc {
			continue
		}
		if fc != "" {
			e.from = PlaceholderID(fc)
		}
		if tc != "" {
			e.to = PlaceholderID(tc)
		}
		out.edges = append(out.edges, e)
	}
	return out
}
