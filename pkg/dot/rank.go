package dot

// groupRanks wraps node statements sharing a non-empty rank value into
// same-rank groups, provided at least two statements share it. Statements are
// carried into the group unmodified and the group takes the position of its
// first member. Single-member rank values and rank-less statements stand
// alone. Edges are never touched by this stage.
func groupRanks(b blocks) blocks {
	count := make(map[string]int)
	for _, n := range b.nodes {
		if n.rank != "" {
			count[n.rank]++
		}
	}

	out := b
	out.nodes = nil
	emitted := make(map[string]bool)
	for _, n := range b.nodes {
		if n.rank == "" || count[n.rank] < 2 {
			out.groups = append(out.groups, nodeGroup{stmts: []nodeStmt{n}})
			continue
		}
		if emitted[n.rank] {
			continue
		}
		emitted[n.rank] = true
		g := nodeGroup{rank: n.rank}
		for _, m := range b.nodes {
			if m.rank == n.rank {
				g.stmts = append(g.stmts, m)
			}
		}
		out.groups = append(out.groups, g)
	}
	return out
}
