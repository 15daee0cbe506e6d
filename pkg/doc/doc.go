// Package doc implements the graphdoc document model: an attributed directed
// or undirected multigraph held as a pair of relational element tables.
//
// A Document is an immutable snapshot value. Builder operations (WithNodes,
// WithEdges, WithDefaultAttrs, ...) validate their input up front and return a
// new Document, leaving the receiver untouched. A failed operation returns the
// receiver unchanged alongside the error - there is never a half-built state.
//
// Attribute columns grow on write: setting an attribute on one element adds
// the column to the table without requiring other elements to define it.
// Absent cells read as the empty string. The order in which columns first
// appear is recorded per table and drives serialization order downstream; it
// is an observable property of the document, not an implementation detail.
package doc

import (
	"slices"
	"time"

	"github.com/matzehuels/graphdoc/pkg/errors"
)

// Namespace identifies one of the three default-attribute statement lists.
type Namespace string

// Attribute namespaces for default statements.
const (
	NamespaceGraph Namespace = "graph"
	NamespaceNode  Namespace = "node"
	NamespaceEdge  Namespace = "edge"
)

// Reserved column names that can never be used as attribute columns.
const (
	ColID   = "id"
	ColFrom = "from"
	ColTo   = "to"
)

// Node is a row of the node table: a unique, non-empty id plus an attribute
// cell per column. Attrs never contains empty-string values; an absent key
// reads as the empty cell.
type Node struct {
	ID    string
	Attrs map[string]string
}

// Attr returns the cell value for the named column, or "" when absent.
func (n Node) Attr(name string) string { return n.Attrs[name] }

// Edge is a row of the edge table: an ordered endpoint pair plus attributes.
// Identical pairs may repeat (multigraph).
type Edge struct {
	From  string
	To    string
	Attrs map[string]string
}

// Attr returns the cell value for the named column, or "" when absent.
func (e Edge) Attr(name string) string { return e.Attrs[name] }

// Key returns the endpoint-pair key used by selections ("from->to").
func (e Edge) Key() string { return e.From + "->" + e.To }

// Document is an immutable multigraph snapshot: an insertion-ordered node
// table keyed by id, an insertion-ordered edge list, per-namespace default
// statement lists, the directed flag, and optional metadata.
//
// The zero value is not usable - use New.
type Document struct {
	directed bool
	name     string
	created  time.Time
	timezone string

	nodes     []Node
	nodeIndex map[string]int
	nodeCols  []string

	edges    []Edge
	edgeCols []string

	graphDefaults []string
	nodeDefaults  []string
	edgeDefaults  []string
}

// New creates an empty document. The directed flag decides the graph-type
// token and edge connector used at serialization time.
func New(directed bool) *Document {
	return &Document{
		directed:  directed,
		nodeIndex: make(map[string]int),
	}
}

// Directed reports whether the document describes a directed graph.
func (d *Document) Directed() bool { return d.directed }

// Name returns the optional document name.
func (d *Document) Name() string { return d.name }

// Created returns the optional creation timestamp and timezone label.
func (d *Document) Created() (time.Time, string) { return d.created, d.timezone }

// NodeCount returns the number of node rows.
func (d *Document) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edge rows.
func (d *Document) EdgeCount() int { return len(d.edges) }

// HasNode reports whether a node with the given id exists.
func (d *Document) HasNode(id string) bool {
	_, ok := d.nodeIndex[id]
	return ok
}

// Nodes returns a copy of the node table in insertion order.
// Attribute maps are copied; mutating the result does not affect the document.
func (d *Document) Nodes() []Node {
	out := make([]Node, len(d.nodes))
	for i, n := range d.nodes {
		out[i] = Node{ID: n.ID, Attrs: copyAttrs(n.Attrs)}
	}
	return out
}

// Edges returns a copy of the edge table in insertion order.
func (d *Document) Edges() []Edge {
	out := make([]Edge, len(d.edges))
	for i, e := range d.edges {
		out[i] = Edge{From: e.From, To: e.To, Attrs: copyAttrs(e.Attrs)}
	}
	return out
}

// NodeColumns returns the node-table attribute columns in first-appearance order.
func (d *Document) NodeColumns() []string { return slices.Clone(d.nodeCols) }

// EdgeColumns returns the edge-table attribute columns in first-appearance order.
func (d *Document) EdgeColumns() []string { return slices.Clone(d.edgeCols) }

// DefaultAttrs returns the raw default-attribute statements for a namespace
// in the order they were added.
func (d *Document) DefaultAttrs(ns Namespace) []string {
	switch ns {
	case NamespaceGraph:
		return slices.Clone(d.graphDefaults)
	case NamespaceNode:
		return slices.Clone(d.nodeDefaults)
	case NamespaceEdge:
		return slices.Clone(d.edgeDefaults)
	}
	return nil
}

// WithName returns a document with the given name set.
func (d *Document) WithName(name string) *Document {
	out := d.clone()
	out.name = name
	return out
}

// WithTime returns a document with creation time metadata set.
func (d *Document) WithTime(t time.Time, tz string) *Document {
	out := d.clone()
	out.created = t
	out.timezone = tz
	return out
}

// WithNodes returns a document with the given nodes appended, each carrying
// the same attribute cells. Empty attribute values are dropped on write so
// that absent and empty cells are indistinguishable, matching resolution.
//
// Fails with a SCHEMA_ERROR when an id is empty or collides with an existing
// or listed node. No node is added on failure.
func (d *Document) WithNodes(ids []string, attrs map[string]string) (*Document, error) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return d, errors.New(errors.ErrCodeSchema, "node id must not be empty")
		}
		if _, ok := d.nodeIndex[id]; ok {
			return d, errors.New(errors.ErrCodeSchema, "duplicate node id %q", id)
		}
		if _, ok := seen[id]; ok {
			return d, errors.New(errors.ErrCodeSchema, "duplicate node id %q", id)
		}
		seen[id] = struct{}{}
	}

	out := d.clone()
	cells := nonEmpty(attrs)
	for _, id := range ids {
		out.nodeIndex[id] = len(out.nodes)
		out.nodes = append(out.nodes, Node{ID: id, Attrs: copyAttrs(cells)})
	}
	out.nodeCols = growColumns(out.nodeCols, cells)
	return out, nil
}

// WithEdges returns a document with the given endpoint pairs appended, each
// carrying the same attribute cells. When autoCreate is true, endpoints that
// do not name an existing node are created as attribute-less nodes first, in
// pair order.
//
// Fails with a REFERENCE_ERROR when autoCreate is false and an endpoint is
// unknown. All pairs are validated before any edge is added.
func (d *Document) WithEdges(pairs [][2]string, attrs map[string]string, autoCreate bool) (*Document, error) {
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			return d, errors.New(errors.ErrCodeSchema, "edge endpoint id must not be empty")
		}
	}
	if !autoCreate {
		for _, p := range pairs {
			for _, id := range p {
				if _, ok := d.nodeIndex[id]; !ok {
					return d, errors.New(errors.ErrCodeReference, "edge endpoint %q is not a known node", id)
				}
			}
		}
	}

	out := d.clone()
	for _, p := range pairs {
		for _, id := range p {
			if _, ok := out.nodeIndex[id]; !ok {
				out.nodeIndex[id] = len(out.nodes)
				out.nodes = append(out.nodes, Node{ID: id, Attrs: map[string]string{}})
			}
		}
	}
	cells := nonEmpty(attrs)
	for _, p := range pairs {
		out.edges = append(out.edges, Edge{From: p[0], To: p[1], Attrs: copyAttrs(cells)})
	}
	out.edgeCols = growColumns(out.edgeCols, cells)
	return out, nil
}

// WithNodeAttrs returns a document with the attribute cells applied to one
// existing node. Fails with a REFERENCE_ERROR when the id is unknown.
func (d *Document) WithNodeAttrs(id string, attrs map[string]string) (*Document, error) {
	idx, ok := d.nodeIndex[id]
	if !ok {
		return d, errors.New(errors.ErrCodeReference, "node %q not found", id)
	}
	out := d.clone()
	cells := nonEmpty(attrs)
	for k, v := range cells {
		out.nodes[idx].Attrs[k] = v
	}
	out.nodeCols = growColumns(out.nodeCols, cells)
	return out, nil
}

// WithEdgeAttrs returns a document with the attribute cells applied to every
// edge from->to. Fails with a REFERENCE_ERROR when no such edge exists.
func (d *Document) WithEdgeAttrs(from, to string, attrs map[string]string) (*Document, error) {
	matched := false
	for _, e := range d.edges {
		if e.From == from && e.To == to {
			matched = true
			break
		}
	}
	if !matched {
		return d, errors.New(errors.ErrCodeReference, "edge %s->%s not found", from, to)
	}
	out := d.clone()
	cells := nonEmpty(attrs)
	for i := range out.edges {
		if out.edges[i].From == from && out.edges[i].To == to {
			for k, v := range cells {
				out.edges[i].Attrs[k] = v
			}
		}
	}
	out.edgeCols = growColumns(out.edgeCols, cells)
	return out, nil
}

// WithDefaultAttrs returns a document with the raw statements appended to the
// namespace's default-attribute list. Statements are emitted verbatim inside
// the namespace's bracket group at serialization time.
func (d *Document) WithDefaultAttrs(ns Namespace, statements []string) (*Document, error) {
	out := d.clone()
	switch ns {
	case NamespaceGraph:
		out.graphDefaults = append(out.graphDefaults, statements...)
	case NamespaceNode:
		out.nodeDefaults = append(out.nodeDefaults, statements...)
	case NamespaceEdge:
		out.edgeDefaults = append(out.edgeDefaults, statements...)
	default:
		return d, errors.New(errors.ErrCodeConfig, "unknown attribute namespace %q", ns)
	}
	return out, nil
}

// RenameNodeAttr returns a document with the node-table column renamed.
// Fails with a CONFIG_ERROR when the new name collides with an existing or
// reserved column, or with a NOT_FOUND error when the old column is absent.
func (d *Document) RenameNodeAttr(oldName, newName string) (*Document, error) {
	return d.renameColumn(oldName, newName, true)
}

// RenameEdgeAttr returns a document with the edge-table column renamed.
// Same failure modes as RenameNodeAttr.
func (d *Document) RenameEdgeAttr(oldName, newName string) (*Document, error) {
	return d.renameColumn(oldName, newName, false)
}

func (d *Document) renameColumn(oldName, newName string, nodeTable bool) (*Document, error) {
	if newName == "" {
		return d, errors.New(errors.ErrCodeConfig, "column name must not be empty")
	}
	if newName == ColID || newName == ColFrom || newName == ColTo {
		return d, errors.New(errors.ErrCodeConfig, "column name %q is reserved", newName)
	}
	cols := d.edgeCols
	if nodeTable {
		cols = d.nodeCols
	}
	if !slices.Contains(cols, oldName) {
		return d, errors.New(errors.ErrCodeNotFound, "no column named %q", oldName)
	}
	if slices.Contains(cols, newName) {
		return d, errors.New(errors.ErrCodeConfig, "column %q already exists", newName)
	}

	out := d.clone()
	if nodeTable {
		out.nodeCols[slices.Index(out.nodeCols, oldName)] = newName
		for i := range out.nodes {
			renameKey(out.nodes[i].Attrs, oldName, newName)
		}
	} else {
		out.edgeCols[slices.Index(out.edgeCols, oldName)] = newName
		for i := range out.edges {
			renameKey(out.edges[i].Attrs, oldName, newName)
		}
	}
	return out, nil
}

// WithNodeColumnOrder returns a document with the node-table columns
// reordered. cols must be a permutation of the existing columns; fails with a
// CONFIG_ERROR otherwise. Column order drives serialization order, so this is
// an observable operation, not a cosmetic one.
func (d *Document) WithNodeColumnOrder(cols []string) (*Document, error) {
	if err := checkPermutation(d.nodeCols, cols); err != nil {
		return d, err
	}
	out := d.clone()
	out.nodeCols = slices.Clone(cols)
	return out, nil
}

// WithEdgeColumnOrder returns a document with the edge-table columns
// reordered. Same contract as WithNodeColumnOrder.
func (d *Document) WithEdgeColumnOrder(cols []string) (*Document, error) {
	if err := checkPermutation(d.edgeCols, cols); err != nil {
		return d, err
	}
	out := d.clone()
	out.edgeCols = slices.Clone(cols)
	return out, nil
}

func checkPermutation(have, want []string) error {
	a, b := slices.Clone(have), slices.Clone(want)
	slices.Sort(a)
	slices.Sort(b)
	if !slices.Equal(a, b) {
		return errors.New(errors.ErrCodeConfig, "column list is not a permutation of the existing columns")
	}
	return nil
}

// clone deep-copies the document so builder operations can mutate the copy.
func (d *Document) clone() *Document {
	out := &Document{
		directed:      d.directed,
		name:          d.name,
		created:       d.created,
		timezone:      d.timezone,
		nodes:         make([]Node, len(d.nodes)),
		nodeIndex:     make(map[string]int, len(d.nodeIndex)),
		nodeCols:      slices.Clone(d.nodeCols),
		edges:         make([]Edge, len(d.edges)),
		edgeCols:      slices.Clone(d.edgeCols),
		graphDefaults: slices.Clone(d.graphDefaults),
		nodeDefaults:  slices.Clone(d.nodeDefaults),
		edgeDefaults:  slices.Clone(d.edgeDefaults),
	}
	for i, n := range d.nodes {
		out.nodes[i] = Node{ID: n.ID, Attrs: copyAttrs(n.Attrs)}
	}
	for id, idx := range d.nodeIndex {
		out.nodeIndex[id] = idx
	}
	for i, e := range d.edges {
		out.edges[i] = Edge{From: e.From, To: e.To, Attrs: copyAttrs(e.Attrs)}
	}
	return out
}

func copyAttrs(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// nonEmpty drops empty-valued cells so the tables never store them.
func nonEmpty(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// growColumns appends newly seen attribute names to the ordered column list.
// Names already present keep their position. New names from a single write
// are appended in sorted order so column growth is deterministic.
func growColumns(cols []string, cells map[string]string) []string {
	var added []string
	for k := range cells {
		if !slices.Contains(cols, k) && !slices.Contains(added, k) {
			added = append(added, k)
		}
	}
	slices.Sort(added)
	return append(cols, added...)
}

func renameKey(attrs map[string]string, oldName, newName string) {
	if v, ok := attrs[oldName]; ok {
		attrs[newName] = v
		delete(attrs, oldName)
	}
}
