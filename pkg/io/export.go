// Package io imports and exports graphdoc documents. JSON is the canonical
// round-trip format; TOML manifests are the hand-written input format for
// the CLI. Neither format parses generated diagram text - generation is
// one-directional.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/graphdoc/pkg/doc"
)

// document is the canonical JSON serialization of a doc.Document. The
// node_columns/edge_columns arrays make the table column order explicit so a
// round trip preserves serialization order exactly; attribute maps alone
// would not.
type document struct {
	Directed    bool              `json:"directed"`
	Name        string            `json:"name,omitempty"`
	Created     *time.Time        `json:"created,omitempty"`
	Timezone    string            `json:"timezone,omitempty"`
	NodeColumns []string          `json:"node_columns,omitempty"`
	EdgeColumns []string          `json:"edge_columns,omitempty"`
	Nodes       []node            `json:"nodes"`
	Edges       []edge            `json:"edges"`
	Defaults    map[string][]string `json:"defaults,omitempty"`

	// AutoCreate lets edge endpoints create their nodes implicitly, so a
	// manifest can be written edges-only. Input-side only; exports always
	// list every node.
	AutoCreate bool `json:"auto_create,omitempty"`
}

type node struct {
	ID    string            `json:"id"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

type edge struct {
	From  string            `json:"from"`
	To    string            `json:"to"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// WriteJSON encodes a document as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(d *doc.Document, w io.Writer) error {
	out := document{
		Directed:    d.Directed(),
		Name:        d.Name(),
		NodeColumns: d.NodeColumns(),
		EdgeColumns: d.EdgeColumns(),
		Nodes:       make([]node, 0, d.NodeCount()),
		Edges:       make([]edge, 0, d.EdgeCount()),
		Defaults:    map[string][]string{},
	}
	if t, tz := d.Created(); !t.IsZero() {
		created := t
		out.Created = &created
		out.Timezone = tz
	}
	for _, n := range d.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: n.ID, Attrs: n.Attrs})
	}
	for _, e := range d.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Attrs: e.Attrs})
	}
	for _, ns := range []doc.Namespace{doc.NamespaceGraph, doc.NamespaceNode, doc.NamespaceEdge} {
		if stmts := d.DefaultAttrs(ns); len(stmts) > 0 {
			out.Defaults[string(ns)] = stmts
		}
	}
	if len(out.Defaults) == 0 {
		out.Defaults = nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
func ExportJSON(d *doc.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
