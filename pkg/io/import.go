package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphdoc/pkg/doc"
)

// ReadJSON decodes a JSON document from r.
//
// The input must be a JSON object with "directed", "nodes" and "edges":
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "a", "attrs": {"label": "A"}}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Optional fields: "name", "created", "timezone", "defaults" (object with
// "graph"/"node"/"edge" statement arrays), "node_columns"/"edge_columns"
// to pin the attribute column order, and "auto_create" to let edge
// endpoints create their nodes implicitly (edges-only documents). Without
// explicit column lists, columns are ordered by first appearance, ties
// broken lexicographically.
//
// Duplicate node ids and unknown edge endpoints are reported with the same
// errors the builder operations raise. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*doc.Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return buildDocument(data)
}

// ImportJSON reads a JSON file at path and returns the decoded document.
func ImportJSON(path string) (*doc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func buildDocument(data document) (*doc.Document, error) {
	d := doc.New(data.Directed)
	if data.Name != "" {
		d = d.WithName(data.Name)
	}
	if data.Created != nil {
		d = d.WithTime(*data.Created, data.Timezone)
	}

	var err error
	for _, n := range data.Nodes {
		d, err = d.WithNodes([]string{n.ID}, n.Attrs)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		d, err = d.WithEdges([][2]string{{e.From, e.To}}, e.Attrs, data.AutoCreate)
		if err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	for ns, stmts := range data.Defaults {
		d, err = d.WithDefaultAttrs(doc.Namespace(ns), stmts)
		if err != nil {
			return nil, fmt.Errorf("defaults %s: %w", ns, err)
		}
	}

	if len(data.NodeColumns) > 0 {
		d, err = d.WithNodeColumnOrder(data.NodeColumns)
		if err != nil {
			return nil, fmt.Errorf("node_columns: %w", err)
		}
	}
	if len(data.EdgeColumns) > 0 {
		d, err = d.WithEdgeColumnOrder(data.EdgeColumns)
		if err != nil {
			return nil, fmt.Errorf("edge_columns: %w", err)
		}
	}
	return d, nil
}
