package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphdoc/pkg/doc"
)

// manifest is the TOML input format for hand-written documents:
//
//	directed = true
//	name = "deploy"
//
//	[defaults]
//	graph = ["layout = dot"]
//	node = ["shape = circle"]
//
//	[[node]]
//	id = "a"
//	attrs = { label = "A", fillcolor = "red", "alpha:fillcolor" = "50" }
//
//	[[edge]]
//	from = "a"
//	to = "b"
//	attrs = { weight = "2" }
//
// TOML tables are unordered, so attribute column order follows the same
// first-appearance-then-lexicographic rule as [ReadJSON]; node_columns and
// edge_columns arrays pin it explicitly when it matters. auto_create = true
// lets an edges-only manifest create its nodes implicitly.
type manifest struct {
	Directed    bool                `toml:"directed"`
	Name        string              `toml:"name"`
	AutoCreate  bool                `toml:"auto_create"`
	NodeColumns []string            `toml:"node_columns"`
	EdgeColumns []string            `toml:"edge_columns"`
	Defaults    map[string][]string `toml:"defaults"`
	Nodes       []manifestNode      `toml:"node"`
	Edges       []manifestEdge      `toml:"edge"`
}

type manifestNode struct {
	ID    string            `toml:"id"`
	Attrs map[string]string `toml:"attrs"`
}

type manifestEdge struct {
	From  string            `toml:"from"`
	To    string            `toml:"to"`
	Attrs map[string]string `toml:"attrs"`
}

// ReadTOML decodes a TOML manifest into a document.
func ReadTOML(data []byte) (*doc.Document, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	d := document{
		Directed:    m.Directed,
		Name:        m.Name,
		AutoCreate:  m.AutoCreate,
		NodeColumns: m.NodeColumns,
		EdgeColumns: m.EdgeColumns,
		Defaults:    m.Defaults,
	}
	for _, n := range m.Nodes {
		d.Nodes = append(d.Nodes, node{ID: n.ID, Attrs: n.Attrs})
	}
	for _, e := range m.Edges {
		d.Edges = append(d.Edges, edge{From: e.From, To: e.To, Attrs: e.Attrs})
	}
	return buildDocument(d)
}

// ImportFile reads a document manifest at path, dispatching on the file
// extension: .toml for TOML manifests, anything else is treated as JSON.
func ImportFile(path string) (*doc.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return ReadTOML(data)
	}
	return ImportJSON(path)
}
