package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/graphdoc/pkg/doc"
)

func buildDoc(t *testing.T) *doc.Document {
	t.Helper()
	d, err := doc.New(true).WithNodes([]string{"a"}, map[string]string{"label": "A", "shape": "box"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	d, err = d.WithNodes([]string{"b"}, map[string]string{"label": "B"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	d, err = d.WithEdges([][2]string{{"a", "b"}}, map[string]string{"weight": "2"}, false)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	d, err = d.WithDefaultAttrs(doc.NamespaceGraph, []string{"rankdir = LR"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return d.WithName("deps")
}

func TestJSONRoundTrip(t *testing.T) {
	orig := buildDoc(t)

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if back.Name() != "deps" {
		t.Errorf("name = %q, want deps", back.Name())
	}
	if back.NodeCount() != 2 || back.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", back.NodeCount(), back.EdgeCount())
	}
	if got := back.Nodes()[0].Attr("shape"); got != "box" {
		t.Errorf("shape = %q, want box", got)
	}
	if got := back.Edges()[0].Attr("weight"); got != "2" {
		t.Errorf("weight = %q, want 2", got)
	}
	if got := back.DefaultAttrs(doc.NamespaceGraph); !slices.Equal(got, []string{"rankdir = LR"}) {
		t.Errorf("graph defaults = %v", got)
	}
	// Column order is part of the round trip, not a side effect.
	if got := back.NodeColumns(); !slices.Equal(got, orig.NodeColumns()) {
		t.Errorf("node columns = %v, want %v", got, orig.NodeColumns())
	}
}

func TestJSONRoundTripPreservesPermutedColumns(t *testing.T) {
	orig := buildDoc(t)
	orig, err := orig.WithNodeColumnOrder([]string{"shape", "label"})
	if err != nil {
		t.Fatalf("WithNodeColumnOrder: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got := back.NodeColumns(); !slices.Equal(got, []string{"shape", "label"}) {
		t.Errorf("node columns = %v, want [shape label]", got)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "Garbage",
			input: "not json",
		},
		{
			name:  "DuplicateNode",
			input: `{"directed": true, "nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`,
		},
		{
			name:  "UnknownEndpoint",
			input: `{"directed": true, "nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "z"}]}`,
		},
		{
			name:  "BadColumnList",
			input: `{"directed": true, "node_columns": ["nope"], "nodes": [{"id": "a", "attrs": {"label": "A"}}], "edges": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadJSONAutoCreate(t *testing.T) {
	input := `{"directed": true, "auto_create": true, "nodes": [], "edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]}`

	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if d.NodeCount() != 3 || d.EdgeCount() != 2 {
		t.Errorf("counts = %d/%d, want 3/2", d.NodeCount(), d.EdgeCount())
	}
	for _, id := range []string{"a", "b", "c"} {
		if !d.HasNode(id) {
			t.Errorf("implicit node %q missing", id)
		}
	}

	// Without the flag the same document is rejected.
	withoutFlag := `{"directed": true, "nodes": [], "edges": [{"from": "a", "to": "b"}]}`
	if _, err := ReadJSON(strings.NewReader(withoutFlag)); err == nil {
		t.Error("edges-only document without auto_create should fail")
	}
}

func TestReadTOMLAutoCreate(t *testing.T) {
	input := `
directed = true
auto_create = true

[[edge]]
from = "a"
to = "b"
`
	d, err := ReadTOML([]byte(input))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if d.NodeCount() != 2 || d.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", d.NodeCount(), d.EdgeCount())
	}
}

func TestReadTOML(t *testing.T) {
	input := `
directed = true
name = "deploy"

[defaults]
graph = ["rankdir = LR"]

[[node]]
id = "a"
attrs = { label = "A" }

[[node]]
id = "b"

[[edge]]
from = "a"
to = "b"
attrs = { weight = "2" }
`
	d, err := ReadTOML([]byte(input))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	if d.Name() != "deploy" {
		t.Errorf("name = %q, want deploy", d.Name())
	}
	if !d.Directed() {
		t.Error("directed = false, want true")
	}
	if d.NodeCount() != 2 || d.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", d.NodeCount(), d.EdgeCount())
	}
	if got := d.Nodes()[0].Attr("label"); got != "A" {
		t.Errorf("label = %q, want A", got)
	}
	if got := d.DefaultAttrs(doc.NamespaceGraph); !slices.Equal(got, []string{"rankdir = LR"}) {
		t.Errorf("graph defaults = %v", got)
	}
}

func TestImportFileDispatch(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "m.toml")
	writeFile(t, tomlPath, `
directed = false

[[node]]
id = "a"
`)
	d, err := ImportFile(tomlPath)
	if err != nil {
		t.Fatalf("ImportFile toml: %v", err)
	}
	if d.Directed() || d.NodeCount() != 1 {
		t.Errorf("toml import: directed = %v, nodes = %d", d.Directed(), d.NodeCount())
	}

	jsonPath := filepath.Join(dir, "m.json")
	writeFile(t, jsonPath, `{"directed": true, "nodes": [{"id": "a"}], "edges": []}`)
	d, err = ImportFile(jsonPath)
	if err != nil {
		t.Fatalf("ImportFile json: %v", err)
	}
	if !d.Directed() || d.NodeCount() != 1 {
		t.Errorf("json import: directed = %v, nodes = %d", d.Directed(), d.NodeCount())
	}
}

func TestExportImportFile(t *testing.T) {
	orig := buildDoc(t)
	path := filepath.Join(t.TempDir(), "doc.json")

	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if back.NodeCount() != orig.NodeCount() || back.EdgeCount() != orig.EdgeCount() {
		t.Errorf("counts = %d/%d, want %d/%d",
			back.NodeCount(), back.EdgeCount(), orig.NodeCount(), orig.EdgeCount())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
