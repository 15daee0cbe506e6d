package selection

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/graphdoc/pkg/cache"
	"github.com/matzehuels/graphdoc/pkg/doc"
)

func buildDoc(t *testing.T) *doc.Document {
	t.Helper()
	d, err := doc.New(true).WithNodes([]string{"a", "b", "c"}, map[string]string{"label": "L"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	d, err = d.WithNodeAttrs("b", map[string]string{"label": "B"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	d, err = d.WithEdges([][2]string{{"a", "b"}, {"b", "c"}}, map[string]string{"weight": "2"}, false)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return d
}

func TestAttrValues(t *testing.T) {
	d := buildDoc(t)

	t.Run("NodesInSelectionOrder", func(t *testing.T) {
		got := Nodes("c", "a", "b").AttrValues(d, "label")
		want := []string{"L", "L", "B"}
		if !slices.Equal(got, want) {
			t.Errorf("values = %v, want %v", got, want)
		}
	})

	t.Run("MissingElementReadsEmpty", func(t *testing.T) {
		got := Nodes("a", "ghost").AttrValues(d, "label")
		want := []string{"L", ""}
		if !slices.Equal(got, want) {
			t.Errorf("values = %v, want %v", got, want)
		}
	})

	t.Run("Edges", func(t *testing.T) {
		got := Edges("b->c", "a->b").AttrValues(d, "weight")
		want := []string{"2", "2"}
		if !slices.Equal(got, want) {
			t.Errorf("values = %v, want %v", got, want)
		}
	})
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	st := NewStore(fc, nil)

	sel := Nodes("a", "b", "c")
	vec := []float64{0.5, 1.25, 3}

	if err := st.PutVector(ctx, sel, "centrality", vec); err != nil {
		t.Fatalf("PutVector: %v", err)
	}

	got, hit, err := st.Vector(ctx, sel, "centrality")
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after PutVector")
	}
	if !slices.Equal(got, vec) {
		t.Errorf("vector = %v, want %v", got, vec)
	}
}

func TestStoreKeysBySelectionContent(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	st := NewStore(fc, nil)

	if err := st.PutVector(ctx, Nodes("a", "b"), "score", []float64{1}); err != nil {
		t.Fatalf("PutVector: %v", err)
	}

	// Different id order is a different selection
	if _, hit, _ := st.Vector(ctx, Nodes("b", "a"), "score"); hit {
		t.Error("reordered selection should not hit the stored vector")
	}
	// Same ids but edge kind is a different selection
	if _, hit, _ := st.Vector(ctx, Edges("a", "b"), "score"); hit {
		t.Error("edge selection should not hit a node selection's vector")
	}
	// Different name under the same selection
	if _, hit, _ := st.Vector(ctx, Nodes("a", "b"), "other"); hit {
		t.Error("different vector name should miss")
	}
}

func TestStoreNilCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	st := NewStore(nil, nil)

	if err := st.PutVector(ctx, Nodes("a"), "score", []float64{1}); err != nil {
		t.Fatalf("PutVector: %v", err)
	}
	if _, hit, err := st.Vector(ctx, Nodes("a"), "score"); err != nil || hit {
		t.Errorf("nil-cache store: hit = %v, err = %v, want miss", hit, err)
	}
}

func TestPutVectorEmptyName(t *testing.T) {
	st := NewStore(nil, nil)
	if err := st.PutVector(context.Background(), Nodes("a"), "", []float64{1}); err == nil {
		t.Error("empty vector name should be rejected")
	}
}
