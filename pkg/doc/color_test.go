package doc

import (
	"slices"
	"testing"

	"github.com/matzehuels/graphdoc/pkg/errors"
)

func colorDoc(t *testing.T, attrs map[string]string) *Document {
	t.Helper()
	d, err := New(true).WithNodes([]string{"a"}, attrs)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return d
}

func TestApplyColorAlpha(t *testing.T) {
	tests := []struct {
		name      string
		attrs     map[string]string
		wantColor string
		wantErr   errors.Code
	}{
		{
			name:      "NamedColorFullOpacity",
			attrs:     map[string]string{"color": "red", "alpha:color": "100"},
			wantColor: "#FF0000",
		},
		{
			name:      "NamedColorFullyTransparent",
			attrs:     map[string]string{"color": "red", "alpha:color": "0"},
			wantColor: "#FF000000",
		},
		{
			name:      "NamedColorPartial",
			attrs:     map[string]string{"color": "blue", "alpha:color": "50"},
			wantColor: "#0000FF80",
		},
		{
			name:      "NamedColorCaseInsensitive",
			attrs:     map[string]string{"color": "RED", "alpha:color": "0"},
			wantColor: "#FF000000",
		},
		{
			name:      "HexColorGetsSuffix",
			attrs:     map[string]string{"color": "#A1B2C3", "alpha:color": "0"},
			wantColor: "#A1B2C300",
		},
		{
			name:      "HexColorFullOpacityUntouched",
			attrs:     map[string]string{"color": "#A1B2C3", "alpha:color": "100"},
			wantColor: "#A1B2C3",
		},
		{
			name:      "UnrecognizedValuePassesThrough",
			attrs:     map[string]string{"color": "not-a-color", "alpha:color": "50"},
			wantColor: "not-a-color",
		},
		{
			name:      "FillcolorTarget",
			attrs:     map[string]string{"fillcolor": "green", "alpha:fillcolor": "50"},
			wantColor: "",
		},
		{
			name:    "AmbiguousTarget",
			attrs:   map[string]string{"color": "red", "fillcolor": "blue", "alpha:color": "50"},
			wantErr: errors.ErrCodeConfig,
		},
		{
			name:    "CompanionWithoutTarget",
			attrs:   map[string]string{"label": "A", "alpha:color": "50"},
			wantErr: errors.ErrCodeConfig,
		},
		{
			name:    "MultipleCompanions",
			attrs:   map[string]string{"color": "red", "alpha:color": "50", "alpha:fontcolor": "50"},
			wantErr: errors.ErrCodeConfig,
		},
		{
			name:    "SecondCompanionWithoutTarget",
			attrs:   map[string]string{"color": "red", "fontcolor": "blue", "alpha:fontcolor": "50", "alpha:color": "50"},
			wantErr: errors.ErrCodeConfig,
		},
		{
			name:    "AlphaNotAnInteger",
			attrs:   map[string]string{"color": "red", "alpha:color": "opaque"},
			wantErr: errors.ErrCodeConfig,
		},
		{
			name:    "AlphaOutOfRange",
			attrs:   map[string]string{"color": "red", "alpha:color": "101"},
			wantErr: errors.ErrCodeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := colorDoc(t, tt.attrs)

			out, err := d.ApplyColorAlpha()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error code = %v, want %v", errors.GetCode(err), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyColorAlpha: %v", err)
			}

			if tt.wantColor != "" {
				if got := out.Nodes()[0].Attr("color"); got != tt.wantColor {
					t.Errorf("color = %q, want %q", got, tt.wantColor)
				}
			}
			for _, col := range out.NodeColumns() {
				if col == "alpha:color" || col == "alpha:fillcolor" {
					t.Errorf("companion column %q survived the transform", col)
				}
			}
		})
	}
}

func TestApplyColorAlphaFillcolor(t *testing.T) {
	d := colorDoc(t, map[string]string{"fillcolor": "green", "alpha:fillcolor": "50"})

	out, err := d.ApplyColorAlpha()
	if err != nil {
		t.Fatalf("ApplyColorAlpha: %v", err)
	}
	if got := out.Nodes()[0].Attr("fillcolor"); got != "#00FF0080" {
		t.Errorf("fillcolor = %q, want #00FF0080", got)
	}
}

func TestApplyColorAlphaTablesIndependent(t *testing.T) {
	d, err := New(true).WithNodes([]string{"a", "b"}, map[string]string{"color": "red", "alpha:color": "0"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	d, err = d.WithEdges([][2]string{{"a", "b"}}, map[string]string{"color": "blue", "alpha:color": "100"}, false)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	out, err := d.ApplyColorAlpha()
	if err != nil {
		t.Fatalf("ApplyColorAlpha: %v", err)
	}
	if got := out.Nodes()[0].Attr("color"); got != "#FF000000" {
		t.Errorf("node color = %q, want #FF000000", got)
	}
	if got := out.Edges()[0].Attr("color"); got != "#0000FF" {
		t.Errorf("edge color = %q, want #0000FF", got)
	}
}

func TestApplyColorAlphaNoCompanionIsIdentity(t *testing.T) {
	d := colorDoc(t, map[string]string{"color": "red"})

	out, err := d.ApplyColorAlpha()
	if err != nil {
		t.Fatalf("ApplyColorAlpha: %v", err)
	}
	if got := out.Nodes()[0].Attr("color"); got != "red" {
		t.Errorf("color = %q, want red", got)
	}
	if !slices.Equal(out.NodeColumns(), d.NodeColumns()) {
		t.Errorf("columns changed: %v", out.NodeColumns())
	}
}

func TestColorHex(t *testing.T) {
	if hex, ok := ColorHex("red"); !ok || hex != "#FF0000" {
		t.Errorf("ColorHex(red) = %q, %v", hex, ok)
	}
	if hex, ok := ColorHex("Red"); !ok || hex != "#FF0000" {
		t.Errorf("ColorHex(Red) = %q, %v", hex, ok)
	}
	if _, ok := ColorHex("nope"); ok {
		t.Error("ColorHex(nope) reported a hit")
	}
}
