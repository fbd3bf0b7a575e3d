package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/values"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Kind:       "graph",
		Width:      380,
		Height:     260,
		NodeRadius: 30,
		Nodes: []graph.Node{
			{Index: 0, Value: values.Of(values.Num(1)), Children: []int{1, 2}, X: 190, Y: 80, Radius: 30},
			{Index: 1, Value: values.Null(), X: 150, Y: 180, Radius: 30, Depth: 1},
			{Index: 2, Value: values.PairOf(values.Str("a"), values.Str("b")), Children: []int{0}, X: 230, Y: 180, Radius: 39, Depth: 1},
		},
		Edges: []graph.Edge{
			{From: 0, To: 1},
			{From: 0, To: 2},
			{From: 2, To: 0, BackEdge: true},
			{From: 2, To: 5, Hidden: true},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	for _, want := range []string{"digraph G", "layout=neato", `n0 [label="1"`, "n0 -> n1;", "n0 -> n2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "n5") {
		t.Error("ToDOT() drew a hidden edge")
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})
	// x = 190/72, y = (260-80)/72
	if !strings.Contains(dot, `pos="2.639,2.500!"`) {
		t.Errorf("ToDOT() missing pinned root position:\n%s", dot)
	}

	free := ToDOT(sampleLayout(), Options{Free: true})
	if strings.Contains(free, "pos=") || !strings.Contains(free, "rankdir=TB") {
		t.Errorf("ToDOT(Free) should not pin positions:\n%s", free)
	}
}

func TestToDOT_BackEdge(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})
	if !strings.Contains(dot, "n2 -> n0 [style=dashed, color=red, constraint=false];") {
		t.Errorf("ToDOT() back edge not styled:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	l := sampleLayout()
	tests := []struct {
		name     string
		node     graph.Node
		detailed bool
		want     string
	}{
		{"scalar", l.Nodes[0], false, "1"},
		{"absent", l.Nodes[1], false, "null"},
		{"pair", l.Nodes[2], false, "a\nb"},
		{"detailed", l.Nodes[0], true, "1\n#0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtAttrs_Absent(t *testing.T) {
	l := sampleLayout()
	joined := strings.Join(fmtAttrs(l.Nodes[1], l, Options{}), ", ")
	if !strings.Contains(joined, "dashed") || !strings.Contains(joined, "lightgrey") {
		t.Errorf("fmtAttrs() absent node not greyed: %s", joined)
	}
	if !strings.Contains(joined, "width=0.833") {
		t.Errorf("fmtAttrs() width not derived from radius: %s", joined)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleLayout(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
