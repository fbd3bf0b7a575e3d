package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/values"
)

func num(f float64) values.Value { return values.Of(values.Num(f)) }

func sampleGraph() Graph {
	return Graph{
		Kind:     "binary",
		InputLen: 3,
		Nodes: []Node{
			{Index: 0, Value: num(1), Children: []int{1, 2}},
			{Index: 1, Value: values.Null()},
			{Index: 2, Value: values.PairOf(values.Str("a"), values.Num(2))},
		},
	}
}

func sampleLayout() Layout {
	return Layout{
		Kind:       "binary",
		Width:      300,
		Height:     260,
		NodeRadius: 30,
		Nodes: []Node{
			{Index: 0, Value: num(1), Children: []int{1, 2}, Label: "1", X: 150, Y: 80, Radius: 30},
			{Index: 2, Value: num(3), Label: "3", X: 150, Y: 180, Radius: 30, Depth: 1},
		},
		Edges: []Edge{
			{From: 0, To: 1, Hidden: true},
			{From: 0, To: 2},
		},
		Summary: Summary{Kind: "binary", InputLen: 3, VisibleNodes: 2, Depth: 2},
	}
}

func TestMarshalGraph(t *testing.T) {
	data, err := MarshalGraph(sampleGraph())
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if raw["kind"] != "binary" {
		t.Errorf("kind = %v, want binary", raw["kind"])
	}
	nodes := raw["nodes"].([]any)
	if len(nodes) != 3 {
		t.Fatalf("len(nodes) = %d, want 3", len(nodes))
	}
	if v := nodes[1].(map[string]any)["value"]; v != nil {
		t.Errorf("absent value encoded as %v, want null", v)
	}
	if _, ok := nodes[0].(map[string]any)["x"]; ok {
		t.Error("unpositioned node should omit coordinates")
	}
	if _, ok := raw["cycles"]; ok {
		t.Error("empty cycles should be omitted")
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := sampleGraph()
	g.Kind = "graph"
	g.Cycles = []Cycle{{From: 2, To: 0}}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	if got.Kind != g.Kind || got.InputLen != g.InputLen {
		t.Errorf("header = %s/%d, want %s/%d", got.Kind, got.InputLen, g.Kind, g.InputLen)
	}
	if len(got.Nodes) != len(g.Nodes) {
		t.Fatalf("len(nodes) = %d, want %d", len(got.Nodes), len(g.Nodes))
	}
	for i := range g.Nodes {
		if !got.Nodes[i].Value.Equal(g.Nodes[i].Value) {
			t.Errorf("node %d value = %v, want %v", i, got.Nodes[i].Value, g.Nodes[i].Value)
		}
	}
	if len(got.Cycles) != 1 || got.Cycles[0] != g.Cycles[0] {
		t.Errorf("cycles = %v, want %v", got.Cycles, g.Cycles)
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NotJSON", "{"},
		{"MissingKind", `{"input_len": 1, "nodes": [{"index": 0, "value": 1}]}`},
		{"BadValue", `{"kind": "binary", "nodes": [{"index": 0, "value": {"a": 1}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadGraph() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := WriteGraphFile(sampleGraph(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("len(nodes) = %d, want 3", len(g.Nodes))
	}

	_, err = ReadGraphFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := sampleLayout()
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if got.Width != l.Width || got.Height != l.Height {
		t.Errorf("size = %vx%v, want %vx%v", got.Width, got.Height, l.Width, l.Height)
	}
	if len(got.Edges) != 2 || !got.Edges[0].Hidden || got.Edges[0].Visible() {
		t.Errorf("edges = %+v", got.Edges)
	}
	if got.Summary != l.Summary {
		t.Errorf("summary = %+v, want %+v", got.Summary, l.Summary)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
	}{
		{"MissingKind", func(l *Layout) { l.Kind = "" }},
		{"NegativeWidth", func(l *Layout) { l.Width = -1 }},
		{"DuplicateIndex", func(l *Layout) { l.Nodes[1].Index = 0 }},
		{"UnknownSource", func(l *Layout) { l.Edges = append(l.Edges, Edge{From: 9, To: 2}) }},
		{"UnknownTarget", func(l *Layout) { l.Edges[0].Hidden = false }},
		{"TreeEdgeIntoRoot", func(l *Layout) { l.Edges = append(l.Edges, Edge{From: 0, To: 0}) }},
		{"SecondTreeParent", func(l *Layout) { l.Edges = append(l.Edges, Edge{From: 2, To: 2}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleLayout()
			tt.mutate(&l)
			data, err := MarshalLayout(l)
			if err != nil {
				t.Fatalf("MarshalLayout: %v", err)
			}
			if _, err := UnmarshalLayout(data); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("UnmarshalLayout() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestUnmarshalLayoutAcceptsBackEdges(t *testing.T) {
	l := sampleLayout()
	l.Edges = append(l.Edges, Edge{From: 2, To: 0, BackEdge: true}, Edge{From: 2, To: 2, BackEdge: true})
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	if _, err := UnmarshalLayout(data); err != nil {
		t.Errorf("UnmarshalLayout() error = %v, want back edges accepted", err)
	}

	// A self-loop that is not marked as a back edge is rejected.
	if _, err := UnmarshalLayout([]byte(`{"kind":"graph","nodes":[{"index":0}],"edges":[{"from":0,"to":0}]}`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("UnmarshalLayout(self loop) error = %v, want INVALID_INPUT", err)
	}
}

func TestLayoutFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	if err := WriteLayoutFile(sampleLayout(), path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("\n  \"kind\": \"binary\"")) {
		t.Error("layout file should be indented JSON")
	}
	if _, err := ReadLayoutFile(path); err != nil {
		t.Errorf("ReadLayoutFile: %v", err)
	}
	if _, err := ReadLayoutFile(filepath.Join(dir, "nope.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLayoutNodeInfo(t *testing.T) {
	l := sampleLayout()

	info, ok := l.NodeInfo(0)
	if !ok {
		t.Fatal("NodeInfo(0) not found")
	}
	want := "Node Value: 1\nIndex: 0\nChildren: null, 3\nPosition: (150, 80)"
	if got := info.String(); got != want {
		t.Errorf("NodeInfo(0) =\n%s\nwant\n%s", got, want)
	}

	if _, ok := l.NodeInfo(1); ok {
		t.Error("hidden node should have no info")
	}

	infos := l.NodeInfos()
	if len(infos) != 2 || infos[1].Index != 2 {
		t.Errorf("NodeInfos() = %+v", infos)
	}
	if !strings.Contains(infos[1].String(), "Children: None") {
		t.Errorf("leaf info = %q", infos[1].String())
	}
}

func TestNodeHelpers(t *testing.T) {
	pair := Node{Value: values.PairOf(values.Str("a"), values.Str("b"))}
	if !pair.IsPair() || pair.IsAbsent() {
		t.Error("pair node misclassified")
	}
	if got := pair.DisplayLabel(); got != "a,b" {
		t.Errorf("DisplayLabel() = %q, want a,b", got)
	}

	labeled := Node{Value: num(7), Label: "seven"}
	if got := labeled.DisplayLabel(); got != "seven" {
		t.Errorf("DisplayLabel() = %q, want seven", got)
	}

	if !(&Node{}).IsAbsent() {
		t.Error("zero node should be absent")
	}
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{
		150:   "150",
		190.5: "190.5",
		0:     "0",
		-40:   "-40",
	}
	for in, want := range tests {
		if got := FormatCoord(in); got != want {
			t.Errorf("FormatCoord(%v) = %q, want %q", in, got, want)
		}
	}
}
