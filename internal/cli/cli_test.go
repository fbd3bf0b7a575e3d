package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// isolate points config and cache lookups at fresh temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("TREEVIZ_REDIS_URL", "")
	t.Cleanup(observability.Reset)
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"build", "layout", "visualize", "render", "info", "explore", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	complete := func(args ...string) string {
		t.Helper()
		var out strings.Builder
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		root.SetOut(&out)
		root.SetErr(io.Discard)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if got := complete("completion", "bash"); !strings.Contains(got, "treeviz") {
		t.Errorf("bash script does not mention treeviz:\n%s", got)
	}

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{cobra.ShellCompRequestCmd, "render", "--kind", ""}, []string{"binary", "nary", "graph"}},
		{[]string{cobra.ShellCompRequestCmd, "render", "--format", ""}, []string{"svg", "mermaid", "ascii"}},
		{[]string{cobra.ShellCompRequestCmd, "layout", "--style", ""}, []string{"simple", "dark"}},
	}
	for _, tt := range tests {
		got := complete(tt.args...)
		for _, w := range tt.want {
			if !strings.Contains(got, w+"\n") {
				t.Errorf("%v: missing %q in\n%s", tt.args, w, got)
			}
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , ascii ", []string{"svg", "ascii"}},
		{"trailing comma", "mermaid,", []string{"mermaid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyConfigPrecedence(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Kind = "nary"
	c.Config.MaxChildren = 2
	c.Config.Style = "dark"
	c.Config.Layout.NodeSpacing = 50

	newCmd := func(args ...string) pipeline.Options {
		var opts pipeline.Options
		var formats string
		cmd := &cobra.Command{Use: "test"}
		bindBuildFlags(cmd, &opts)
		bindLayoutFlags(cmd, &opts)
		bindRenderFlags(cmd, &opts, &formats)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}
		c.applyConfig(cmd, &opts)
		return opts
	}

	t.Run("config fills unset flags", func(t *testing.T) {
		opts := newCmd()
		if opts.Kind != "nary" || opts.MaxChildren != 2 || opts.Style != "dark" {
			t.Errorf("opts = kind %q, max %d, style %q; want config values", opts.Kind, opts.MaxChildren, opts.Style)
		}
		if opts.Geometry.NodeSpacing != 50 {
			t.Errorf("NodeSpacing = %v, want 50", opts.Geometry.NodeSpacing)
		}
		if opts.Geometry.HorizontalPadding != c.Config.Layout.HorizontalPadding {
			t.Errorf("HorizontalPadding = %v, want %v", opts.Geometry.HorizontalPadding, c.Config.Layout.HorizontalPadding)
		}
		if opts.Logger != c.Logger {
			t.Error("applyConfig should hand the CLI logger to the pipeline")
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		opts := newCmd("--kind", "graph", "--node-spacing", "120", "--style", "simple")
		if opts.Kind != "graph" {
			t.Errorf("Kind = %q, want graph", opts.Kind)
		}
		if opts.Geometry.NodeSpacing != 120 {
			t.Errorf("NodeSpacing = %v, want 120", opts.Geometry.NodeSpacing)
		}
		if opts.Style != "simple" {
			t.Errorf("Style = %q, want simple", opts.Style)
		}
		if opts.MaxChildren != 2 {
			t.Errorf("MaxChildren = %d, want 2 from config", opts.MaxChildren)
		}
	})
}

func TestConfigFileIsLoaded(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "treeviz.toml")
	if err := os.WriteFile(cfgPath, []byte("kind = \"graph\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "cyclic.layout.json")
	if err := execute(t, "--config", cfgPath, "layout", "[a, b, @0]", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if l.Kind != "graph" {
		t.Errorf("Kind = %q, want graph from config", l.Kind)
	}
	if l.Summary.Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", l.Summary.Cycles)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(cfgPath, []byte("kind = \"forest\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "--config", cfgPath, "render", "[1]", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestRenderWritesEveryFormat(t *testing.T) {
	dir := isolate(t)
	base := filepath.Join(dir, "out")

	err := execute(t, "render", "[1, 2, 3, null, 4]", "-f", "svg,ascii,mermaid,dot,json", "-o", base, "--no-cache")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	for _, f := range []string{"svg", "ascii", "mermaid", "dot", "json"} {
		path := base + pipeline.Extension(f)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}

	svg, _ := os.ReadFile(base + ".svg")
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output is not an SVG document")
	}
}

func TestRenderFromFile(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "numbers.in")
	if err := os.WriteFile(in, []byte("[1, 2, 3, 4, null, 5]"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "render", "--file", in, "-k", "nary", "--max-children", "2", "-f", "ascii"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "numbers.txt"))
	if err != nil {
		t.Fatalf("ascii output missing: %v", err)
	}
	if !strings.Contains(string(data), "5") {
		t.Errorf("ascii output should mention every visible value:\n%s", data)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"empty array", []string{"render", "[]"}, errors.ErrCodeEmptyInput},
		{"bad kind", []string{"render", "[1]", "-k", "forest"}, errors.ErrCodeInvalidKind},
		{"bad format", []string{"render", "[1]", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad style", []string{"render", "[1]", "--style", "neon"}, errors.ErrCodeInvalidStyle},
		{"not an array", []string{"render", "1, 2"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			err := execute(t, append(tt.args, "--no-cache")...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBuildLayoutVisualize(t *testing.T) {
	dir := isolate(t)
	graphPath := filepath.Join(dir, "t.graph.json")
	layoutPath := filepath.Join(dir, "t.layout.json")

	if err := execute(t, "build", "[1, null, [a, b], 4]", "-o", graphPath); err != nil {
		t.Fatalf("build error: %v", err)
	}
	g, err := graph.ReadGraphFile(graphPath)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if g.Kind != "binary" || g.InputLen != 4 {
		t.Errorf("graph = kind %q, input_len %d", g.Kind, g.InputLen)
	}

	if err := execute(t, "layout", graphPath, "--show-absent", "--style", "dark", "-o", layoutPath); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if !l.ShowAbsent || len(l.Nodes) != 4 {
		t.Errorf("layout = show_absent %v, %d nodes; want absent slot placed", l.ShowAbsent, len(l.Nodes))
	}
	if l.Style != graph.StyleDark {
		t.Errorf("Style = %q, want dark", l.Style)
	}

	if err := execute(t, "visualize", layoutPath, "-f", "svg"); err != nil {
		t.Fatalf("visualize error: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "t.svg"))
	if err != nil {
		t.Fatalf("svg output missing: %v", err)
	}
	if !strings.Contains(string(svg), "null-node") {
		t.Error("absent slot should be drawn when the layout shows it")
	}
}

func TestRenderUsesCache(t *testing.T) {
	dir := isolate(t)
	base := filepath.Join(dir, "cached")

	for i := 0; i < 2; i++ {
		if err := execute(t, "render", "[5, 3, 8]", "-f", "svg", "-o", base+".svg"); err != nil {
			t.Fatalf("render #%d error: %v", i+1, err)
		}
	}

	entries := 0
	_ = filepath.WalkDir(filepath.Join(dir, "cache", appName), func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			entries++
		}
		return nil
	})
	if entries == 0 {
		t.Error("render should populate the file cache")
	}

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	entries = 0
	_ = filepath.WalkDir(filepath.Join(dir, "cache", appName), func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			entries++
		}
		return nil
	})
	if entries != 0 {
		t.Errorf("cache clear left %d entries", entries)
	}
}

func TestInfoNode(t *testing.T) {
	isolate(t)

	if err := execute(t, "info", "[1, null, 3]", "--node", "2", "--no-cache"); err != nil {
		t.Errorf("info --node 2 error: %v", err)
	}

	err := execute(t, "info", "[1, null, 3]", "--node", "1", "--no-cache")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("hidden node error = %v, want NOT_FOUND", err)
	}

	err = execute(t, "info", "[1, null, 3]", "--node", "1", "--show-absent", "--no-cache")
	if err != nil {
		t.Errorf("shown absent node error: %v", err)
	}
}

func TestNodeListModel(t *testing.T) {
	l := mustLayout(t, "[1, 2, 3, @0]", "graph")
	m := NewNodeListModel(l)

	if len(m.Infos) != 3 {
		t.Fatalf("Infos = %d, want 3", len(m.Infos))
	}

	m = m.moveTo(10)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want clamped to 2", m.Cursor)
	}
	m = m.moveTo(-4)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want clamped to 0", m.Cursor)
	}

	view := m.View()
	for _, want := range []string{"Graph", "1 cycles", "Node Value: 1", "Index: 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m.Height = 1
	m = m.moveTo(2)
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2 after scrolling", m.Offset)
	}
}

func mustLayout(t *testing.T, input, kind string) graph.Layout {
	t.Helper()
	opts := pipeline.Options{Input: input, Kind: kind}
	if err := opts.ValidateForBuild(); err != nil {
		t.Fatal(err)
	}
	tr, err := pipeline.Build(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	l, err := pipeline.GenerateLayout(context.Background(), tr, opts)
	if err != nil {
		t.Fatal(err)
	}
	return l
}
