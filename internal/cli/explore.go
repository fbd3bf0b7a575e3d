package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// exploreCommand creates the explore command, an interactive node browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		file    string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [array | graph.json]",
		Short: "Browse the nodes of a structure interactively",
		Long: `Browse the nodes of a structure interactively.

Lists every visible node with its depth and position and shows the detail
record of the selected node. When stdout is not a terminal the node table
is printed once instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runExplore(cmd.Context(), args, file, cmd.InOrStdin(), opts, noCache)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the array from a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	bindBuildFlags(cmd, &opts)
	bindLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, args []string, file string, stdin io.Reader, opts pipeline.Options, noCache bool) error {
	// The browser owns stdin, so the array cannot come from there too.
	if file == "" && (len(args) == 0 || args[0] == stdinMarker) && isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("explore needs the array as an argument or --file when interactive")
	}

	l, err := c.computeLayout(ctx, args, file, stdin, opts, noCache)
	if err != nil {
		return err
	}

	m := NewNodeListModel(l)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		m.Height = len(m.Infos)
		fmt.Println(m.View())
		return nil
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing laid-out nodes.
type NodeListModel struct {
	Summary graph.Summary
	Infos   []graph.NodeInfo
	Depths  []int
	Cursor  int
	Height  int
	Offset  int
}

// NewNodeListModel creates a browser over the visible nodes of l, in
// placement order.
func NewNodeListModel(l graph.Layout) NodeListModel {
	depths := make([]int, len(l.Nodes))
	for i, n := range l.Nodes {
		depths[i] = n.Depth
	}
	return NodeListModel{
		Summary: l.Summary,
		Infos:   l.NodeInfos(),
		Depths:  depths,
		Height:  15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.Cursor - 1)
		case "down", "j":
			m = m.moveTo(m.Cursor + 1)
		case "home", "g":
			m = m.moveTo(0)
		case "end", "G":
			m = m.moveTo(len(m.Infos) - 1)
		}
	case tea.WindowSizeMsg:
		// Leave room for the header and the detail panel.
		m.Height = max(msg.Height-14, 5)
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor at i, clamped, and scrolls it into view.
func (m NodeListModel) moveTo(i int) NodeListModel {
	if len(m.Infos) == 0 {
		return m
	}
	m.Cursor = min(max(i, 0), len(m.Infos)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(tree.Kind(m.Summary.Kind).Title()))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d values · %d visible · depth %d",
		m.Summary.InputLen, m.Summary.VisibleNodes, m.Summary.Depth)))
	if m.Summary.Cycles > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf(" · %d cycles", m.Summary.Cycles)))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Infos) == 0 {
		b.WriteString(listDimStyle.Render("  no visible nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Infos))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		info := m.Infos[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(info.Index),
			info.Value.Full(),
			strconv.Itoa(m.Depths[i]),
			"(" + graph.FormatCoord(info.X) + ", " + graph.FormatCoord(info.Y) + ")",
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Index", "Value", "Depth", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 || col == 4 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(m.Infos[m.Cursor].String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Infos))))

	return b.String()
}
