package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// structureRow is one graph of the tree as shown in the picker.
type structureRow struct {
	summary *morph.Summary
	depth   int
}

// BrowseModel is the bubbletea model for picking a structure from a graph
// tree. Selected is set when the user confirms with enter.
type BrowseModel struct {
	Rows     []structureRow
	Cursor   int
	Offset   int
	Height   int
	Selected *morph.Summary
}

// NewBrowseModel flattens sum into a pre-ordered list of structures.
func NewBrowseModel(sum *morph.Summary) BrowseModel {
	m := BrowseModel{Height: 15}
	sum.Walk(func(s *morph.Summary, depth int) {
		m.Rows = append(m.Rows, structureRow{summary: s, depth: depth})
	})
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "enter":
			if len(m.Rows) > 0 {
				m.Selected = m.Rows[m.Cursor].summary
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Structure"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		typ := r.summary.Type
		if typ == "" {
			typ = "—"
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", r.depth) + strconv.FormatUint(r.summary.StructureID, 10),
			typ,
			strconv.Itoa(r.summary.Nodes),
			strconv.Itoa(r.summary.Components),
			strconv.Itoa(len(r.summary.Children)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Structure", "Type", "Nodes", "Fragments", "Subgraphs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if m.Rows[idx].summary.Components > 1 {
				style = style.Foreground(colorYellow)
			}
			if idx == m.Cursor {
				return style.Bold(true).Foreground(colorCyan)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <graph.json>",
		Short: "Pick a structure interactively and print its classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := summarizeFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewBrowseModel(sum),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.ErrOrStderr()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			chosen := final.(BrowseModel).Selected
			if chosen == nil {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), summaryTable(chosen))
			return nil
		},
	}
}
