package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/morph/transform"
	"github.com/matzehuels/morphgraph/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output file line with its size.
func printFile(w io.Writer, path string) {
	line := "  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path)
	if size := fileSize(path); size != "" {
		line += " " + StyleDim.Render("("+size+")")
	}
	fmt.Fprintln(w, line)
}

// =============================================================================
// Pipeline Output
// =============================================================================

// printStats prints the before/after sizes of a run on one line.
func printStats(w io.Writer, s pipeline.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d graphs", s.Graphs),
		fmt.Sprintf("%d → %d nodes", s.NodesBefore, s.NodesAfter),
		fmt.Sprintf("%d → %d edges", s.EdgesBefore, s.EdgesAfter),
	}
	status := styleComputed.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · ") + status)
	fmt.Fprintln(w, b.String())
}

// printReport prints one line per graph that a transform changed.
func printReport(w io.Writer, r *transform.Report) {
	r.Walk(func(n *transform.Report) {
		if len(n.Bridges) == 0 && len(n.Removed) == 0 {
			return
		}
		var parts []string
		if len(n.Bridges) > 0 {
			parts = append(parts, fmt.Sprintf("%d fragments, bridged by %s", n.ComponentsBefore, formatEdges(n.Bridges)))
		}
		if len(n.Removed) > 0 {
			parts = append(parts, fmt.Sprintf("removed %d nodes, added %d edges", len(n.Removed), len(n.Rewired)))
		}
		printDetail(w, "structure %d: %s", n.StructureID, strings.Join(parts, "; "))
	})
}

// printProcesses prints the chains of every graph in ps.
func printProcesses(w io.Writer, ps *transform.ProcessSet) {
	var walk func(ps *transform.ProcessSet, depth int)
	walk = func(ps *transform.ProcessSet, depth int) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s %s\n", indent, StyleTitle.Render(fmt.Sprintf("structure %d", ps.StructureID)),
			StyleDim.Render(fmt.Sprintf("(%d chains)", len(ps.Chains))))
		for _, chain := range ps.Chains {
			fmt.Fprintf(w, "%s  %s\n", indent, formatChain(chain))
		}
		for _, c := range ps.Children {
			walk(c, depth+1)
		}
	}
	walk(ps, 0)
}

func formatChain(keys []uint64) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.FormatUint(k, 10)
	}
	return strings.Join(parts, StyleDim.Render(" - "))
}

func formatEdges(edges []morph.EdgeKey) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = fmt.Sprintf("(%d,%d)", e.A, e.B)
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// Tables
// =============================================================================

var summaryHeaders = []string{"Structure", "Type", "Nodes", "Edges", "Branch", "Terminal", "Process", "Isolated", "Caps", "Fragments"}

// summaryRows flattens a summary tree into table rows, indenting children.
func summaryRows(sum *morph.Summary) [][]string {
	var rows [][]string
	sum.Walk(func(s *morph.Summary, depth int) {
		typ := s.Type
		if typ == "" {
			typ = "—"
		}
		rows = append(rows, []string{
			strings.Repeat("  ", depth) + strconv.FormatUint(s.StructureID, 10),
			typ,
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			strconv.Itoa(s.BranchPoints),
			strconv.Itoa(s.Terminals),
			strconv.Itoa(s.Processes),
			strconv.Itoa(s.Isolated),
			strconv.Itoa(s.Caps),
			strconv.Itoa(s.Components),
		})
	})
	return rows
}

// summaryTable renders sum as a bordered table. Graphs split into more
// than one fragment are highlighted.
func summaryTable(sum *morph.Summary) string {
	rows := summaryRows(sum)
	var fragmented []bool
	sum.Walk(func(s *morph.Summary, _ int) {
		fragmented = append(fragmented, s.Components > 1)
	})
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col >= 2 {
				style = style.Align(lipgloss.Right)
			}
			if row < len(fragmented) && fragmented[row] {
				return style.Foreground(colorYellow)
			}
			return style
		}).
		Render()
}
