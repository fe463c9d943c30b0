package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/c4render/pkg/render"
)

var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(colorGray)
	headerStyle    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// InspectModel - Interactive diagram browser
// =============================================================================

// inspectTab is one table of the browser.
type inspectTab struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// InspectModel is the bubbletea model for browsing a diagram's entities,
// drawn relationships and skipped edges. It is read-only.
type InspectModel struct {
	Heading string
	Tabs    []inspectTab
	Active  int
	Cursor  int
	Offset  int
	Height  int
}

// NewInspectModel builds the browser tables from a laid-out scene.
func NewInspectModel(scene *render.Scene) InspectModel {
	entities := inspectTab{Name: "Entities", Headers: []string{"Name", "Kind", "Details"}}
	for _, s := range scene.Shapes {
		entities.Rows = append(entities.Rows, []string{s.Name, shapeKindName(s.Kind), shapeDetails(s)})
	}

	edges := inspectTab{Name: "Relationships", Headers: []string{"Source", "Label", "Target", "Kind"}}
	for _, c := range scene.Connectors {
		label := strings.ReplaceAll(c.Label, "\n", " ")
		edges.Rows = append(edges.Rows, []string{c.Source, label, c.Target, c.Kind.String()})
	}

	skipped := inspectTab{Name: "Skipped", Headers: []string{"Edge", "Endpoint", "Unknown name"}}
	for _, w := range scene.Skipped {
		skipped.Rows = append(skipped.Rows, []string{w.Edge, w.Endpoint, w.Name})
	}

	return InspectModel{
		Heading: scene.Heading(),
		Tabs:    []inspectTab{entities, edges, skipped},
		Height:  15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m = m.switchTab((m.Active + 1) % len(m.Tabs))
		case "shift+tab", "left", "h":
			m = m.switchTab((m.Active + len(m.Tabs) - 1) % len(m.Tabs))
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tabs[m.Active].Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m InspectModel) switchTab(i int) InspectModel {
	m.Active = i
	m.Cursor = 0
	m.Offset = 0
	return m
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Heading))
	b.WriteString("\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ switch  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	tab := m.Tabs[m.Active]
	if len(tab.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (none)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(tab.Rows))
	b.WriteString(m.renderTable(tab, m.Offset, end, true))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(tab.Rows))))
	return b.String()
}

// PlainView renders every tab in full, for non-interactive output.
func (m InspectModel) PlainView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Heading))
	b.WriteString("\n")
	for _, tab := range m.Tabs {
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render(fmt.Sprintf("%s (%d)", tab.Name, len(tab.Rows))))
		b.WriteString("\n")
		if len(tab.Rows) == 0 {
			b.WriteString(listDimStyle.Render("  (none)"))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderTable(tab, 0, len(tab.Rows), false))
		b.WriteString("\n")
	}
	return b.String()
}

func (m InspectModel) tabBar() string {
	parts := make([]string, len(m.Tabs))
	for i, tab := range m.Tabs {
		label := fmt.Sprintf("%s (%d)", tab.Name, len(tab.Rows))
		if i == m.Active {
			parts[i] = tabActiveStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}

func (m InspectModel) renderTable(tab inspectTab, start, end int, highlight bool) string {
	warn := tab.Name == "Skipped"
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(tab.Headers...).
		Rows(tab.Rows[start:end]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if warn {
				base = base.Foreground(colorYellow)
			}
			if highlight && start+row == m.Cursor {
				return base.Bold(true).Foreground(colorGreen)
			}
			if col > 0 && !warn {
				return base.Foreground(colorGray)
			}
			return base
		})
	return t.Render()
}

// =============================================================================
// Helpers
// =============================================================================

func shapeKindName(k render.ShapeKind) string {
	switch k {
	case render.ShapeCylinder:
		return "database"
	case render.ShapeClass:
		return "class"
	case render.ShapeBoundary:
		return "boundary"
	}
	return "element"
}

// shapeDetails joins the lines drawn under a shape's name.
func shapeDetails(s render.Shape) string {
	var parts []string
	for _, l := range s.Lines {
		if l.Role == render.LineName {
			continue
		}
		parts = append(parts, strings.Join(strings.Fields(l.Text), " "))
	}
	if n := len(s.Attributes); n > 0 {
		parts = append(parts, plural(n, "attribute", "attributes"))
	}
	if n := len(s.Methods); n > 0 {
		parts = append(parts, plural(n, "method", "methods"))
	}
	return strings.Join(parts, " · ")
}
