package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the arches of a composition interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			comp, err := pipeline.Load(input)
			if err != nil {
				return err
			}
			if err := comp.Validate(); err != nil {
				return err
			}
			_, err = tea.NewProgram(NewArchListModel(comp), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// ArchListModel is the bubbletea model of the inspect command: a list of
// arches in paint order next to the geometry of the one under the cursor.
type ArchListModel struct {
	Comp   arch.Composition
	Cursor int
	Height int
	Offset int
}

func NewArchListModel(comp arch.Composition) ArchListModel {
	return ArchListModel{Comp: comp, Height: 15}
}

func (m ArchListModel) Init() tea.Cmd {
	return nil
}

func (m ArchListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Comp.Arches)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Comp.Arches)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ArchListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(displayName(m.Comp, "")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Comp.Arches))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		s := m.Comp.Arches[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d %s", cursor, i, archLabel(i, s))
		switch {
		case i == m.Cursor:
			list.WriteString(listSelectedStyle.Render(line))
		case s.Degenerate():
			list.WriteString(listDimStyle.Render(line))
		default:
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	detail := ""
	if len(m.Comp.Arches) > 0 {
		detail = detailBoxStyle.Render(archDetail(m.Comp, m.Cursor))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Comp.Arches))))

	return b.String()
}

// archDetail describes arch i: its spec, measured geometry and outline.
func archDetail(comp arch.Composition, i int) string {
	s := comp.Arches[i]
	lines := []string{
		StyleTitle.Render(archLabel(i, s)),
		"fill    " + swatch(s.Fill),
		fmt.Sprintf("size    %s × %s", num(s.Width), num(s.Height)),
		fmt.Sprintf("offset  %s", num(s.Offset)),
	}

	g, ok := arch.Measure(s, comp.Canvas.Width)
	if !ok {
		lines = append(lines, "", StyleWarning.Render("degenerate, not painted"))
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		fmt.Sprintf("center  %s  r=%s", point(g.Center), num(g.Radius)),
		fmt.Sprintf("bottom  %s → %s", point(g.BottomLeft), point(g.BottomRight)),
		"",
		StyleDim.Render("outline"),
	)
	for _, cmd := range arch.ComputeGeometry(s, comp.Canvas.Width) {
		lines = append(lines, "  "+describeCmd(cmd))
	}
	return strings.Join(lines, "\n")
}

func describeCmd(c arch.Cmd) string {
	switch c.Op {
	case arch.OpMoveTo, arch.OpLineTo:
		return fmt.Sprintf("%-5s %s", c.Op, point(c.To))
	case arch.OpArc:
		dir := "cw"
		if c.CounterClockwise {
			dir = "ccw"
		}
		return fmt.Sprintf("%-5s %s r=%s %s→%s %s", c.Op, point(c.Center), num(c.Radius), angle(c.Start), angle(c.End), dir)
	default:
		return c.Op.String()
	}
}

// angle formats radians as a multiple of π.
func angle(rad float64) string {
	if rad == 0 {
		return "0"
	}
	return num(rad/math.Pi) + "π"
}
