package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/pipeline"
)

var styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the arches of a composition and their geometry",
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
			fmt.Println(showComposition(comp))
			return nil
		},
	}
}

func showComposition(comp arch.Composition) string {
	title := StyleTitle.Render(displayName(comp, ""))
	canvas := StyleDim.Render(fmt.Sprintf("canvas %s × %s", num(comp.Canvas.Width), num(comp.Canvas.Height)))
	if comp.Background != nil {
		canvas += StyleDim.Render(" · background ") + swatch(*comp.Background)
	}
	return title + "\n" + canvas + "\n" + archTable(comp).Render()
}

// archTable lays out one row per arch in paint order. Degenerate arches
// are dimmed.
func archTable(comp arch.Composition) *table.Table {
	rows := make([][]string, len(comp.Arches))
	for i, s := range comp.Arches {
		row := []string{strconv.Itoa(i), archLabel(i, s), swatch(s.Fill), num(s.Width), num(s.Height), num(s.Offset)}
		if g, ok := arch.Measure(s, comp.Canvas.Width); ok {
			row = append(row, point(g.Center), num(g.Radius), point(g.BottomRight))
		} else {
			row = append(row, "skipped", "—", "—")
		}
		rows[i] = row
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Arch", "Fill", "Width", "Height", "Offset", "Center", "Radius", "Bottom right").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 {
				return styleTableHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(comp.Arches) {
				return base
			}
			if comp.Arches[row].Degenerate() {
				return base.Foreground(colorDim)
			}
			if col == 0 {
				return base.Foreground(colorGray)
			}
			if col == 3 || col == 4 || col == 5 {
				return base.Foreground(colorAccent)
			}
			return base
		})
}
