package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants",
	Long:  `Shows every registered variant with the block rows it plays with.`,
	RunE:  runList,
}

// variantRows returns the block rows of a variant under the loaded config.
func variantRows(id string, cfg config.BreakoutConfig) string {
	game, err := registry.Create(id)
	if err != nil {
		return "?"
	}
	if g, ok := game.(interface {
		BlockRows(config.BreakoutConfig) int
	}); ok {
		return strconv.Itoa(g.BlockRows(cfg))
	}
	return "-"
}

func runList(cmd *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No variants available.")
		return nil
	}

	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(games))
	idWidth, titleWidth := len("ID"), len("Title")
	for _, g := range games {
		rows = append(rows, table.Row{g.ID, g.Title, variantRows(g.ID, cfg)})
		idWidth = max(idWidth, len(g.ID))
		titleWidth = max(titleWidth, len(g.Title))
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: idWidth},
			{Title: "Title", Width: titleWidth},
			{Title: "Rows", Width: 4},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithStyles(styles),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, t.View())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'breakout play <id>' to play a variant.")
	return nil
}
