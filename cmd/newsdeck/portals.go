package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/abelbrown/newsdeck/internal/logging"
)

var portalsCmd = &cobra.Command{
	Use:   "portals",
	Short: "List the available portals",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitWriter(os.Stderr, cfg.Log.Level)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.News.RequestTimeout)
		defer cancel()

		portals := newSource(cfg).ListPortals(ctx)
		if len(portals) == 0 {
			fmt.Println("No portals available.")
			return nil
		}

		rows := make([][]string, 0, len(portals))
		for _, p := range portals {
			rows = append(rows, []string{p.ID, p.Name})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers("ID", "NAME").
			Rows(rows...)

		fmt.Println(t)
		return nil
	},
}
