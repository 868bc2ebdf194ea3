package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/render"
)

var (
	articleWidth int
	articleStyle string
)

var articleCmd = &cobra.Command{
	Use:   "article <id>",
	Short: "Print one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitWriter(os.Stderr, cfg.Log.Level)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.News.RequestTimeout)
		defer cancel()

		a, ok := newSource(cfg).GetArticle(ctx, args[0])
		if !ok {
			return errors.New("could not load the article")
		}

		term := render.NewTerminal(articleWidth, articleStyle)
		title := lipgloss.NewStyle().Bold(true).Width(articleWidth).Render(a.DisplayTitle())
		fmt.Println(title)
		fmt.Println()
		fmt.Println(term.Render(render.Article(a)))
		return nil
	},
}

func init() {
	articleCmd.Flags().IntVar(&articleWidth, "width", 80, "wrap width")
	articleCmd.Flags().StringVar(&articleStyle, "style", "dark", "glamour style: dark, light, notty")
}
