package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/newsdeck/internal/httpclient"
	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/summary"
	"github.com/abelbrown/newsdeck/internal/ui"
)

var browsePortal string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse portals and swipe through stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(browsePortal)
	},
}

func init() {
	browseCmd.Flags().StringVar(&browsePortal, "portal", "", "open this portal id directly")
}

func runBrowse(portal string) error {
	// The TUI owns the terminal, so logs go to a file.
	if err := logging.Init(cfg.Log.Level); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	summarizer := summary.NewClient(cfg.Summary.ProxyURL, httpclient.New(cfg.Summary.Timeout))
	app := ui.NewApp(newSource(cfg), summarizer, ui.Options{
		Portal:           portal,
		FetchTimeout:     cfg.News.RequestTimeout,
		SummaryTimeout:   cfg.Summary.Timeout,
		SwipeMinDistance: cfg.UI.SwipeMinDistance,
		SwipeMinVelocity: cfg.UI.SwipeMinVelocity,
		Animate:          cfg.UI.Animate,
		GlamourStyle:     cfg.UI.GlamourStyle,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		logging.Error("program exited with error", "err", err)
		return err
	}
	return nil
}
