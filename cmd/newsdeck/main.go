// Command newsdeck is a terminal news reader: pick a portal, swipe through
// the latest stories, read one in full, and ask for a short AI summary.
//
// Usage:
//
//	newsdeck                    Browse (same as "newsdeck browse")
//	newsdeck browse --portal ID Open a portal directly
//	newsdeck proxy              Run the summarization proxy
//	newsdeck portals            List portals
//	newsdeck article <id>       Print one article
//	newsdeck config             Show or write the config file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abelbrown/newsdeck/internal/config"
	"github.com/abelbrown/newsdeck/internal/httpclient"
	"github.com/abelbrown/newsdeck/internal/news"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "newsdeck",
	Short: "Swipe through the news in your terminal",
	Long: `newsdeck shows the latest stories from a news portal one card at a time.
Drag left or right (or use the arrow keys) to move between stories, press
enter to read one, and s for a short summary from the summarization proxy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse("")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.newsdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(browseCmd, proxyCmd, portalsCmd, articleCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "newsdeck:", err)
		os.Exit(1)
	}
}

// initConfig loads .env, the config file, and flag overrides.
func initConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	cfg = loaded
	return nil
}

// newSource builds the content source: the news API plus any configured
// feeds.
func newSource(c *config.Config) news.Source {
	client := httpclient.New(c.News.RequestTimeout)

	var api, feeds news.Source
	if c.News.APIBase != "" {
		api = news.NewClient(c.News.APIBase, config.PageSize, client)
	}
	if len(c.News.Feeds) > 0 {
		list := make([]news.Feed, 0, len(c.News.Feeds))
		for _, f := range c.News.Feeds {
			list = append(list, news.Feed{ID: f.ID, Name: f.Name, URL: f.URL})
		}
		feeds = news.NewFeedSource(list, config.PageSize, client)
	}
	return news.NewMulti(api, feeds)
}
