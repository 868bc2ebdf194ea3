package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abelbrown/newsdeck/internal/brain"
	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/proxy"
)

var proxyListen string

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the summarization proxy",
	Long: `proxy serves POST /api/summarize, forwarding article text to a language
model (OpenAI, Claude, or a local Ollama). Keys come from OPENAI_API_KEY and
ANTHROPIC_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitWriter(os.Stderr, cfg.Log.Level)

		listen := cfg.Proxy.Listen
		if proxyListen != "" {
			listen = proxyListen
		}

		providers := brain.ProvidersFrom(cfg.Proxy, nil)
		provider := brain.Select(cfg.Proxy.Provider, providers...)
		if provider == nil {
			logging.Warn("no language model provider available; summarize requests will fail",
				"hint", "set OPENAI_API_KEY or ANTHROPIC_API_KEY, or run Ollama")
		} else if cfg.Proxy.Provider != "" && provider.Name() != cfg.Proxy.Provider {
			logging.Warn("configured provider unavailable, falling back", "wanted", cfg.Proxy.Provider, "using", provider.Name())
		}

		srv := proxy.New(provider, proxy.Options{
			Listen:      listen,
			RatePerSec:  cfg.Proxy.RatePerSec,
			Burst:       cfg.Proxy.Burst,
			Temperature: cfg.Proxy.Temperature,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	proxyCmd.Flags().StringVar(&proxyListen, "listen", "", "listen address (default from config)")
}
