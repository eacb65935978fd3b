// Command gridiron serves and runs Pro-Football-Reference page parses.
//
//	gridiron serve                         start the HTTP API
//	gridiron parse draft -p year=2024      fetch and parse one page
//	gridiron parse hof --file hof.html     parse a saved page
//	gridiron batch jobs.yaml               run a manifest of parses
//	gridiron tables page.html              list the tables on a saved page
//	gridiron pages                         list the supported page types
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/use-agent/gridiron/config"
)

var version = "dev"

func main() {
	cfg := config.Load()

	root := &cobra.Command{
		Use:          "gridiron",
		Short:        "Structured data from Pro-Football-Reference pages",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initLogger(cfg.Log)
		},
	}
	root.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format (json, text)")

	root.AddCommand(
		newServeCmd(cfg),
		newParseCmd(cfg),
		newBatchCmd(cfg),
		newTablesCmd(),
		newPagesCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger configures slog from cfg. Logs go to stderr so command output
// on stdout stays machine readable.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
