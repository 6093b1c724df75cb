// Package main implements the harvester CLI for turning content series into
// Markdown archives.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/liweichen/series-harvester/internal/browser"
	"github.com/liweichen/series-harvester/internal/config"
	"github.com/liweichen/series-harvester/internal/pipeline"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Harvest every configured series into a Markdown archive",
	Long: `Runs the full harvest for each series listed in the seeds file: resolves the
series feed in a headless browser, extracts every listed article, converts it
to Markdown, and downloads embedded images into the series media directory.

Command-line arguments override seeds file values.`,
	RunE: runCrawl,
}

var (
	crawlConfigPath  string
	crawlOutput      string
	crawlTimeout     int
	crawlInsecureTLS bool
	crawlVerbose     bool
)

func init() {
	// Config file flag (processed first)
	crawlCmd.Flags().StringVar(&crawlConfigPath, "config", "series.json", "Path to seeds JSON file (values can be overridden by other flags)")

	crawlCmd.Flags().StringVarP(&crawlOutput, "output", "o", "articles", "Archive root directory")
	crawlCmd.Flags().IntVar(&crawlTimeout, "timeout", 30, "HTTP timeout in seconds for feed and image downloads")
	crawlCmd.Flags().BoolVar(&crawlInsecureTLS, "insecure-tls", true, "Skip TLS certificate verification on feed and image downloads")
	crawlCmd.Flags().BoolVarP(&crawlVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load the seeds file
	loadedCfg, err := config.LoadConfig(crawlConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := loadedCfg.Validate(); err != nil {
		return err
	}

	cfg := *loadedCfg
	if crawlVerbose {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", crawlConfigPath)
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("output") {
		cfg.Output = crawlOutput
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = crawlTimeout
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = crawlVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Output:  "articles",
		Timeout: 30,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	timeout := time.Duration(cfg.Timeout) * time.Second
	renderer := &browser.Chrome{
		Timeout: timeout,
		Verbose: cfg.Verbose,
	}

	pipeline.Run(ctx, renderer, pipeline.Options{
		SeriesURLs:  cfg.Series,
		OutputDir:   cfg.Output,
		Timeout:     timeout,
		InsecureTLS: crawlInsecureTLS,
		Verbose:     cfg.Verbose,
	})

	return nil
}
