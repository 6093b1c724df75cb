package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liweichen/series-harvester/internal/document"
	"github.com/liweichen/series-harvester/internal/feed"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert saved feed XML files into Markdown documents",
	Long: `Offline mode: scans a directory for saved feed XML files, parses each one,
and writes every article's embedded content as a Markdown document. No browser
and no network access; run the images command afterwards to localize images.`,
	RunE: runConvert,
}

var (
	convertFeedsDir string
	convertOutput   string
)

func init() {
	convertCmd.Flags().StringVar(&convertFeedsDir, "feeds", "rss", "Directory containing saved feed XML files")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "output", "Output directory for Markdown documents")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, _ []string) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Feed files to Markdown")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nScanning %s for feed files...\n", convertFeedsDir)
	articles, err := collectArticles(convertFeedsDir)
	if err != nil {
		return err
	}

	fmt.Printf("\nFound %d articles in total\n", len(articles))
	if len(articles) == 0 {
		fmt.Println("No articles found, nothing to convert")
		return nil
	}

	fmt.Println("\nArticles:")
	for i, article := range articles {
		fmt.Printf("  %d. %s\n", i+1, article.Title)
	}

	if err := os.MkdirAll(convertOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", convertOutput, err)
	}

	fmt.Printf("\nConverting into %s...\n", convertOutput)
	saved := 0
	for i, article := range articles {
		fmt.Printf("  (%d/%d) %.50s...\n", i+1, len(articles), article.Title)

		markdown, err := document.ToMarkdown(article.Content)
		if err != nil {
			fmt.Printf("    Warning: %v\n", err)
			continue
		}

		content := document.Build(article.Title, article.Link, markdown)
		if _, err := document.Write(convertOutput, article.Title, content); err != nil {
			fmt.Printf("    Warning: %v\n", err)
			continue
		}
		saved++
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("Done! Saved %d/%d articles\n", saved, len(articles))
	fmt.Printf("Output directory: %s\n", convertOutput)
	fmt.Println(strings.Repeat("=", 60))

	return nil
}

// collectArticles parses every .xml file directly under dir and returns the
// articles from all parseable feeds in directory order. Unreadable or
// malformed files are reported and skipped.
func collectArticles(dir string) ([]feed.Article, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".xml") {
			names = append(names, entry.Name())
		}
	}
	fmt.Printf("Found %d feed files\n", len(names))

	var articles []feed.Article
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Printf("  Warning: failed to read %s: %v\n", name, err)
			continue
		}

		parsed, err := feed.Parse(string(data))
		if err != nil {
			fmt.Printf("  Warning: failed to parse %s: %v\n", name, err)
			continue
		}

		fmt.Printf("  %s: %d articles\n", name, len(parsed.Articles))
		articles = append(articles, parsed.Articles...)
	}

	return articles, nil
}
