// Package images harvests remote images referenced by persisted Markdown
// documents into a local media directory and rewrites the references to point
// at the downloaded copies.
package images

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/liweichen/series-harvester/internal/fetch"
)

// mediaDirName is the subdirectory of a series directory that holds
// downloaded images. Document references are rewritten relative to it.
const mediaDirName = "media"

// defaultExtension is used when an image URL carries no recognized suffix.
const defaultExtension = ".png"

// imagePattern matches Markdown image references: ![alt](url).
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// imageExtensions are the URL path suffixes recognized as image formats.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".ico"}

// Registry maps remote image URLs to local media filenames. Sharing one
// registry across documents deduplicates downloads: a URL that appears in
// several documents is fetched once and rewritten everywhere.
type Registry map[string]string

// Stats aggregates the outcome of an image pass over one series directory.
type Stats struct {
	ArticleCount    int
	ImageCount      int
	DownloadSuccess int
	DownloadFailed  int
}

// ArchiveStats aggregates an image pass over a whole archive root.
type ArchiveStats struct {
	SeriesCount int
	Stats
}

// ProcessSeriesDir downloads every remote image referenced by the Markdown
// documents directly under dir into dir/media and rewrites the references to
// the local copies. Already-local and non-HTTP references are left alone, and
// a failed download leaves its reference untouched so a later pass can retry
// it. Pass nil for registry to run with a fresh one.
func ProcessSeriesDir(ctx context.Context, dir string, opts *fetch.Options, registry Registry, verbose bool) (Stats, error) {
	var stats Stats

	info, err := os.Stat(dir)
	if err != nil {
		return stats, fmt.Errorf("cannot access series directory: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("not a directory: %s", dir)
	}

	mediaDir := filepath.Join(dir, mediaDirName)
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return stats, fmt.Errorf("failed to create media directory: %w", err)
	}

	if registry == nil {
		registry = make(Registry)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("failed to read series directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		stats.ArticleCount++
		fmt.Printf("  Processing article: %s\n", entry.Name())

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("    Warning: failed to read %s: %v\n", entry.Name(), err)
			continue
		}
		original := string(raw)

		matches := imagePattern.FindAllStringSubmatch(original, -1)
		if len(matches) == 0 {
			continue
		}
		fmt.Printf("    Found %d images\n", len(matches))

		content := original
		for _, match := range matches {
			alt, imageURL := match[1], match[2]
			stats.ImageCount++

			if strings.HasPrefix(imageURL, "media/") || strings.HasPrefix(imageURL, "./media/") {
				if verbose {
					log.Printf("[IMAGES] skipping local reference: %s", imageURL)
				}
				continue
			}
			if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
				if verbose {
					log.Printf("[IMAGES] skipping non-HTTP reference: %s", imageURL)
				}
				continue
			}

			localName, seen := registry[imageURL]
			if !seen {
				localName = uuid.New().String() + extensionFor(imageURL)
				fmt.Printf("    Downloading: %.60s...\n", imageURL)

				data, err := fetch.Bytes(ctx, imageURL, opts)
				if err != nil {
					fmt.Printf("    Warning: download failed: %v\n", err)
					stats.DownloadFailed++
					continue
				}
				if err := os.WriteFile(filepath.Join(mediaDir, localName), data, 0644); err != nil {
					fmt.Printf("    Warning: failed to save %s: %v\n", localName, err)
					stats.DownloadFailed++
					continue
				}
				stats.DownloadSuccess++
				registry[imageURL] = localName
				if verbose {
					log.Printf("[IMAGES] saved %s as %s", imageURL, localName)
				}
			} else if verbose {
				log.Printf("[IMAGES] reusing downloaded copy: %s", localName)
			}

			oldRef := fmt.Sprintf("![%s](%s)", alt, imageURL)
			newRef := fmt.Sprintf("![%s](media/%s)", alt, localName)
			content = strings.ReplaceAll(content, oldRef, newRef)
		}

		if content != original {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				fmt.Printf("    Warning: failed to update %s: %v\n", entry.Name(), err)
			} else if verbose {
				log.Printf("[IMAGES] updated %s", entry.Name())
			}
		}
	}

	return stats, nil
}

// ProcessArchiveDir runs the image pass over every series directory directly
// under root, each with its own fresh registry. Directories named media are
// skipped so an archive root that is itself a series directory does not get
// its image store scanned as a series.
func ProcessArchiveDir(ctx context.Context, root string, opts *fetch.Options, verbose bool) (ArchiveStats, error) {
	var stats ArchiveStats

	entries, err := os.ReadDir(root)
	if err != nil {
		return stats, fmt.Errorf("failed to read archive directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == mediaDirName {
			continue
		}
		stats.SeriesCount++
		fmt.Printf("\nProcessing series: %s\n", entry.Name())

		seriesStats, err := ProcessSeriesDir(ctx, filepath.Join(root, entry.Name()), opts, make(Registry), verbose)
		if err != nil {
			fmt.Printf("Warning: image pass failed for %s: %v\n", entry.Name(), err)
			continue
		}
		stats.ArticleCount += seriesStats.ArticleCount
		stats.ImageCount += seriesStats.ImageCount
		stats.DownloadSuccess += seriesStats.DownloadSuccess
		stats.DownloadFailed += seriesStats.DownloadFailed
	}

	return stats, nil
}

// extensionFor returns the recognized image extension of a URL path, or the
// default when the suffix is unknown.
func extensionFor(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return defaultExtension
	}
	path := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return ext
		}
	}
	return defaultExtension
}
