// Package document assembles harvested articles into Markdown files and
// persists them under their sanitized titles.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteError represents an error persisting a document to disk.
type WriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("write error for %s: %s", e.Path, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Build assembles the full Markdown document for an article: an H1 title,
// a quoted source link when one exists, then the converted body.
func Build(title, sourceLink, body string) string {
	var doc strings.Builder
	fmt.Fprintf(&doc, "# %s\n\n", title)
	if sourceLink != "" {
		fmt.Fprintf(&doc, "> 原文連結: %s\n\n", sourceLink)
	}
	doc.WriteString(body)
	return doc.String()
}

// Write persists content under dir as SanitizeName(title) + ".md",
// overwriting any previous version of the same document. It returns the path
// that was written.
func Write(dir, title, content string) (string, error) {
	path := filepath.Join(dir, SanitizeName(title)+".md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &WriteError{
			Path:    path,
			Message: "failed to write document",
			Cause:   err,
		}
	}
	return path, nil
}
