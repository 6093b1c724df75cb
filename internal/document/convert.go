package document

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ConvertError represents an error converting extracted HTML to Markdown.
type ConvertError struct {
	Message string
	Cause   error
}

func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("convert error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("convert error: %s", e.Message)
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// converter is shared across calls. html-to-markdown converters are safe for
// concurrent use once configured.
var converter = newConverter()

func newConverter() *md.Converter {
	conv := md.NewConverter("", true, nil)
	conv.Remove("script", "style", "button")
	return conv
}

// ToMarkdown converts an HTML fragment to Markdown with ATX-style headings.
// Script, style and button elements are dropped before conversion and the
// result is trimmed of surrounding whitespace. Empty input yields empty
// output without error.
func ToMarkdown(fragment string) (string, error) {
	if fragment == "" {
		return "", nil
	}
	out, err := converter.ConvertString(fragment)
	if err != nil {
		return "", &ConvertError{Message: "markdown conversion failed", Cause: err}
	}
	return strings.TrimSpace(out), nil
}
