package format

import (
	"fmt"
	"strings"
)

// OutputFormat represents the output format type for non-interactive mode
type OutputFormat string

const (
	// Text format outputs one aligned line per model.
	Text OutputFormat = "text"

	// JSON format outputs the records as an indented JSON array.
	JSON OutputFormat = "json"

	// Markdown format outputs a table, rendered with glamour on a terminal.
	Markdown OutputFormat = "markdown"
)

// String returns the string representation of the OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// SupportedFormats is a list of all supported output formats as strings
var SupportedFormats = []string{
	string(Text),
	string(JSON),
	string(Markdown),
}

// Parse converts a string to an OutputFormat
func Parse(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case string(Text):
		return Text, nil
	case string(JSON):
		return JSON, nil
	case string(Markdown), "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("invalid format: %s", s)
	}
}

// IsValid checks if the provided format string is supported
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// GetHelpText returns a formatted string describing all supported formats
func GetHelpText() string {
	return fmt.Sprintf(`Supported output formats:
- %s: Aligned plain text (default)
- %s: Records as a JSON array
- %s: Markdown table`,
		Text, JSON, Markdown)
}
