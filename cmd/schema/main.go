package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/config"
	"github.com/inference-directory/infdir/internal/tui/theme"
)

func main() {
	schema := generateSchema()

	// Pretty print the schema
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(schema); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding schema: %v\n", err)
		os.Exit(1)
	}
}

func generateSchema() map[string]any {
	schema := map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       "infdir Configuration",
		"description": "Configuration schema for the infdir inference directory",
		"type":        "object",
		"properties":  map[string]any{},
	}
	properties := schema["properties"].(map[string]any)

	properties["data"] = map[string]any{
		"type":        "object",
		"description": "Storage configuration",
		"properties": map[string]any{
			"directory": map[string]any{
				"type":        "string",
				"description": "Directory for debug logs and panic reports",
				"default":     ".infdir",
			},
		},
	}

	properties["debug"] = map[string]any{
		"type":        "boolean",
		"description": "Enable debug logging",
		"default":     false,
	}

	properties["dataset"] = map[string]any{
		"type":        "object",
		"description": "Pricing dataset endpoint",
		"properties": map[string]any{
			"baseURL": map[string]any{
				"type":        "string",
				"description": "Rows endpoint of the dataset server; offset and length are appended",
				"default":     config.DefaultBaseURL,
				"format":      "uri",
			},
			"pageSize": map[string]any{
				"type":        "integer",
				"description": "Rows requested per page",
				"default":     config.DefaultPageSize,
				"minimum":     1,
				"maximum":     config.MaxPageSize,
			},
			"timeout": map[string]any{
				"type":        "string",
				"description": "Per-request timeout as a Go duration",
				"default":     config.DefaultTimeout.String(),
			},
			"userAgent": map[string]any{
				"type":        "string",
				"description": "User-Agent header sent with every page request",
			},
			"token": map[string]any{
				"type":        "string",
				"description": "Bearer token for gated datasets, defaults to $HF_TOKEN",
			},
		},
	}

	properties["search"] = map[string]any{
		"type":        "object",
		"description": "Search behaviour",
		"properties": map[string]any{
			"debounceMs": map[string]any{
				"type":        "integer",
				"description": "Milliseconds the TUI waits after the last keystroke before querying",
				"default":     config.DefaultDebounceMs,
				"minimum":     0,
			},
			"maxDistance": map[string]any{
				"type":        "integer",
				"description": "Maximum edits tolerated by fuzzy matching, 0 selects the default",
				"default":     config.DefaultMaxDistance,
				"minimum":     0,
			},
		},
	}

	themes := theme.AvailableThemes()
	properties["tui"] = map[string]any{
		"type":        "object",
		"description": "Terminal User Interface configuration",
		"properties": map[string]any{
			"theme": map[string]any{
				"type":        "string",
				"description": "TUI theme name",
				"default":     config.DefaultTheme,
				"enum":        themes,
			},
		},
	}

	knownProviders := make([]string, 0, len(catalog.DefaultRegistry))
	for _, p := range catalog.DefaultRegistry {
		knownProviders = append(knownProviders, p.ID)
	}
	properties["providers"] = map[string]any{
		"type":        "array",
		"description": fmt.Sprintf("Extra providers appended to the built-in registry (%v)", knownProviders),
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "string",
					"description": "Provider id, matched against offering names ignoring case",
				},
				"name": map[string]any{
					"type":        "string",
					"description": "Display name, also matched against offering names",
				},
				"glyph": map[string]any{
					"type":        "string",
					"description": "Single-cell symbol shown before the name",
				},
			},
			"required": []string{"id"},
		},
	}

	return schema
}
