package theme

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Manager handles theme registration, selection, and retrieval.
type Manager struct {
	themes      map[string]Theme
	currentName string
	mu          sync.RWMutex
}

// Global instance of the theme manager
var globalManager = &Manager{
	themes: make(map[string]Theme),
}

// RegisterTheme adds a new theme to the registry.
// The first registered theme becomes the current one.
func RegisterTheme(name string, theme Theme) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.themes[name] = theme
	if globalManager.currentName == "" {
		globalManager.currentName = name
	}
}

// SetTheme changes the active theme to the one with the specified name.
func SetTheme(name string) error {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	name = strings.ToLower(strings.TrimSpace(name))
	if _, exists := globalManager.themes[name]; !exists {
		return fmt.Errorf("theme '%s' not found", name)
	}
	globalManager.currentName = name
	return nil
}

// CurrentTheme returns the currently active theme.
func CurrentTheme() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	return globalManager.themes[globalManager.currentName]
}

// CurrentThemeName returns the name of the currently active theme.
func CurrentThemeName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	return globalManager.currentName
}

// AvailableThemes returns a sorted list of all registered theme names.
func AvailableThemes() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	names := make([]string, 0, len(globalManager.themes))
	for name := range globalManager.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NextTheme returns the theme after the current one in AvailableThemes order.
func NextTheme() string {
	names := AvailableThemes()
	if len(names) == 0 {
		return ""
	}
	current := CurrentThemeName()
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}
