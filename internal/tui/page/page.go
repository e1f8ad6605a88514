package page

// PageID names a top-level screen of the TUI.
type PageID string
