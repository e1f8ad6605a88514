package styles

const (
	SearchIcon   string = "⌕"
	CheckIcon    string = "✓"
	ErrorIcon    string = "✖"
	WarningIcon  string = "⚠"
	InfoIcon     string = "ⓘ"
	SpinnerIcon  string = "..."

	GoodIcon string = "▲"
	FairIcon string = "●"
	PoorIcon string = "▼"
)
