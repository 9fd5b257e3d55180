package cli

import "errors"

// CLI errors.
var (
	errIDRequired       = errors.New("item id is required")
	errSummaryRequired  = errors.New("summary is required")
	errTooManyArgs      = errors.New("too many arguments")
	errSnoozeTarget     = errors.New("exactly one of --for or --until is required")
	errInvalidDuration  = errors.New("invalid duration")
	errInvalidTime      = errors.New("invalid time (use RFC3339, \"2006-01-02 15:04\" or \"2006-01-02\")")
	errInvalidFormat    = errors.New("invalid format (valid: yaml, json)")
	errFocusFlags       = errors.New("--focus and --no-focus are mutually exclusive")
	errNegativeLimit    = errors.New("--limit must not be negative")
	errUnknownCommand   = errors.New("unknown command")
	errPromptCancelled  = errors.New("cancelled")
	errInvalidSelection = errors.New("invalid selection")
)
