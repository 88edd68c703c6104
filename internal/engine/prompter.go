package engine

import "context"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Prompter is the UI collaborator. Implementations re-prompt on invalid
// input themselves; an error means the session was interrupted.
type Prompter interface {
	Choose(ctx context.Context, title string, options []string) (int, error)
	Text(ctx context.Context, prompt string) (string, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
	Notify(severity Severity, message string)
}
