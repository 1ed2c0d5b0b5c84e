// Package workflow drives the checkpointed collection of a loan
// application: personal info (C1), financials (C2), references (C3), loan
// product selection, document confirmation and final submission. The engine
// talks to the applicant only through the Prompter interface, so the
// interactive console front end and the scripted test harness share the
// exact same state machine.
package workflow

import (
	"errors"
	"strings"
)

// ExitToken is the word an applicant types at any field prompt to pause.
// The current progress is saved as-is and the workflow exits without
// advancing; this is the only way to interrupt a run.
const ExitToken = "exit"

// ErrPaused is returned by the engine after a pause request has been
// persisted. It is a normal outcome, not a failure.
var ErrPaused = errors.New("application paused and saved")

// Prompter is the engine's only channel to the applicant. Implementations
// must block until input is available; the engine is strictly sequential.
type Prompter interface {
	// Ask prompts for one free-text field and returns the raw input.
	Ask(label string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)

	// Select presents options and returns the chosen index.
	Select(title string, options []string) (int, error)

	// Say shows a message to the applicant.
	Say(format string, args ...interface{})

	// ShowField displays an already-collected field read-only, used when a
	// resumed record skips past filled fields.
	ShowField(label, value string)
}

// isExit reports whether raw input is the pause token, case-insensitively.
func isExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), ExitToken)
}
