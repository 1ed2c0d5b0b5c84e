// This file implements the interactive chat interface: scripted triggers
// for the application workflow plus the retrieval fallback for everything
// else.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"loanbuddy/cmd/loanbuddy/ui"
	"loanbuddy/internal/logging"
	"loanbuddy/internal/store"
	"loanbuddy/internal/validate"
	"loanbuddy/internal/workflow"
)

const helpText = `Here is what I understand:
  apply   - start a new loan application
  resume  - continue a saved application (you'll need your CNIC)
  status  - check on your applications
  h       - show this help
  x       - leave the chat

Anything else you type, I'll do my best to answer.`

// runChat is the default command: a read-eval loop over scripted triggers
// with the corpus fallback for free text.
func runChat() error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	if app.cfg.Theme == "dark" {
		styles = ui.NewStyles(ui.DarkTheme())
	}
	prompter := newConsolePrompter(styles)

	engine := workflow.New(app.store, app.catalog, prompter, app.cfg.DocumentsDir)

	sessionID := uuid.NewString()
	logging.Session("chat session %s started", sessionID)
	defer logging.Session("chat session %s ended", sessionID)

	fmt.Println(ui.Banner(styles))
	greeting := "Hello! I'm Loan Buddy, your loan application assistant."
	if entry, _ := app.responder.BestMatch("hello"); entry != nil {
		greeting = entry.Response
	}
	prompter.Say("%s", greeting)
	prompter.Say("Type 'apply' to start an application, 'resume' to continue one, or 'h' for help.")

	for {
		input, err := prompter.Ask("you")
		if err != nil {
			// stdin closed, treat as a quiet exit
			return nil
		}
		trigger := strings.ToLower(strings.TrimSpace(input))

		switch trigger {
		case "":
			continue

		case "x", "exit", "quit", "bye":
			prompter.Say("Goodbye! Your saved applications will be waiting.")
			return nil

		case "h", "help":
			prompter.Say("%s", helpText)
			if types := app.catalog.Types(); len(types) > 0 {
				prompter.Say("Loan products currently on offer: %s.", strings.Join(types, ", "))
			}

		case "apply":
			if _, err := engine.Start(); err != nil && !errors.Is(err, workflow.ErrPaused) {
				prompter.Say("Something went wrong: %v", err)
				logging.Session("session %s: apply failed: %v", sessionID, err)
			}

		case "resume":
			handleResume(engine, prompter)

		case "status":
			handleStatus(app.store, prompter)

		default:
			prompter.Say("%s", app.responder.Respond(input))
		}
	}
}

func handleResume(engine *workflow.Engine, prompter *consolePrompter) {
	cnic, err := prompter.Ask("Your CNIC number (13 digits)")
	if err != nil {
		return
	}
	cnic = strings.TrimSpace(cnic)

	id, err := prompter.Ask("Application id (press Enter to search by CNIC)")
	if err != nil {
		return
	}
	id = strings.TrimSpace(id)

	if id != "" {
		_, err = engine.ResumeByID(id, cnic)
	} else {
		_, err = engine.Resume(cnic)
	}
	switch {
	case err == nil, errors.Is(err, workflow.ErrPaused):
	case errors.Is(err, store.ErrNotFound):
		prompter.Say("I couldn't find an unfinished application matching that. Type 'apply' to start one.")
	case errors.Is(err, store.ErrCompleted):
		prompter.Say("That application is already completed and can no longer be changed. Type 'status' to check on it.")
	default:
		prompter.Say("Something went wrong: %v", err)
	}
}

func handleStatus(st *store.Store, prompter *consolePrompter) {
	cnic, err := prompter.Ask("Your CNIC number (13 digits)")
	if err != nil {
		return
	}
	cnic = strings.TrimSpace(cnic)
	if verr := validate.CNIC(cnic); verr != nil {
		prompter.Say("%v", verr)
		return
	}

	counts, err := st.CountByStatus(cnic)
	if err != nil {
		prompter.Say("Something went wrong: %v", err)
		return
	}
	if counts.Total == 0 {
		prompter.Say("No applications on file for that CNIC yet.")
		return
	}
	prompter.Say("You have %d application(s): %d in progress, %d submitted, %d approved, %d rejected.",
		counts.Total, counts.Incomplete, counts.Submitted, counts.Approved, counts.Rejected)
}
