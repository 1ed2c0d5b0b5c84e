package workflow

import (
	"fmt"

	"loanbuddy/internal/logging"
	"loanbuddy/internal/record"
	"loanbuddy/internal/store"
	"loanbuddy/internal/validate"
)

// Resume finds the applicant's unfinished applications by CNIC and
// re-enters the workflow at the stored checkpoint. With more than one
// unfinished application the applicant picks which to continue. Returns
// store.ErrNotFound when there is nothing to resume.
func (e *Engine) Resume(cnic string) (*record.Application, error) {
	if err := validate.CNIC(cnic); err != nil {
		return nil, err
	}

	apps, err := e.store.Incomplete(cnic)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, store.ErrNotFound
	}

	app := apps[0]
	if len(apps) > 1 {
		labels := make([]string, len(apps))
		for i, a := range apps {
			labels[i] = fmt.Sprintf("%s (paused at %s)", a.ID, describeStatus(a.Status))
		}
		i, err := e.prompter.Select("You have more than one unfinished application. Which one would you like to continue?", labels)
		if err != nil {
			return nil, err
		}
		app = apps[i]
	}

	logging.Workflow("resuming application %s at %s", app.ID, app.Status)
	e.prompter.Say("Welcome back. Resuming application %s — %s.", app.ID, describeStatus(app.Status))
	return app, e.Run(app)
}

// ResumeByID resumes one specific application, verifying the CNIC matches.
func (e *Engine) ResumeByID(id, cnic string) (*record.Application, error) {
	app, err := e.store.Lookup(id, cnic)
	if err != nil {
		return nil, err
	}
	logging.Workflow("resuming application %s at %s", app.ID, app.Status)
	e.prompter.Say("Welcome back. Resuming application %s — %s.", app.ID, describeStatus(app.Status))
	return app, e.Run(app)
}

func describeStatus(s record.Status) string {
	switch s {
	case record.StatusC1:
		return "personal information"
	case record.StatusC2:
		return "financial information"
	case record.StatusC3:
		return "references"
	case record.StatusDocsReady:
		return "awaiting final submission"
	default:
		return string(s)
	}
}
