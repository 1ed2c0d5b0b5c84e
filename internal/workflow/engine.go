package workflow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loanbuddy/internal/catalog"
	"loanbuddy/internal/logging"
	"loanbuddy/internal/record"
	"loanbuddy/internal/store"
	"loanbuddy/internal/validate"
)

// Engine runs the application workflow against a store and a loan catalog.
// It holds no per-application state; the Application being worked on is
// passed through Run so a single engine can serve many sessions.
type Engine struct {
	store    *store.Store
	catalog  *catalog.Catalog
	prompter Prompter
	docsDir  string
}

// New wires an engine. docsDir is where applicants place their scanned
// documents; it is created on demand.
func New(st *store.Store, cat *catalog.Catalog, p Prompter, docsDir string) *Engine {
	return &Engine{store: st, catalog: cat, prompter: p, docsDir: docsDir}
}

// Start allocates a fresh application id and runs the workflow from the
// first checkpoint. The application is returned even when Run pauses, so
// callers can tell the applicant their id.
func (e *Engine) Start() (*record.Application, error) {
	id, err := e.store.AllocateID()
	if err != nil {
		return nil, fmt.Errorf("could not allocate application id: %w", err)
	}
	app := record.New(id)
	logging.Workflow("started application %s", id)
	e.prompter.Say("Your application id is %s. Note it down together with your CNIC — you will need both to resume later.", id)
	e.prompter.Say("Type %q at any question to pause; your progress is saved automatically at each step.", ExitToken)
	return app, e.Run(app)
}

// Run drives the workflow from the application's current status to
// completion. Progress is persisted at every checkpoint boundary, and once
// more on pause so no answered field is ever lost. A clean finish returns
// nil; the final status tells the caller whether the application was
// submitted or stopped earlier by choice.
func (e *Engine) Run(app *record.Application) error {
	err := e.run(app)
	if errors.Is(err, ErrPaused) {
		if serr := e.store.Upsert(app); serr != nil {
			return serr
		}
		logging.Workflow("paused application %s at %s", app.ID, app.Status)
		e.prompter.Say("Progress saved. Resume anytime with application id %s and your CNIC.", app.ID)
		return ErrPaused
	}
	return err
}

func (e *Engine) run(app *record.Application) error {
	if app.Status == record.StatusC1 {
		if err := e.collectPersonal(app); err != nil {
			return err
		}
		app.Status = record.StatusC2
		if err := e.checkpoint(app); err != nil {
			return err
		}
	}

	if app.Status == record.StatusC2 {
		if err := e.collectFinancial(app); err != nil {
			return err
		}
		app.Status = record.StatusC3
		if err := e.checkpoint(app); err != nil {
			return err
		}
	}

	if app.Status == record.StatusC3 {
		if err := e.collectReferences(app); err != nil {
			return err
		}
		if err := e.selectProduct(app); err != nil {
			return err
		}
		ready, err := e.confirmDocuments(app)
		if err != nil {
			return err
		}
		if !ready {
			// Stay at C3 but keep everything answered so far, including
			// the product selection.
			if err := e.store.Upsert(app); err != nil {
				return err
			}
			e.prompter.Say("No problem. Place the documents and resume application %s when they are ready.", app.ID)
			return nil
		}
		app.Docs = documentPaths(e.docsDir, app.ID)
		app.Status = record.StatusDocsReady
		if err := e.checkpoint(app); err != nil {
			return err
		}
	}

	if app.Status == record.StatusDocsReady {
		return e.submit(app)
	}
	return nil
}

// checkpoint persists the application after a status advance.
func (e *Engine) checkpoint(app *record.Application) error {
	if err := e.store.Upsert(app); err != nil {
		return err
	}
	logging.Workflow("application %s reached %s", app.ID, app.Status)
	return nil
}

// =============================================================================
// CHECKPOINT C1 — PERSONAL INFORMATION
// =============================================================================

var (
	employmentOptions = []string{"Employed", "Self-Employed", "Business Owner", "Unemployed", "Retired"}
	maritalOptions    = []string{"Single", "Married", "Widowed", "Divorced"}
	genderOptions     = []string{"Male", "Female", "Other"}
)

func (e *Engine) collectPersonal(app *record.Application) error {
	e.prompter.Say("Step 1 of 3: personal information.")

	steps := []func() error{
		func() error {
			return e.askField("Full name", app.FullName, validate.FullName, func(v string) {
				app.FullName = validate.Capitalize(v)
			})
		},
		func() error {
			return e.askField("Father's name", app.FatherName, validate.FullName, func(v string) {
				app.FatherName = validate.Capitalize(v)
			})
		},
		func() error {
			return e.askField("Postal address", app.PostalAddress, validate.PostalAddress, func(v string) {
				app.PostalAddress = v
			})
		},
		func() error {
			return e.askField("Contact number", app.ContactNumber, validate.Phone, func(v string) {
				app.ContactNumber = v
			})
		},
		func() error {
			return e.askField("Email address", app.Email, validate.Email, func(v string) {
				app.Email = v
			})
		},
		func() error {
			return e.askField("CNIC number (13 digits, no dashes)", app.CNIC, validate.CNIC, func(v string) {
				app.CNIC = v
			})
		},
		func() error {
			return e.askField("CNIC expiry date (DD-MM-YYYY)", app.CNICExpiry, validate.ExpiryDate, func(v string) {
				app.CNICExpiry = v
			})
		},
		func() error {
			return e.askSelect("Employment status", app.EmploymentStatus, employmentOptions, func(v string) {
				app.EmploymentStatus = v
			})
		},
		func() error {
			return e.askSelect("Marital status", app.MaritalStatus, maritalOptions, func(v string) {
				app.MaritalStatus = v
			})
		},
		func() error {
			return e.askSelect("Gender", app.Gender, genderOptions, func(v string) {
				app.Gender = v
			})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	// A zero count is a valid answer, so Dependents cannot act as its own
	// presence marker; it is always asked while C1 is open.
	return e.askField("Number of dependents", "", validate.Count, func(v string) {
		app.Dependents, _ = strconv.Atoi(v)
	})
}

// =============================================================================
// CHECKPOINT C2 — FINANCIAL INFORMATION
// =============================================================================

func (e *Engine) collectFinancial(app *record.Application) error {
	e.prompter.Say("Step 2 of 3: financial information.")

	if err := e.askAmount("Annual income (PKR)", app.AnnualIncome, func(d decimal.Decimal) {
		app.AnnualIncome = d
	}); err != nil {
		return err
	}
	if err := e.askAmount("Average monthly electricity bill (PKR)", app.AvgBill, func(d decimal.Decimal) {
		app.AvgBill = d
	}); err != nil {
		return err
	}
	if err := e.askAmount("Current month's electricity bill (PKR)", app.CurrentBill, func(d decimal.Decimal) {
		app.CurrentBill = d
	}); err != nil {
		return err
	}
	return e.collectExistingLoan(app)
}

// collectExistingLoan fills the prior-loan sub-record. A "no" answer stores
// the N/A sentinel in Bank and Category so resume never re-asks the gate; a
// "yes" answer sets Has, and each sub-field then carries its own presence
// marker so a pause mid-sub-form resumes at the first unanswered field.
func (e *Engine) collectExistingLoan(app *record.Application) error {
	if app.Loan.Bank == record.NoBank {
		return nil
	}

	if !app.Loan.Has {
		has, err := e.prompter.Confirm("Do you currently have a loan with any bank?")
		if err != nil {
			return err
		}
		if !has {
			app.Loan = record.ExistingLoan{Bank: record.NoBank, Category: record.NoBank}
			return nil
		}
		app.Loan.Has = true
	}
	steps := []func() error{
		func() error {
			return e.askField("Bank holding the loan", app.Loan.Bank, validate.FullName, func(v string) {
				app.Loan.Bank = validate.Capitalize(v)
			})
		},
		func() error {
			return e.askField("Loan category (e.g. Car, Home, Personal)", app.Loan.Category, nil, func(v string) {
				app.Loan.Category = validate.Capitalize(v)
			})
		},
		func() error {
			return e.askField("Loan status (e.g. Active, Deferred)", app.Loan.Status, nil, func(v string) {
				app.Loan.Status = validate.Capitalize(v)
			})
		},
		func() error {
			return e.askAmount("Total loan amount (PKR)", app.Loan.Total, func(d decimal.Decimal) {
				app.Loan.Total = d
			})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	for {
		if err := e.askAmount("Amount returned so far (PKR)", app.Loan.Returned, func(d decimal.Decimal) {
			app.Loan.Returned = d
		}); err != nil {
			return err
		}
		if app.Loan.Returned.LessThanOrEqual(app.Loan.Total) {
			break
		}
		e.prompter.Say("Returned amount cannot exceed the total loan amount of %s.", app.Loan.Total)
		app.Loan.Returned = decimal.Zero
	}
	app.Loan.Due = app.Loan.Total.Sub(app.Loan.Returned)
	return nil
}

// =============================================================================
// CHECKPOINT C3 — REFERENCES
// =============================================================================

func (e *Engine) collectReferences(app *record.Application) error {
	if app.ReferencesComplete() {
		return nil
	}
	e.prompter.Say("Step 3 of 3: two personal references.")

	if err := e.collectReference("First reference", &app.Ref1); err != nil {
		return err
	}
	return e.collectReference("Second reference", &app.Ref2)
}

func (e *Engine) collectReference(who string, ref *record.Reference) error {
	if ref.Complete() {
		return nil
	}
	e.prompter.Say("%s:", who)

	steps := []func() error{
		func() error {
			return e.askField(who+" full name", ref.Name, validate.FullName, func(v string) {
				ref.Name = validate.Capitalize(v)
			})
		},
		func() error {
			return e.askField(who+" CNIC number", ref.CNIC, validate.CNIC, func(v string) {
				ref.CNIC = v
			})
		},
		func() error {
			return e.askField(who+" CNIC issue date (DD-MM-YYYY)", ref.IssueDate, validate.IssueDate, func(v string) {
				ref.IssueDate = v
			})
		},
		func() error {
			return e.askField(who+" contact number", ref.Phone, validate.Phone, func(v string) {
				ref.Phone = v
			})
		},
		func() error {
			return e.askField(who+" email address", ref.Email, validate.Email, func(v string) {
				ref.Email = v
			})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// PRODUCT SELECTION AND DOCUMENTS
// =============================================================================

// selectProduct walks the applicant through the loan catalog. A selection
// already on the record (a resumed C3 that got this far before) is kept.
func (e *Engine) selectProduct(app *record.Application) error {
	if app.Selected.Type != "" {
		e.prompter.ShowField("Selected product", fmt.Sprintf("%s / %s", app.Selected.Type, app.Selected.Category))
		return nil
	}
	if e.catalog.Empty() {
		e.prompter.Say("No loan products are available right now; your application will be matched to one during review.")
		return nil
	}

	types := e.catalog.Types()
	ti, err := e.prompter.Select("Which type of loan are you applying for?", types)
	if err != nil {
		return err
	}
	loanType := types[ti]

	options := e.catalog.Options(loanType)
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = fmt.Sprintf("%s — %s, %d months, financed amount %s",
			opt.Category, opt.Details, opt.Months, opt.LoanAmount())
	}
	oi, err := e.prompter.Select("Choose an option", labels)
	if err != nil {
		return err
	}
	chosen := options[oi]

	app.Selected = record.LoanSelection{
		Type:     loanType,
		Category: chosen.Category,
		Amount:   chosen.LoanAmount(),
		Months:   chosen.Months,
	}
	logging.Workflow("application %s selected %s / %s", app.ID, loanType, chosen.Category)
	return nil
}

// confirmDocuments lists the four required document paths and asks whether
// the applicant has placed them.
func (e *Engine) confirmDocuments(app *record.Application) (bool, error) {
	if err := ensureDocumentsDir(e.docsDir); err != nil {
		return false, fmt.Errorf("could not prepare documents directory: %w", err)
	}
	docs := documentPaths(e.docsDir, app.ID)

	e.prompter.Say("Please place scanned copies of the following documents:")
	e.prompter.ShowField("CNIC front", docs.CNICFront)
	e.prompter.ShowField("CNIC back", docs.CNICBack)
	e.prompter.ShowField("Electricity bill", docs.ElectricityBill)
	e.prompter.ShowField("Salary slip", docs.SalarySlip)

	return e.prompter.Confirm("Have you placed all four documents?")
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (e *Engine) submit(app *record.Application) error {
	e.summarize(app)

	ok, err := e.prompter.Confirm("Submit this application for review?")
	if err != nil {
		return err
	}
	if !ok {
		// Keep DOCS_READY so the applicant re-enters here next time.
		if err := e.store.Upsert(app); err != nil {
			return err
		}
		e.prompter.Say("Not submitted. Application %s is saved and waiting whenever you are ready.", app.ID)
		return nil
	}

	app.Status = record.StatusSubmitted
	if err := e.store.Upsert(app); err != nil {
		return err
	}
	logging.Workflow("application %s submitted", app.ID)
	e.prompter.Say("Application %s submitted for review. You will be contacted after a decision is made.", app.ID)
	return nil
}

func (e *Engine) summarize(app *record.Application) {
	e.prompter.Say("Application summary for %s:", app.ID)
	e.prompter.ShowField("Applicant", app.FullName)
	e.prompter.ShowField("CNIC", app.CNIC)
	e.prompter.ShowField("Annual income", app.AnnualIncome.String())
	if app.Selected.Type != "" {
		e.prompter.ShowField("Product", fmt.Sprintf("%s / %s, %d months", app.Selected.Type, app.Selected.Category, app.Selected.Months))
		e.prompter.ShowField("Financed amount", app.Selected.Amount.String())
	}
}

// =============================================================================
// FIELD HELPERS
// =============================================================================

// askField prompts for one field unless it already holds a value, in which
// case it is shown read-only and skipped. Invalid input re-prompts with the
// validator's message; the exit token pauses.
func (e *Engine) askField(label, current string, valid func(string) error, set func(string)) error {
	if current != "" {
		e.prompter.ShowField(label, current)
		return nil
	}
	for {
		raw, err := e.prompter.Ask(label)
		if err != nil {
			return err
		}
		if isExit(raw) {
			return ErrPaused
		}
		val := strings.TrimSpace(raw)
		if valid != nil {
			if verr := valid(val); verr != nil {
				e.prompter.Say("%v", verr)
				continue
			}
		}
		// The record file has no escaping, so the delimiter can never be
		// stored; refuse it here instead of failing the save later.
		if strings.Contains(val, record.Delimiter) {
			e.prompter.Say("Sorry, the %q character cannot be used here.", record.Delimiter)
			continue
		}
		set(val)
		return nil
	}
}

// askAmount is askField for money. A positive stored value counts as
// answered; zero re-asks, since zero cannot be told apart from never asked.
func (e *Engine) askAmount(label string, current decimal.Decimal, set func(decimal.Decimal)) error {
	if current.IsPositive() {
		e.prompter.ShowField(label, current.String())
		return nil
	}
	return e.askField(label, "", validate.Amount, func(v string) {
		d, _ := decimal.NewFromString(v)
		set(d)
	})
}

// askSelect skips an already-answered choice and otherwise presents the
// options. Menus have no exit token; pausing happens at text prompts.
func (e *Engine) askSelect(label, current string, options []string, set func(string)) error {
	if current != "" {
		e.prompter.ShowField(label, current)
		return nil
	}
	i, err := e.prompter.Select(label, options)
	if err != nil {
		return err
	}
	set(options[i])
	return nil
}
