// This file implements the lender review dashboard: listing submitted
// applications, inspecting details and recording approve/reject decisions.
package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"loanbuddy/cmd/loanbuddy/ui"
	"loanbuddy/internal/record"
	"loanbuddy/internal/store"
)

// reviewCmd is the lender-side dashboard
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Lender dashboard: inspect and decide submitted applications",
	Long: `Opens the lender review dashboard. Submitted applications can be listed,
inspected in full and approved or rejected. Decisions are final; only
applications in the Submitted state can be decided.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	styles := ui.DefaultStyles()
	if app.cfg.Theme == "dark" {
		styles = ui.NewStyles(ui.DarkTheme())
	}

	logger.Info("review dashboard opened", zap.String("data_dir", dataDir))

	for {
		var action string
		err := huh.NewSelect[string]().
			Title("Lender dashboard").
			Options(
				huh.NewOption("List pending applications", "pending"),
				huh.NewOption("List all applications", "all"),
				huh.NewOption("View application details", "details"),
				huh.NewOption("Decide an application", "decide"),
				huh.NewOption("Statistics", "stats"),
				huh.NewOption("Quit", "quit"),
			).
			Value(&action).
			Run()
		if err != nil {
			return fmt.Errorf("dashboard aborted: %w", err)
		}

		switch action {
		case "pending":
			err = listApplications(app.store, styles, true)
		case "all":
			err = listApplications(app.store, styles, false)
		case "details":
			err = viewDetails(app.store, styles)
		case "decide":
			err = decideApplication(app.store, styles)
		case "stats":
			err = printStatistics(app.store, styles)
		case "quit":
			return nil
		}
		if err != nil {
			fmt.Println(styles.Error.Render(err.Error()))
			logger.Warn("dashboard action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func listApplications(st *store.Store, styles ui.Styles, pendingOnly bool) error {
	apps, err := st.Scan(func(a *record.Application) bool {
		return !pendingOnly || a.Status == record.StatusSubmitted
	})
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println(styles.Muted.Render("No applications to show."))
		return nil
	}

	fmt.Println(styles.Bold.Render(fmt.Sprintf("%-10s %-22s %-15s %-12s %s",
		"ID", "Applicant", "CNIC", "Status", "Requested")))
	for _, a := range apps {
		requested := "-"
		if a.Selected.Type != "" {
			requested = fmt.Sprintf("%s (%s)", ui.FormatRupees(a.Selected.Amount), a.Selected.Type)
		}
		line := fmt.Sprintf("%-10s %-22s %-15s %-12s %s",
			a.ID, a.FullName, a.CNIC, a.Status, requested)
		if a.Status == record.StatusSubmitted {
			line = styles.Info.Render(line)
		}
		fmt.Println(line)
	}
	return nil
}

func viewDetails(st *store.Store, styles ui.Styles) error {
	app, err := pickApplication(st, "Which application?", nil)
	if err != nil || app == nil {
		return err
	}

	section := func(title string) { fmt.Println(styles.Title.Render(title)) }
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Printf("  %-24s %s\n", styles.Muted.Render(label), value)
	}

	section(fmt.Sprintf("Application %s [%s]", app.ID, app.Status))
	row("Full name", app.FullName)
	row("Father's name", app.FatherName)
	row("Postal address", app.PostalAddress)
	row("Contact number", app.ContactNumber)
	row("Email", app.Email)
	row("CNIC", app.CNIC)
	row("CNIC expiry", app.CNICExpiry)
	row("Employment", app.EmploymentStatus)
	row("Marital status", app.MaritalStatus)
	row("Gender", app.Gender)
	row("Dependents", fmt.Sprintf("%d", app.Dependents))

	section("Financials")
	row("Annual income", ui.FormatRupees(app.AnnualIncome))
	row("Avg electricity bill", ui.FormatRupees(app.AvgBill))
	row("Current electricity bill", ui.FormatRupees(app.CurrentBill))
	if app.Loan.Bank == record.NoBank {
		row("Existing loan", "none")
	} else if app.Loan.Bank != "" {
		row("Existing loan bank", app.Loan.Bank)
		row("Existing loan category", app.Loan.Category)
		row("Existing loan status", app.Loan.Status)
		row("Existing loan total", ui.FormatRupees(app.Loan.Total))
		row("Existing loan due", ui.FormatRupees(app.Loan.Due))
	}

	for i, ref := range []record.Reference{app.Ref1, app.Ref2} {
		section(fmt.Sprintf("Reference %d", i+1))
		row("Name", ref.Name)
		row("CNIC", ref.CNIC)
		row("CNIC issue date", ref.IssueDate)
		row("Phone", ref.Phone)
		row("Email", ref.Email)
	}

	if app.Selected.Type != "" {
		section("Requested product")
		row("Type", app.Selected.Type)
		row("Category", app.Selected.Category)
		row("Financed amount", ui.FormatRupees(app.Selected.Amount))
		row("Installments", fmt.Sprintf("%d months", app.Selected.Months))
	}

	section("Documents")
	row("CNIC front", app.Docs.CNICFront)
	row("CNIC back", app.Docs.CNICBack)
	row("Electricity bill", app.Docs.ElectricityBill)
	row("Salary slip", app.Docs.SalarySlip)
	return nil
}

func decideApplication(st *store.Store, styles ui.Styles) error {
	app, err := pickApplication(st, "Which application do you want to decide?",
		func(a *record.Application) bool { return a.Status == record.StatusSubmitted })
	if err != nil || app == nil {
		return err
	}

	var decision record.Status
	err = huh.NewSelect[record.Status]().
		Title(fmt.Sprintf("Decision for %s (%s, %s)", app.ID, app.FullName, ui.FormatRupees(app.Selected.Amount))).
		Options(
			huh.NewOption("Approve", record.StatusApproved),
			huh.NewOption("Reject", record.StatusRejected),
			huh.NewOption("Skip for now", record.Status("")),
		).
		Value(&decision).
		Run()
	if err != nil {
		return fmt.Errorf("decision aborted: %w", err)
	}
	if decision == "" {
		return nil
	}

	var confirmed bool
	if err := huh.NewConfirm().
		Title(fmt.Sprintf("Mark %s as %s? This is final.", app.ID, decision)).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run(); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if err := st.SetStatus(app.ID, decision); err != nil {
		return err
	}
	logger.Info("application decided",
		zap.String("id", app.ID),
		zap.String("decision", string(decision)))
	fmt.Println(styles.Success.Render(fmt.Sprintf("Application %s marked %s.", app.ID, decision)))
	return nil
}

func printStatistics(st *store.Store, styles ui.Styles) error {
	counts, err := st.CountByStatus("")
	if err != nil {
		return err
	}
	fmt.Println(styles.Title.Render("Application statistics"))
	fmt.Printf("  %-12s %d\n", "Total", counts.Total)
	fmt.Printf("  %-12s %d\n", "In progress", counts.Incomplete)
	fmt.Printf("  %-12s %s\n", "Submitted", styles.Info.Render(fmt.Sprintf("%d", counts.Submitted)))
	fmt.Printf("  %-12s %s\n", "Approved", styles.Success.Render(fmt.Sprintf("%d", counts.Approved)))
	fmt.Printf("  %-12s %s\n", "Rejected", styles.Error.Render(fmt.Sprintf("%d", counts.Rejected)))
	return nil
}

// pickApplication presents matching applications and returns the chosen
// one, or nil when there is nothing to pick.
func pickApplication(st *store.Store, title string, pred func(*record.Application) bool) (*record.Application, error) {
	if pred == nil {
		pred = func(*record.Application) bool { return true }
	}
	apps, err := st.Scan(pred)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		fmt.Println("Nothing to show.")
		return nil, nil
	}

	opts := make([]huh.Option[int], len(apps))
	for i, a := range apps {
		name := a.FullName
		if name == "" {
			name = "(incomplete)"
		}
		opts[i] = huh.NewOption(fmt.Sprintf("%s  %s  [%s]", a.ID, name, a.Status), i)
	}

	var idx int
	if err := huh.NewSelect[int]().Title(title).Options(opts...).Value(&idx).Run(); err != nil {
		return nil, fmt.Errorf("selection aborted: %w", err)
	}
	return apps[idx], nil
}
