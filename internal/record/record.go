// Package record defines the loan application entity and the flat-file line
// codec shared by the applicant workflow, the store and the reviewer
// dashboard. The wire format is the compatibility contract between all of
// them, so the field order here is load-bearing and must not be reordered.
package record

import (
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an application. Checkpoint statuses mark
// resumable progress; the rest are terminal for the applicant workflow.
type Status string

const (
	StatusC1        Status = "C1"         // personal info in progress
	StatusC2        Status = "C2"         // financial info in progress
	StatusC3        Status = "C3"         // references in progress
	StatusDocsReady Status = "DOCS_READY" // documents confirmed, awaiting submission
	StatusSubmitted Status = "Submitted"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

// IsCheckpoint reports whether the status is a resumable in-progress stage.
// DOCS_READY is deliberately excluded: a paused DOCS_READY record resumes at
// the submission confirmation, which Lookup treats separately.
func (s Status) IsCheckpoint() bool {
	return s == StatusC1 || s == StatusC2 || s == StatusC3
}

// IsResumable reports whether a paused record with this status can be
// picked up again. DOCS_READY is resumable so an applicant who declined the
// final submission is not stranded.
func (s Status) IsResumable() bool {
	return s.IsCheckpoint() || s == StatusDocsReady
}

// IsTerminal reports whether the applicant workflow may no longer modify a
// record with this status. Approved/Rejected are set only by the reviewer.
func (s Status) IsTerminal() bool {
	return s == StatusSubmitted || s == StatusApproved || s == StatusRejected
}

// NoBank is the sentinel stored in the bank name and loan category fields
// when the applicant has no existing loan, so that a legitimately blank
// optional field cannot be mistaken for an unanswered one on resume.
const NoBank = "N/A"

// ExistingLoan is the applicant's prior-loan sub-record. When Has is false
// the text fields carry the NoBank sentinel and the amounts are zero.
type ExistingLoan struct {
	Has      bool
	Status   string
	Total    decimal.Decimal
	Returned decimal.Decimal
	Due      decimal.Decimal // invariant: Due = Total - Returned
	Bank     string
	Category string
}

// Reference is one of the two personal references collected at checkpoint C3.
type Reference struct {
	Name      string
	CNIC      string
	IssueDate string // DD-MM-YYYY, id card issue date
	Phone     string
	Email     string
}

// Complete reports whether every reference field has been collected.
func (r Reference) Complete() bool {
	return r.Name != "" && r.CNIC != "" && r.IssueDate != "" && r.Phone != "" && r.Email != ""
}

// Documents holds the four fixed file paths derived from the application id.
type Documents struct {
	CNICFront       string
	CNICBack        string
	ElectricityBill string
	SalarySlip      string
}

// LoanSelection is the chosen product. These are the four optional trailing
// fields of the wire format: records saved before a product was chosen omit
// them entirely.
type LoanSelection struct {
	Type     string
	Category string
	Amount   decimal.Decimal
	Months   int
}

// Application is one loan application attempt. One encoded line in the
// record file per application; the id is assigned once at creation and
// never changes.
type Application struct {
	ID string

	// Personal block (checkpoint C1)
	FullName         string
	FatherName       string
	PostalAddress    string
	ContactNumber    string
	Email            string
	CNIC             string
	CNICExpiry       string
	EmploymentStatus string
	MaritalStatus    string
	Gender           string
	Dependents       int

	// Financial block (checkpoint C2)
	AnnualIncome decimal.Decimal
	AvgBill      decimal.Decimal
	CurrentBill  decimal.Decimal
	Loan         ExistingLoan

	// References (checkpoint C3)
	Ref1 Reference
	Ref2 Reference

	Docs     Documents
	Status   Status
	Selected LoanSelection
}

// New returns a fresh application at checkpoint C1 with the given id.
func New(id string) *Application {
	return &Application{ID: id, Status: StatusC1}
}

// PersonalComplete reports whether every C1 field has been collected.
// Dependents is gated on Gender being present because a zero count is a
// legitimate answer and cannot serve as its own presence marker.
func (a *Application) PersonalComplete() bool {
	return a.FullName != "" && a.FatherName != "" && a.PostalAddress != "" &&
		a.ContactNumber != "" && a.Email != "" && a.CNIC != "" &&
		a.CNICExpiry != "" && a.EmploymentStatus != "" &&
		a.MaritalStatus != "" && a.Gender != ""
}

// ReferencesComplete reports whether both reference sub-records are filled,
// which lets the resume path skip checkpoint C3 entirely.
func (a *Application) ReferencesComplete() bool {
	return a.Ref1.Complete() && a.Ref2.Complete()
}
