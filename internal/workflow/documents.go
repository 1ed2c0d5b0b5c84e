package workflow

import (
	"os"
	"path/filepath"

	"loanbuddy/internal/record"
)

// Document file names are derived from the application id so every
// application has four fixed, predictable paths. The reviewer tool relies
// on the same naming.
func documentPaths(dir, id string) record.Documents {
	return record.Documents{
		CNICFront:       filepath.Join(dir, id+"_cnic_front.jpg"),
		CNICBack:        filepath.Join(dir, id+"_cnic_back.jpg"),
		ElectricityBill: filepath.Join(dir, id+"_electricity_bill.jpg"),
		SalarySlip:      filepath.Join(dir, id+"_salary_slip.jpg"),
	}
}

// ensureDocumentsDir creates the documents directory if needed so the
// applicant has somewhere to place the files.
func ensureDocumentsDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
