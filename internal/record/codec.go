package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Delimiter joins the fields of an encoded record line. The format has no
// escaping mechanism, so Encode refuses any field value containing it
// instead of silently corrupting the line (format v1 keeps the original
// layout; corruption is surfaced as a save error rather than written out).
const Delimiter = "#"

// Field counts of the wire format. The trailing four fields carry the loan
// selection and are optional: records saved before a product was chosen
// have only the leading 37.
const (
	MandatoryFields = 37
	TotalFields     = 41
)

// ErrShortLine is returned by Decode for lines with fewer than the
// mandatory field count. The store counts these rather than failing a load.
var ErrShortLine = fmt.Errorf("record line has fewer than %d fields", MandatoryFields)

// Encode renders an application as one delimiter-joined line in the fixed
// 41-field order. It fails if any field value embeds the delimiter or a
// newline, since either would corrupt the record file.
func Encode(a *Application) (string, error) {
	fields := []string{
		a.ID,
		a.FullName,
		a.FatherName,
		a.PostalAddress,
		a.ContactNumber,
		a.Email,
		a.CNIC,
		a.CNICExpiry,
		a.EmploymentStatus,
		a.MaritalStatus,
		a.Gender,
		strconv.Itoa(a.Dependents),
		a.AnnualIncome.String(),
		a.AvgBill.String(),
		a.CurrentBill.String(),
		encodeBool(a.Loan.Has),
		a.Loan.Status,
		a.Loan.Total.String(),
		a.Loan.Returned.String(),
		a.Loan.Due.String(),
		a.Loan.Bank,
		a.Loan.Category,
		a.Ref1.Name,
		a.Ref1.CNIC,
		a.Ref1.IssueDate,
		a.Ref1.Phone,
		a.Ref1.Email,
		a.Ref2.Name,
		a.Ref2.CNIC,
		a.Ref2.IssueDate,
		a.Ref2.Phone,
		a.Ref2.Email,
		a.Docs.CNICFront,
		a.Docs.CNICBack,
		a.Docs.ElectricityBill,
		a.Docs.SalarySlip,
		string(a.Status),
		a.Selected.Type,
		a.Selected.Category,
		a.Selected.Amount.String(),
		strconv.Itoa(a.Selected.Months),
	}

	for i, f := range fields {
		if strings.Contains(f, Delimiter) {
			return "", fmt.Errorf("field %d value %q contains the record delimiter", i, f)
		}
		if strings.ContainsAny(f, "\r\n") {
			return "", fmt.Errorf("field %d value %q contains a newline", i, f)
		}
	}
	return strings.Join(fields, Delimiter), nil
}

// Decode parses one record line. Lines need at least the 37 mandatory
// fields; the optional loan-selection tail defaults to empty/zero when
// absent. Numeric fields parse leniently, with garbage reading as zero,
// matching how existing record files were written.
func Decode(line string) (*Application, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) < MandatoryFields {
		return nil, ErrShortLine
	}

	a := &Application{
		ID:               parts[0],
		FullName:         parts[1],
		FatherName:       parts[2],
		PostalAddress:    parts[3],
		ContactNumber:    parts[4],
		Email:            parts[5],
		CNIC:             parts[6],
		CNICExpiry:       parts[7],
		EmploymentStatus: parts[8],
		MaritalStatus:    parts[9],
		Gender:           parts[10],
		Dependents:       decodeInt(parts[11]),
		AnnualIncome:     decodeDecimal(parts[12]),
		AvgBill:          decodeDecimal(parts[13]),
		CurrentBill:      decodeDecimal(parts[14]),
		Loan: ExistingLoan{
			Has:      parts[15] == "Yes",
			Status:   parts[16],
			Total:    decodeDecimal(parts[17]),
			Returned: decodeDecimal(parts[18]),
			Due:      decodeDecimal(parts[19]),
			Bank:     parts[20],
			Category: parts[21],
		},
		Ref1: Reference{
			Name:      parts[22],
			CNIC:      parts[23],
			IssueDate: parts[24],
			Phone:     parts[25],
			Email:     parts[26],
		},
		Ref2: Reference{
			Name:      parts[27],
			CNIC:      parts[28],
			IssueDate: parts[29],
			Phone:     parts[30],
			Email:     parts[31],
		},
		Docs: Documents{
			CNICFront:       parts[32],
			CNICBack:        parts[33],
			ElectricityBill: parts[34],
			SalarySlip:      parts[35],
		},
		Status: Status(parts[36]),
	}

	if len(parts) > 37 {
		a.Selected.Type = parts[37]
	}
	if len(parts) > 38 {
		a.Selected.Category = parts[38]
	}
	if len(parts) > 39 {
		a.Selected.Amount = decodeDecimal(parts[39])
	}
	if len(parts) > 40 {
		a.Selected.Months = decodeInt(parts[40])
	}
	return a, nil
}

func encodeBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func decodeInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func decodeDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
