// Package catalog loads the static loan price lists consumed by the
// applicant workflow when a loan product is chosen. Catalog files are owned
// by an external process; this package only reads them. A missing catalog
// degrades to an empty option set rather than an error so the rest of the
// chat keeps working.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loanbuddy/internal/logging"
)

// Field delimiter of catalog rows, shared with the record file format.
const delimiter = "#"

// Row widths. Basic rows carry category/details/months/price/downPayment;
// vehicle rows replace the details field with make/model/engine/condition/
// year.
const (
	basicFields   = 5
	vehicleFields = 9
)

// Option is one priced loan choice within a loan type.
type Option struct {
	Category    string
	Details     string
	Months      int
	Price       decimal.Decimal
	DownPayment decimal.Decimal

	// Vehicle-only attributes; empty for basic options.
	Make      string
	Model     string
	Engine    string
	Condition string
	Year      string
}

// LoanAmount is the financed amount for this option: price minus down
// payment.
func (o Option) LoanAmount() decimal.Decimal {
	return o.Price.Sub(o.DownPayment)
}

// LoanType groups the options of one catalog file, e.g. "Home Loan".
type LoanType struct {
	Name    string
	Options []Option
}

// Catalog is the full read-only option set available to the workflow.
type Catalog struct {
	types []LoanType
}

// Types returns the loan type names in stable order.
func (c *Catalog) Types() []string {
	names := make([]string, len(c.types))
	for i, t := range c.types {
		names[i] = t.Name
	}
	return names
}

// Options returns the options of the named loan type, or nil.
func (c *Catalog) Options(name string) []Option {
	for _, t := range c.types {
		if t.Name == name {
			return t.Options
		}
	}
	return nil
}

// Empty reports whether no catalog files were found.
func (c *Catalog) Empty() bool {
	return len(c.types) == 0
}

// LoadDir reads every .txt price list in dir. The loan type name is derived
// from the file name ("home_loans.txt" becomes "Home Loans"). A missing or
// empty directory yields an empty catalog.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Catalog("no catalog directory at %s, no loan products available", dir)
			return &Catalog{}, nil
		}
		return nil, err
	}

	c := &Catalog{}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		options, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			logging.Catalog("skipping unreadable catalog %s: %v", name, err)
			continue
		}
		if len(options) == 0 {
			continue
		}
		c.types = append(c.types, LoanType{Name: typeName(name), Options: options})
	}
	logging.Catalog("loaded %d loan type(s) from %s", len(c.types), dir)
	return c, nil
}

// LoadFile parses one price list. The header line is skipped; rows that are
// neither basic nor vehicle shaped, or whose numeric fields do not parse,
// are dropped.
func LoadFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var options []Option
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 || line == "" {
			continue // header or blank
		}
		opt, ok := parseRow(line)
		if !ok {
			logging.Catalog("dropping malformed catalog row in %s: %q", filepath.Base(path), line)
			continue
		}
		options = append(options, opt)
	}
	return options, nil
}

func parseRow(line string) (Option, bool) {
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case basicFields:
		months, price, down, ok := parseNumbers(parts[2], parts[3], parts[4])
		if !ok {
			return Option{}, false
		}
		return Option{
			Category:    parts[0],
			Details:     parts[1],
			Months:      months,
			Price:       price,
			DownPayment: down,
		}, true
	case vehicleFields:
		months, price, down, ok := parseNumbers(parts[6], parts[7], parts[8])
		if !ok {
			return Option{}, false
		}
		return Option{
			Category:    parts[0],
			Make:        parts[1],
			Model:       parts[2],
			Engine:      parts[3],
			Condition:   parts[4],
			Year:        parts[5],
			Details:     parts[1] + " " + parts[2] + " " + parts[5],
			Months:      months,
			Price:       price,
			DownPayment: down,
		}, true
	}
	return Option{}, false
}

func parseNumbers(monthsStr, priceStr, downStr string) (int, decimal.Decimal, decimal.Decimal, bool) {
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return 0, decimal.Zero, decimal.Zero, false
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return 0, decimal.Zero, decimal.Zero, false
	}
	down, err := decimal.NewFromString(downStr)
	if err != nil {
		return 0, decimal.Zero, decimal.Zero, false
	}
	return months, price, down, true
}

// typeName turns "home_loans.txt" into "Home Loans".
func typeName(filename string) string {
	base := strings.TrimSuffix(filename, ".txt")
	words := strings.Split(strings.ReplaceAll(base, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
