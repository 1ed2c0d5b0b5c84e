package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeCatalog(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write catalog %s: %v", name, err)
	}
}

func TestLoadFileBasicRows(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "home_loans.txt", `Category#Details#Months#Price#DownPayment
5 Marla#Single storey house#60#4500000#500000
10 Marla#Double storey house#120#9000000#1000000
bad row with too few fields
1 Kanal#Corner house#120#notanumber#2000000
`)

	options, err := LoadFile(filepath.Join(dir, "home_loans.txt"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2 (malformed rows dropped)", len(options))
	}

	opt := options[0]
	if opt.Category != "5 Marla" || opt.Months != 60 {
		t.Fatalf("options[0] = %+v, want 5 Marla / 60 months", opt)
	}
	if want := decimal.NewFromInt(4000000); !opt.LoanAmount().Equal(want) {
		t.Fatalf("LoanAmount() = %s, want %s (price minus down payment)", opt.LoanAmount(), want)
	}
}

func TestLoadFileVehicleRows(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "car_loans.txt", `Category#Make#Model#Engine#Condition#Year#Months#Price#DownPayment
Hatchback#Suzuki#Alto#660cc#New#2025#48#3200000#640000
`)

	options, err := LoadFile(filepath.Join(dir, "car_loans.txt"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("len(options) = %d, want 1", len(options))
	}

	opt := options[0]
	if opt.Make != "Suzuki" || opt.Model != "Alto" || opt.Year != "2025" {
		t.Fatalf("vehicle fields = %+v", opt)
	}
	if opt.Details != "Suzuki Alto 2025" {
		t.Fatalf("Details = %q, want derived make/model/year", opt.Details)
	}
	if want := decimal.NewFromInt(2560000); !opt.LoanAmount().Equal(want) {
		t.Fatalf("LoanAmount() = %s, want %s", opt.LoanAmount(), want)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "home_loans.txt", `Category#Details#Months#Price#DownPayment
5 Marla#Single storey#60#4500000#500000
`)
	writeCatalog(t, dir, "car_loans.txt", `Category#Make#Model#Engine#Condition#Year#Months#Price#DownPayment
Sedan#Honda#City#1500cc#New#2025#60#5500000#1100000
`)
	writeCatalog(t, dir, "notes.md", "ignored, not a price list")

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	types := c.Types()
	if len(types) != 2 {
		t.Fatalf("Types() = %v, want 2 loan types", types)
	}
	// Files load in sorted order.
	if types[0] != "Car Loans" || types[1] != "Home Loans" {
		t.Fatalf("Types() = %v, want [Car Loans Home Loans]", types)
	}
	if opts := c.Options("Home Loans"); len(opts) != 1 {
		t.Fatalf("Options(Home Loans) = %d options, want 1", len(opts))
	}
	if c.Options("No Such Type") != nil {
		t.Fatal("Options(unknown) should be nil")
	}
}

func TestLoadDirMissing(t *testing.T) {
	c, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("LoadDir(missing) error: %v, want graceful empty catalog", err)
	}
	if !c.Empty() {
		t.Fatal("Empty() = false, want true for missing directory")
	}
}
