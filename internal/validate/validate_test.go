package validate

import (
	"strings"
	"testing"
)

func TestCNIC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"thirteen digits", "1234567890123", true},
		{"twelve digits", "123456789012", false},
		{"fourteen digits", "12345678901234", false},
		{"letter inside", "12345678901a3", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CNIC(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("CNIC(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"eleven digits", "03001234567", true},
		{"ten digits", "3001234567", true},
		{"formatted", "0300-123-4567", true},
		{"international prefix", "+92 300 1234567", false}, // 12 digits
		{"nine digits", "300123456", false},
		{"twelve digits", "030012345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Phone(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("Phone(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"minimal valid", "a@b.co", true},
		{"typical", "ali.khan_1@mail-host.com.pk", true},
		{"too short", "a@b.", false},
		{"double at", "a@@b.co", false},
		{"dot right after at", "a@.co", false},
		{"double dot", "a@b..co", false},
		{"at first", "@ab.co", false},
		{"at last", "abcde@", false},
		{"no dot after at", "ab@coco", false},
		{"trailing dot", "ab@co.co.", false},
		{"bad local char", "a!b@co.co", false},
		{"bad domain char", "ab@c_o.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("Email(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

// Each email rule must produce its own message so the re-prompt tells the
// applicant exactly what to fix.
func TestEmailDistinctMessages(t *testing.T) {
	inputs := []string{"a@b.", "a@.co", "a@b..co", "ab@coco", "abc@co."}
	seen := map[string]string{}
	for _, in := range inputs {
		err := Email(in)
		if err == nil {
			t.Fatalf("Email(%q) = nil, want error", in)
		}
		if prev, dup := seen[err.Error()]; dup {
			t.Fatalf("Email(%q) and Email(%q) share message %q", in, prev, err.Error())
		}
		seen[err.Error()] = in
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"two words", "ali khan", true},
		{"three words", "Muhammad Ali Khan", true},
		{"single word", "ali", false},
		{"digit inside", "ali khan2", false},
		{"doubled space", "ali  khan", false},
		{"empty", "", false},
		{"punctuation", "ali khan.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FullName(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("FullName(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestPostalAddress(t *testing.T) {
	long := strings.Repeat("a", 201)
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"typical", "House 12, Street 4, G-9/1 Islamabad", true},
		{"with hash", "Flat #3, Block B, Gulberg", true},
		{"too short", "House 12", false},
		{"too long", long, false},
		{"digits only", "1234567890", false},
		{"doubled space", "House 12,  Street 4 Lahore", false},
		{"leading space", " House 12, Street 4 Lahore", false},
		{"trailing space", "House 12, Street 4 Lahore ", false},
		{"invalid char", "House 12 @ Street 4 Lahore", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PostalAddress(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("PostalAddress(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestDates(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		input string
		valid bool
	}{
		{"leap day accepted", ExpiryDate, "29-02-2024", true},
		{"non-leap rejected", ExpiryDate, "29-02-2023", false},
		{"century non-leap", IssueDate, "29-02-1900", false},
		{"quadricentennial leap", IssueDate, "29-02-2000", true},
		{"day zero", ExpiryDate, "00-01-2024", false},
		{"month thirteen", ExpiryDate, "01-13-2024", false},
		{"thirty-one in april", ExpiryDate, "31-04-2024", false},
		{"issue year floor", IssueDate, "01-01-1950", true},
		{"issue year below floor", IssueDate, "31-12-1949", false},
		{"issue year above cap", IssueDate, "01-01-2026", false},
		{"expiry year cap", ExpiryDate, "31-12-2050", true},
		{"expiry year below floor", ExpiryDate, "31-12-2019", false},
		{"wrong separators", ExpiryDate, "29/02/2024", false},
		{"too short", ExpiryDate, "1-2-2024", false},
		{"letters", ExpiryDate, "aa-bb-cccc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("date(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain digits", "1000", true},
		{"zero", "0", true},
		{"comma", "1,000", false},
		{"decimal point", "1000.50", false},
		{"empty", "", false},
		{"negative", "-1000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Amount(tt.input)
			if (err == nil) != tt.valid {
				t.Fatalf("Amount(%q) = %v, want valid=%v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ali khan", "Ali Khan"},
		{"MUHAMMAD ALI", "Muhammad Ali"},
		{"mIxEd cAsE nAme", "Mixed Case Name"},
		{"single", "Single"},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
