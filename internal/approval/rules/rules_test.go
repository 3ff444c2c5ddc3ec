package rules

import (
	"strings"
	"testing"

	"github.com/elabz/job-ingestion/internal/approval"
	"github.com/elabz/job-ingestion/internal/models"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func longDescription() string { return strings.Repeat("responsibilities ", 5) }

func TestContentRule(t *testing.T) {
	rule := Content(DefaultConfig())

	cases := []struct {
		name       string
		view       approval.View
		wantOK     bool
		wantReason string
	}{
		{"valid", approval.View{Title: "Engineer", Description: longDescription()}, true, ""},
		{"missing title", approval.View{Title: "   ", Description: longDescription()}, false, "Missing or empty title"},
		{"short description", approval.View{Title: "Engineer", Description: "too short"}, false, "Description too short (< 20)"},
		{"boundary length", approval.View{Title: "Engineer", Description: strings.Repeat("x", 20)}, true, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, reason := rule.Evaluate(c.view)
			if ok != c.wantOK || reason != c.wantReason {
				t.Errorf("got (%v, %q), want (%v, %q)", ok, reason, c.wantOK, c.wantReason)
			}
		})
	}
}

func TestLocationPresenceRule(t *testing.T) {
	rule := LocationPresence()

	if ok, _ := rule.Evaluate(approval.View{Remote: true}); !ok {
		t.Error("remote record must pass without a location")
	}
	if ok, _ := rule.Evaluate(approval.View{Location: approval.Location{Text: "Denver, CO"}}); !ok {
		t.Error("text location must pass")
	}
	ok, reason := rule.Evaluate(approval.View{})
	if ok || reason != "Missing location information" {
		t.Errorf("got (%v, %q)", ok, reason)
	}
}

func TestGeographyRule(t *testing.T) {
	rule := Geography()

	cases := []struct {
		name       string
		view       approval.View
		wantOK     bool
		wantReason string
	}{
		{"remote overrides location", approval.View{Remote: true, Location: approval.Location{Text: "London, UK"}}, true, ""},
		{"structured canada", approval.View{Location: approval.Location{Country: "Canada"}}, true, ""},
		{"structured us", approval.View{Location: approval.Location{Country: "United States"}}, true, ""},
		{
			"structured country rejected",
			approval.View{Location: approval.Location{Country: "Germany"}},
			false, "Job location must be in US/Canada or remote, got: Germany",
		},
		{"text resolves to canada", approval.View{Location: approval.Location{Text: "Montreal, QC, Canada"}}, true, ""},
		{"text resolves to us", approval.View{Location: approval.Location{Text: "Austin, TX, USA"}}, true, ""},
		{
			"text country unrecognized",
			approval.View{Location: approval.Location{Text: "Paris, France"}},
			false, "Unable to determine country from location: Paris, France",
		},
		{
			"bare city unrecognized",
			approval.View{Location: approval.Location{Text: "Springfield"}},
			false, "Unable to determine country from location: Springfield",
		},
		{"empty location", approval.View{}, false, "Missing location information"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, reason := rule.Evaluate(c.view)
			if ok != c.wantOK || reason != c.wantReason {
				t.Errorf("got (%v, %q), want (%v, %q)", ok, reason, c.wantOK, c.wantReason)
			}
		})
	}
}

func TestSalaryRule(t *testing.T) {
	rule := Salary(DefaultConfig())

	cases := []struct {
		name       string
		view       approval.View
		wantOK     bool
		wantReason string
	}{
		{
			"annual at threshold",
			approval.View{SalaryMin: numPtr(100_000), SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitAnnual},
			true, "",
		},
		{
			"annual below threshold",
			approval.View{SalaryMin: numPtr(80_000), SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitAnnual},
			false, "Annual salary below $100000 USD (found: $80000 USD)",
		},
		{
			"hourly above threshold",
			approval.View{SalaryMin: numPtr(65), SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitHourly},
			true, "",
		},
		{
			"hourly below threshold",
			approval.View{SalaryMin: numPtr(30), SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitHourly},
			false, "Hourly rate below $45/hour USD (found: $30.00/hour USD)",
		},
		{
			"no salary at all",
			approval.View{SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitAnnual},
			false, "No valid salary information found",
		},
		{
			"zero salary",
			approval.View{SalaryMin: numPtr(0), SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitAnnual},
			false, "No valid salary information found",
		},
		{
			"estimated fallback",
			approval.View{EstimatedSalaryMin: numPtr(120_000), SalaryCurrency: "USD", SalaryUnit: models.SalaryUnitAnnual},
			true, "",
		},
		{
			// 140000 CAD * 0.74 = 103600 USD, clears the floor.
			"cad conversion passes",
			approval.View{SalaryMin: numPtr(140_000), SalaryCurrency: "CAD", SalaryUnit: models.SalaryUnitAnnual},
			true, "",
		},
		{
			// 120000 CAD * 0.74 = 88800 USD, short of the floor.
			"cad conversion fails",
			approval.View{SalaryMin: numPtr(120_000), SalaryCurrency: "CAD", SalaryUnit: models.SalaryUnitAnnual},
			false, "Annual salary below $100000 USD (found: $88800 USD)",
		},
		{
			"unknown currency uses 1.0",
			approval.View{SalaryMin: numPtr(100_000), SalaryCurrency: "JPY", SalaryUnit: models.SalaryUnitAnnual},
			true, "",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, reason := rule.Evaluate(c.view)
			if ok != c.wantOK || reason != c.wantReason {
				t.Errorf("got (%v, %q), want (%v, %q)", ok, reason, c.wantOK, c.wantReason)
			}
		})
	}
}

func TestEmploymentTypeRule(t *testing.T) {
	rule := EmploymentType()

	cases := []struct {
		name       string
		view       approval.View
		wantOK     bool
		wantReason string
	}{
		{"full-time hyphenated", approval.View{EmploymentType: strPtr("Full-Time")}, true, ""},
		{"full time spaced", approval.View{EmploymentType: strPtr("full time")}, true, ""},
		{"fulltime joined", approval.View{EmploymentType: strPtr("FULLTIME")}, true, ""},
		{"absent", approval.View{}, false, "Job must be a full-time position, got: None"},
		{"contract", approval.View{EmploymentType: strPtr("Contract")}, false, "Job must be a full-time position, got: Contract"},
		{"part-time", approval.View{EmploymentType: strPtr("part-time")}, false, "Job must be a full-time position, got: part-time"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, reason := rule.Evaluate(c.view)
			if ok != c.wantOK || reason != c.wantReason {
				t.Errorf("got (%v, %q), want (%v, %q)", ok, reason, c.wantOK, c.wantReason)
			}
		})
	}
}

func TestCompanyTypeRule(t *testing.T) {
	rule := CompanyType()

	if ok, _ := rule.Evaluate(approval.View{}); !ok {
		t.Error("absent company type must be neutral")
	}
	if ok, _ := rule.Evaluate(approval.View{CompanyType: strPtr("Direct Employer")}); !ok {
		t.Error("direct employer must pass")
	}
	ok, reason := rule.Evaluate(approval.View{CompanyType: strPtr("Staffing Firm")})
	if ok || reason != "Job must not be from a staffing firm, got: Staffing Firm" {
		t.Errorf("got (%v, %q)", ok, reason)
	}
	if ok, _ := rule.Evaluate(approval.View{CompanyType: strPtr("recruitment agency")}); ok {
		t.Error("recruitment agency must be rejected")
	}
}

func TestLanguageRule(t *testing.T) {
	rule := Language()

	cases := []struct {
		name       string
		view       approval.View
		wantOK     bool
		wantReason string
	}{
		{"english anywhere", approval.View{Language: strPtr("English"), Location: approval.Location{Text: "Berlin, Germany"}}, true, ""},
		{"en code", approval.View{Language: strPtr("en")}, true, ""},
		{"french in canada", approval.View{Language: strPtr("French"), Location: approval.Location{Country: "Canada"}}, true, ""},
		{"fr code in canada", approval.View{Language: strPtr("fr"), Location: approval.Location{Text: "Quebec City, Canada"}}, true, ""},
		{
			"french outside canada",
			approval.View{Language: strPtr("French"), Location: approval.Location{Country: "USA"}},
			false, "French language is only accepted for jobs in Canada, job location: USA",
		},
		{"absent language", approval.View{}, false, "Job must specify a language"},
		{"blank language", approval.View{Language: strPtr("  ")}, false, "Job must specify a language"},
		{
			"unsupported language",
			approval.View{Language: strPtr("German"), Location: approval.Location{Country: "Canada"}},
			false, "Job must be in English (or French if in Canada), got: German",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, reason := rule.Evaluate(c.view)
			if ok != c.wantOK || reason != c.wantReason {
				t.Errorf("got (%v, %q), want (%v, %q)", ok, reason, c.wantOK, c.wantReason)
			}
		})
	}
}

func TestDefaultSetOrder(t *testing.T) {
	set := Default(DefaultConfig())
	if len(set) != 7 {
		t.Fatalf("expected 7 rules, got %d", len(set))
	}
	for i, r := range set {
		if r == nil {
			t.Errorf("rule %d is nil", i)
		}
	}
}
