package mapper

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestMapper() *Mapper {
	return New(zap.NewNop())
}

func TestMapEmptyRecordIsTotal(t *testing.T) {
	rec := newTestMapper().Map(map[string]any{})

	if rec.ExternalID == "" {
		t.Error("expected synthesized external id for empty record")
	}
	if rec.Title != "(untitled)" {
		t.Errorf("expected placeholder title, got %q", rec.Title)
	}
	if rec.SalaryCurrency != "USD" {
		t.Errorf("expected default currency USD, got %q", rec.SalaryCurrency)
	}
	if rec.SalaryUnit != "annual" {
		t.Errorf("expected default unit annual, got %q", rec.SalaryUnit)
	}
}

func TestMapTitleAliases(t *testing.T) {
	m := newTestMapper()

	cases := []struct {
		raw  map[string]any
		want string
	}{
		{map[string]any{"title": "Engineer"}, "Engineer"},
		{map[string]any{"job_title": "Analyst"}, "Analyst"},
		{map[string]any{"position": "Manager"}, "Manager"},
		{map[string]any{"title": "  Padded  "}, "Padded"},
		{map[string]any{"title": "   "}, "(untitled)"},
		{map[string]any{"title": 42}, "(untitled)"},
	}
	for _, c := range cases {
		if got := m.Map(c.raw).Title; got != c.want {
			t.Errorf("Map(%v).Title = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestMapExternalIDFromSource(t *testing.T) {
	m := newTestMapper()

	if got := m.Map(map[string]any{"jobId": "abc-1"}).ExternalID; got != "abc-1" {
		t.Errorf("ExternalID = %q, want abc-1", got)
	}
	// Numeric identifiers stringify.
	if got := m.Map(map[string]any{"id": float64(12345)}).ExternalID; got != "12345" {
		t.Errorf("ExternalID = %q, want 12345", got)
	}
}

func TestMapExternalIDSynthesis(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{"companyName": "Acme Corp", "title": "Staff Engineer"})
	if rec.ExternalID != "acme_corp_staff_engineer" {
		t.Errorf("synthesized id = %q", rec.ExternalID)
	}

	long := strings.Repeat("x", 200)
	rec = m.Map(map[string]any{"companyName": long, "title": "Role"})
	if len(rec.ExternalID) != 100 {
		t.Errorf("synthesized id length = %d, want 100", len(rec.ExternalID))
	}

	rec = m.Map(map[string]any{"title": "Solo"})
	if rec.ExternalID != "unknown_solo" {
		t.Errorf("synthesized id without company = %q", rec.ExternalID)
	}
}

func TestMapNumericExtraction(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{"salary_min": "90,000", "salary_max": float64(120000)})
	if rec.SalaryMin == nil || *rec.SalaryMin != 90000 {
		t.Errorf("SalaryMin = %v, want 90000", rec.SalaryMin)
	}
	if rec.SalaryMax == nil || *rec.SalaryMax != 120000 {
		t.Errorf("SalaryMax = %v, want 120000", rec.SalaryMax)
	}

	// Garbage degrades to absence, never an error.
	rec = m.Map(map[string]any{"salary_min": "competitive", "salary_max": []any{1}})
	if rec.SalaryMin != nil || rec.SalaryMax != nil {
		t.Errorf("expected absent salary for non-numeric values, got %v / %v", rec.SalaryMin, rec.SalaryMax)
	}
}

func TestMapBooleanVocabulary(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{"promoted": "yes", "active": "off", "marketing": true})
	if !rec.IsPromoted {
		t.Error("expected promoted=yes to map true")
	}
	if rec.IsActive {
		t.Error("expected active=off to map false")
	}
	if !rec.IsMarketing {
		t.Error("expected literal true to map true")
	}

	// Unrecognized tokens keep the default.
	rec = m.Map(map[string]any{"active": "maybe"})
	if !rec.IsActive {
		t.Error("expected unrecognized token to fall back to default true")
	}
}

func TestMapSalaryUnitAndCurrency(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{"salary_currency": "cad", "salary_unit": "Per Hour"})
	if rec.SalaryCurrency != "CAD" {
		t.Errorf("SalaryCurrency = %q, want CAD", rec.SalaryCurrency)
	}
	if rec.SalaryUnit != "hourly" {
		t.Errorf("SalaryUnit = %q, want hourly", rec.SalaryUnit)
	}

	rec = m.Map(map[string]any{"salary_unit": "yearly"})
	if rec.SalaryUnit != "annual" {
		t.Errorf("SalaryUnit = %q, want annual for unrecognized unit", rec.SalaryUnit)
	}
}

func TestMapDates(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{
		"postingDate": "2024-03-01T10:30:00Z",
		"entryDate":   "2024-03-02",
		"updateTime":  "not a date at all",
	})
	if rec.PostingDate == nil || rec.PostingDate.Day() != 1 {
		t.Errorf("PostingDate = %v", rec.PostingDate)
	}
	if rec.EntryDate == nil || rec.EntryDate.Day() != 2 {
		t.Errorf("EntryDate = %v", rec.EntryDate)
	}
	if rec.UpdateDate != nil {
		t.Errorf("expected unparsable date to be absent, got %v", rec.UpdateDate)
	}
}

func TestMapLocationSources(t *testing.T) {
	m := newTestMapper()

	// Flat string wins.
	rec := m.Map(map[string]any{"location": "Austin, TX, USA"})
	if rec.PrimaryLocation == nil || *rec.PrimaryLocation != "Austin, TX, USA" {
		t.Errorf("PrimaryLocation = %v", rec.PrimaryLocation)
	}

	// Locations array with nested coords.
	rec = m.Map(map[string]any{
		"locations": []any{
			map[string]any{
				"text":   "Seattle, WA",
				"coords": map[string]any{"latitude": 47.6, "longitude": -122.3},
			},
		},
	})
	if rec.PrimaryLocation == nil || *rec.PrimaryLocation != "Seattle, WA" {
		t.Errorf("PrimaryLocation = %v", rec.PrimaryLocation)
	}
	if rec.Latitude == nil || *rec.Latitude != 47.6 {
		t.Errorf("Latitude = %v", rec.Latitude)
	}
	if rec.LocationsData == nil {
		t.Error("expected locations array preserved in overflow bucket")
	}

	// Top-level coordinates as a fallback.
	rec = m.Map(map[string]any{
		"coordinates": map[string]any{"latitude": 43.7, "longitude": -79.4},
	})
	if rec.Longitude == nil || *rec.Longitude != -79.4 {
		t.Errorf("Longitude = %v", rec.Longitude)
	}
	if rec.PrimaryLocation != nil {
		t.Error("coordinates alone should not produce a primary location")
	}
}

func TestMapOverflowMetadata(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{
		"collapseKey":        "ck-1",
		"jobStatus":          "open",
		"unrelatedKey":       "dropped",
		"questions":          []any{"q1"},
		"candidateResidency": map[string]any{"us": true},
	})

	if rec.CollapseKey == nil || *rec.CollapseKey != "ck-1" {
		t.Errorf("CollapseKey = %v", rec.CollapseKey)
	}
	if rec.AdditionalMetadata == nil {
		t.Fatal("expected additional metadata bucket")
	}
	if rec.AdditionalMetadata["jobStatus"] != "open" {
		t.Errorf("metadata = %v", rec.AdditionalMetadata)
	}
	if _, ok := rec.AdditionalMetadata["unrelatedKey"]; ok {
		t.Error("keys outside the allow-list must be dropped")
	}
	if rec.Questions == nil || rec.CandidateResidency == nil {
		t.Error("expected questions and residency overflow preserved")
	}
}

func TestMapDescriptions(t *testing.T) {
	m := newTestMapper()

	rec := m.Map(map[string]any{
		"summary":     "short text",
		"description": "much longer full text",
	})
	if rec.ShortDescription == nil || *rec.ShortDescription != "short text" {
		t.Errorf("ShortDescription = %v", rec.ShortDescription)
	}
	if rec.FullDescription == nil || *rec.FullDescription != "much longer full text" {
		t.Errorf("FullDescription = %v", rec.FullDescription)
	}
	if rec.Description() != "short text" {
		t.Errorf("Description() = %q, want the short variant", rec.Description())
	}
}
