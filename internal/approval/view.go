package approval

import (
	"strings"
)

// Location carries whatever location information survived mapping. Text
// holds a free-form display string ("Toronto, ON, Canada"); Country holds a
// structured country when the source supplied one. Either may be empty.
type Location struct {
	Text    string
	Country string
}

func (l Location) Empty() bool {
	return strings.TrimSpace(l.Text) == "" && strings.TrimSpace(l.Country) == ""
}

var (
	usTokens = map[string]bool{
		"us": true, "usa": true, "u.s.": true, "u.s.a.": true,
		"united states": true, "united states of america": true,
	}
	canadaTokens = map[string]bool{"ca": true, "canada": true}
)

func normalizeCountry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsUS reports whether the structured country resolves to the United States.
func IsUS(country string) bool {
	return usTokens[normalizeCountry(country)]
}

// IsCanada reports whether the structured country resolves to Canada.
func IsCanada(country string) bool {
	return canadaTokens[normalizeCountry(country)]
}

// ResolvedCountry returns the country this location names. For structured
// locations that is the Country field verbatim; for text locations it is the
// segment after the last comma ("Montreal, QC, Canada" -> "Canada"), or the
// whole string when no comma is present.
func (l Location) ResolvedCountry() string {
	if c := strings.TrimSpace(l.Country); c != "" {
		return c
	}
	text := strings.TrimSpace(l.Text)
	if text == "" {
		return ""
	}
	if idx := strings.LastIndex(text, ","); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return text
}

// View is the reduced evaluation record rules run against: the canonical
// fields rules consume, tagged with the batch's detected schema.
type View struct {
	ExternalID  string
	Title       string
	Description string

	SalaryMin          *float64
	EstimatedSalaryMin *float64
	SalaryCurrency     string
	SalaryUnit         string

	Location Location
	Remote   bool

	EmploymentType *string
	CompanyType    *string
	Language       *string

	SchemaTag string
}
