package ingest

import (
	"strings"

	"github.com/elabz/job-ingestion/internal/approval"
	"github.com/elabz/job-ingestion/internal/models"
)

// buildView reduces a mapped record to the fields rules consume, tagged
// with the batch's detected schema. Rule-only attributes that have no
// canonical column (employment type, company type, language, structured
// country) are pulled straight from the raw record.
func buildView(raw map[string]any, rec models.CanonicalRecord, tag string) approval.View {
	view := approval.View{
		ExternalID:         rec.ExternalID,
		Title:              rec.Title,
		Description:        rec.Description(),
		SalaryMin:          rec.SalaryMin,
		EstimatedSalaryMin: rec.EstimatedSalaryMin,
		SalaryCurrency:     rec.SalaryCurrency,
		SalaryUnit:         rec.SalaryUnit,
		SchemaTag:          tag,
	}

	if loc, ok := raw["location"].(map[string]any); ok {
		if country, ok := loc["country"].(string); ok {
			view.Location.Country = strings.TrimSpace(country)
		}
	}
	if rec.PrimaryLocation != nil {
		view.Location.Text = *rec.PrimaryLocation
	}

	view.Remote = isRemote(raw, rec)
	view.EmploymentType = rawString(raw, "employment_type", "employmentType", "job_type")
	view.CompanyType = rawString(raw, "company_type", "companyType")
	view.Language = rawString(raw, "language")

	return view
}

// isRemote accepts an explicit remote boolean or a remote-valued work-type
// string.
func isRemote(raw map[string]any, rec models.CanonicalRecord) bool {
	for _, key := range []string{"remote", "is_remote"} {
		switch v := raw[key].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1", "yes", "on":
				return true
			}
		}
	}
	if rec.RemoteFlag != nil && strings.EqualFold(strings.TrimSpace(*rec.RemoteFlag), "remote") {
		return true
	}
	return false
}

func rawString(raw map[string]any, keys ...string) *string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return &trimmed
			}
		}
	}
	return nil
}
