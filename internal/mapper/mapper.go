package mapper

import (
	"strings"

	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/models"
)

const untitledPlaceholder = "(untitled)"

// externalIDMaxLen caps synthesized IDs so they stay indexable.
const externalIDMaxLen = 100

// Mapper converts raw job records of unknown shape into canonical records.
// Mapping is total: malformed values degrade to defaults or absence, never
// to a failure.
type Mapper struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// Map normalizes one raw record. For every canonical attribute an ordered
// list of alias keys is tried against the raw record; the first non-empty
// match wins.
func (m *Mapper) Map(raw map[string]any) models.CanonicalRecord {
	rec := models.CanonicalRecord{
		ExternalID: m.externalID(raw),
		Title:      m.title(raw),

		ShortDescription: getString(raw, "shortDescription", "summary", "short_desc"),
		FullDescription:  getString(raw, "fullDescription", "description", "details", "full_desc"),
	}

	m.mapSalary(raw, &rec)
	m.mapCompany(raw, &rec)
	m.mapLocation(raw, &rec)
	m.mapExperience(raw, &rec)
	m.mapDates(raw, &rec)
	m.mapURLs(raw, &rec)
	m.mapFlags(raw, &rec)
	m.mapOverflow(raw, &rec)

	return rec
}

func (m *Mapper) mapSalary(raw map[string]any, rec *models.CanonicalRecord) {
	rec.SalaryMin = getNumeric(raw, "lowerBand", "compensationMin", "salary_min", "min_salary")
	rec.SalaryMax = getNumeric(raw, "upperBand", "compensationMax", "salary_max", "max_salary")
	rec.EstimatedSalaryMin = getNumeric(raw, "estimatedLowerBand", "estimated_min")
	rec.EstimatedSalaryMax = getNumeric(raw, "estimatedUpperBand", "estimated_max")
	rec.BaseSalary = getString(raw, "baseSalary", "base_salary", "salary_range")
	rec.IsSalaryEstimate = getBool(raw, nil, "isLaddersEstimate", "is_estimate")
	rec.IsSalaryConfidential = getBool(raw, nil, "salaryIsConfidential", "salary_confidential")

	rec.SalaryCurrency = "USD"
	if cur := getString(raw, "salaryCurrency", "salary_currency", "currency"); cur != nil {
		rec.SalaryCurrency = strings.ToUpper(*cur)
	}

	rec.SalaryUnit = models.SalaryUnitAnnual
	if unit := getString(raw, "salaryUnit", "salary_unit", "pay_period"); unit != nil {
		switch strings.ToLower(strings.TrimSpace(*unit)) {
		case "hourly", "hour", "per hour":
			rec.SalaryUnit = models.SalaryUnitHourly
		}
	}
}

func (m *Mapper) mapCompany(raw map[string]any, rec *models.CanonicalRecord) {
	rec.CompanyName = getString(raw, "companyName", "company", "employer", "organization")
	rec.IsCompanyConfidential = getBool(raw, nil, "companyIsConfidential", "company_confidential")
}

// mapLocation tries, in order: a flat string field, the first element of a
// locations array (with nested coords), and a top-level coordinates object.
// The first populated source wins; there is no merging across sources.
func (m *Mapper) mapLocation(raw map[string]any, rec *models.CanonicalRecord) {
	if loc, ok := raw["location"].(string); ok && strings.TrimSpace(loc) != "" {
		trimmed := strings.TrimSpace(loc)
		rec.PrimaryLocation = &trimmed
	} else if locations, ok := raw["locations"].([]any); ok && len(locations) > 0 {
		if first, ok := locations[0].(map[string]any); ok {
			if text, ok := first["text"].(string); ok && strings.TrimSpace(text) != "" {
				trimmed := strings.TrimSpace(text)
				rec.PrimaryLocation = &trimmed
			}
			if coords, ok := first["coords"].(map[string]any); ok {
				rec.Latitude = numericValue(coords["latitude"])
				rec.Longitude = numericValue(coords["longitude"])
			}
		}
	}

	if rec.Latitude == nil || rec.Longitude == nil {
		if coords, ok := raw["coordinates"].(map[string]any); ok {
			rec.Latitude = numericValue(coords["latitude"])
			rec.Longitude = numericValue(coords["longitude"])
		}
	}

	rec.Zipcode = getString(raw, "zipcode", "zip", "postal_code")
	rec.County = getString(raw, "county", "region")
}

func (m *Mapper) mapExperience(raw map[string]any, rec *models.CanonicalRecord) {
	rec.YearsExperience = getString(raw, "yearsExperience", "experience", "experience_level")
	rec.YearsExperienceID = getInt(raw, "yearsExperienceId", "experience_id")
	rec.IndustryName = getString(raw, "industryName", "industry", "sector")
	rec.IndustryID = getInt(raw, "industryId", "industry_id")
	rec.JobTypeID = getInt(raw, "jobTypeId", "job_type_id", "type_id")
	rec.RemoteFlag = getString(raw, "remoteFlag", "remote", "work_type")
}

func (m *Mapper) mapDates(raw map[string]any, rec *models.CanonicalRecord) {
	rec.PostingDate = m.parseDate(raw["postingDate"])
	rec.EntryDate = m.parseDate(raw["entryDate"])
	rec.UpdateDate = m.parseDate(raw["updateTime"])
}

func (m *Mapper) mapURLs(raw map[string]any, rec *models.CanonicalRecord) {
	rec.ExternalApplicationURL = getString(raw, "externalApplicationUrl", "apply_url", "application_url")
	rec.SEOJobLink = getString(raw, "seoJobLink", "job_url", "permalink")
	rec.SEOLocation = getString(raw, "seoLocation", "location_slug")
}

func (m *Mapper) mapFlags(raw map[string]any, rec *models.CanonicalRecord) {
	rec.IsActive = boolOrDefault(raw, true, "active", "is_active")
	rec.AllowsExternalApply = boolOrDefault(raw, true, "allowExternalApply", "external_apply")
	rec.IsPromoted = boolOrDefault(raw, false, "promoted", "is_promoted")
	rec.IsFeatured = boolOrDefault(raw, false, "currentlyFeatured", "featured", "is_featured")
	rec.IsMarketing = boolOrDefault(raw, false, "marketing", "is_marketing")
	rec.RecruiterAnonymous = boolOrDefault(raw, false, "recruiterAnonymous", "anonymous")
	rec.Score = getNumeric(raw, "score", "relevance_score")
}

// metadataAllowList enumerates the source-specific keys that are collected
// into the additional_metadata overflow bucket. Everything else is dropped.
var metadataAllowList = []string{
	"jobLocationId",
	"collapseKey",
	"promotedLabelVisible",
	"otherLocations",
	"marketing",
	"jobStatus",
}

func (m *Mapper) mapOverflow(raw map[string]any, rec *models.CanonicalRecord) {
	if v, ok := raw["locations"]; ok {
		rec.LocationsData = v
	}
	if v, ok := raw["classifications"]; ok {
		rec.ClassificationsData = v
	} else if v, ok := raw["classification"]; ok {
		rec.ClassificationsData = v
	}
	if v, ok := raw["postedDates"]; ok {
		rec.PostedDates = v
	}
	if v, ok := raw["candidateResidency"]; ok {
		rec.CandidateResidency = v
	}
	if v, ok := raw["questions"]; ok {
		rec.Questions = v
	}
	if v, ok := raw["featured"]; ok {
		rec.FeaturedData = v
	}

	metadata := make(map[string]any)
	for _, key := range metadataAllowList {
		if v, ok := raw[key]; ok {
			metadata[key] = v
		}
	}
	if len(metadata) > 0 {
		rec.AdditionalMetadata = metadata
	}

	rec.CollapseKey = getString(raw, "collapseKey", "collapse_key")
}

// externalID extracts the source identifier, or synthesizes a best-effort
// dedup key from company and title when the source carries none. Synthesized
// IDs are not guaranteed unique; collisions across unrelated sources are a
// known limitation.
func (m *Mapper) externalID(raw map[string]any) string {
	for _, key := range []string{"jobId", "id", "external_id"} {
		if id := stringifyScalar(raw[key]); id != "" {
			return id
		}
	}

	company := "unknown"
	if name, ok := raw["companyName"].(string); ok && name != "" {
		company = name
	}
	synthesized := strings.ToLower(strings.ReplaceAll(company+"_"+m.title(raw), " ", "_"))
	if len(synthesized) > externalIDMaxLen {
		synthesized = synthesized[:externalIDMaxLen]
	}
	return synthesized
}

func (m *Mapper) title(raw map[string]any) string {
	for _, key := range []string{"title", "job_title", "position"} {
		if title, ok := raw[key].(string); ok && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title)
		}
	}
	return untitledPlaceholder
}
