package models

import (
	"time"
)

// Salary units recognized across sources.
const (
	SalaryUnitAnnual = "annual"
	SalaryUnitHourly = "hourly"
)

// Approval statuses persisted with approved jobs.
const (
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
)

// CanonicalRecord is the normalized, fixed-shape representation of a job
// posting produced by the field mapper. ExternalID and Title always carry a
// value; every other field is optional and stays nil/zero when the source
// did not provide it.
type CanonicalRecord struct {
	ExternalID string
	Title      string

	ShortDescription *string
	FullDescription  *string

	SalaryMin            *float64
	SalaryMax            *float64
	EstimatedSalaryMin   *float64
	EstimatedSalaryMax   *float64
	BaseSalary           *string
	SalaryCurrency       string
	SalaryUnit           string
	IsSalaryEstimate     *bool
	IsSalaryConfidential *bool

	CompanyName           *string
	IsCompanyConfidential *bool

	PrimaryLocation *string
	Zipcode         *string
	County          *string
	Latitude        *float64
	Longitude       *float64

	YearsExperience   *string
	YearsExperienceID *int
	IndustryName      *string
	IndustryID        *int
	JobTypeID         *int
	RemoteFlag        *string

	PostingDate *time.Time
	EntryDate   *time.Time
	UpdateDate  *time.Time

	ExternalApplicationURL *string
	SEOJobLink             *string
	SEOLocation            *string

	IsActive            bool
	AllowsExternalApply bool
	IsPromoted          bool
	IsFeatured          bool
	IsMarketing         bool
	RecruiterAnonymous  bool
	Score               *float64

	// Overflow buckets kept as opaque structured values. Rules never read
	// these; they are stored for later use.
	LocationsData       any
	ClassificationsData any
	PostedDates         any
	CandidateResidency  any
	Questions           any
	FeaturedData        any
	AdditionalMetadata  map[string]any
	CollapseKey         *string
}

// Description returns the text rules should evaluate: the short description
// when present, otherwise the full one.
func (r CanonicalRecord) Description() string {
	if r.ShortDescription != nil && *r.ShortDescription != "" {
		return *r.ShortDescription
	}
	if r.FullDescription != nil {
		return *r.FullDescription
	}
	return ""
}
