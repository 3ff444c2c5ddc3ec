package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elabz/job-ingestion/internal/models"
	"github.com/elabz/job-ingestion/internal/xerrors"
)

// canonicalColumns lists the columns shared by jobs and rejected_jobs, in
// the order canonicalArgs produces values.
var canonicalColumns = []string{
	"external_id",
	"title",
	"short_description",
	"full_description",
	"salary_min",
	"salary_max",
	"estimated_salary_min",
	"estimated_salary_max",
	"base_salary",
	"salary_currency",
	"salary_unit",
	"is_salary_estimate",
	"is_salary_confidential",
	"company_name",
	"is_company_confidential",
	"primary_location",
	"zipcode",
	"county",
	"latitude",
	"longitude",
	"years_experience",
	"years_experience_id",
	"industry_name",
	"industry_id",
	"job_type_id",
	"remote_flag",
	"posting_date",
	"entry_date",
	"update_date",
	"external_application_url",
	"seo_job_link",
	"seo_location",
	"is_active",
	"allows_external_apply",
	"is_promoted",
	"is_featured",
	"is_marketing",
	"recruiter_anonymous",
	"score",
	"locations_data",
	"classifications_data",
	"posted_dates",
	"candidate_residency",
	"questions",
	"featured_data",
	"additional_metadata",
	"collapse_key",
}

func (s *Session) SaveJob(ctx context.Context, rec models.CanonicalRecord) error {
	args, err := canonicalArgs(rec)
	if err != nil {
		return err
	}
	args = append(args, models.ApprovalStatusApproved)

	stmt := insertStatement("jobs", append(append([]string{}, canonicalColumns...), "approval_status"))
	if _, err := s.tx.Exec(ctx, stmt, args...); err != nil {
		return xerrors.Internal("inserting approved job", err)
	}
	return nil
}

func (s *Session) SaveRejectedJob(ctx context.Context, rec models.CanonicalRecord, reasons string) error {
	args, err := canonicalArgs(rec)
	if err != nil {
		return err
	}
	args = append(args, reasons)

	stmt := insertStatement("rejected_jobs", append(append([]string{}, canonicalColumns...), "rejection_reasons"))
	if _, err := s.tx.Exec(ctx, stmt, args...); err != nil {
		return xerrors.Internal("inserting rejected job", err)
	}
	return nil
}

func insertStatement(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

func canonicalArgs(rec models.CanonicalRecord) ([]any, error) {
	locations, err := jsonArg(rec.LocationsData)
	if err != nil {
		return nil, err
	}
	classifications, err := jsonArg(rec.ClassificationsData)
	if err != nil {
		return nil, err
	}
	postedDates, err := jsonArg(rec.PostedDates)
	if err != nil {
		return nil, err
	}
	residency, err := jsonArg(rec.CandidateResidency)
	if err != nil {
		return nil, err
	}
	questions, err := jsonArg(rec.Questions)
	if err != nil {
		return nil, err
	}
	featured, err := jsonArg(rec.FeaturedData)
	if err != nil {
		return nil, err
	}
	var metadata any
	if rec.AdditionalMetadata != nil {
		metadata, err = jsonArg(rec.AdditionalMetadata)
		if err != nil {
			return nil, err
		}
	}

	return []any{
		rec.ExternalID,
		rec.Title,
		rec.ShortDescription,
		rec.FullDescription,
		rec.SalaryMin,
		rec.SalaryMax,
		rec.EstimatedSalaryMin,
		rec.EstimatedSalaryMax,
		rec.BaseSalary,
		rec.SalaryCurrency,
		rec.SalaryUnit,
		rec.IsSalaryEstimate,
		rec.IsSalaryConfidential,
		rec.CompanyName,
		rec.IsCompanyConfidential,
		rec.PrimaryLocation,
		rec.Zipcode,
		rec.County,
		rec.Latitude,
		rec.Longitude,
		rec.YearsExperience,
		rec.YearsExperienceID,
		rec.IndustryName,
		rec.IndustryID,
		rec.JobTypeID,
		rec.RemoteFlag,
		rec.PostingDate,
		rec.EntryDate,
		rec.UpdateDate,
		rec.ExternalApplicationURL,
		rec.SEOJobLink,
		rec.SEOLocation,
		rec.IsActive,
		rec.AllowsExternalApply,
		rec.IsPromoted,
		rec.IsFeatured,
		rec.IsMarketing,
		rec.RecruiterAnonymous,
		rec.Score,
		locations,
		classifications,
		postedDates,
		residency,
		questions,
		featured,
		metadata,
		rec.CollapseKey,
	}, nil
}

// jsonArg renders overflow values as JSONB input; nil stays NULL.
func jsonArg(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, xerrors.Internal("encoding overflow data", err)
	}
	return data, nil
}
