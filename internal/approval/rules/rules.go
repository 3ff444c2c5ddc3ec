// Package rules provides the library of independent approval predicates the
// engine evaluates against each canonical record. Matching vocabularies are
// exact-set membership after trim and case-fold, never substring or fuzzy
// matching, to keep behavior deterministic.
package rules

import (
	"github.com/elabz/job-ingestion/internal/approval"
)

// Config carries the tunable thresholds rules depend on.
type Config struct {
	MinDescriptionLength int
	MinAnnualSalaryUSD   float64
	MinHourlyRateUSD     float64
}

func DefaultConfig() Config {
	return Config{
		MinDescriptionLength: 20,
		MinAnnualSalaryUSD:   100_000,
		MinHourlyRateUSD:     45,
	}
}

// Default returns the full rule set in its canonical registration order.
func Default(cfg Config) []approval.Rule {
	return []approval.Rule{
		Content(cfg),
		LocationPresence(),
		Geography(),
		Salary(cfg),
		EmploymentType(),
		CompanyType(),
		Language(),
	}
}
