package rules

import (
	"fmt"
	"strings"

	"github.com/elabz/job-ingestion/internal/approval"
)

var fullTimeVocabulary = map[string]bool{
	"full-time": true,
	"full time": true,
	"fulltime":  true,
}

// EmploymentType rejects everything that is not a full-time position.
func EmploymentType() approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		if view.EmploymentType == nil {
			return false, "Job must be a full-time position, got: None"
		}

		normalized := strings.ToLower(strings.TrimSpace(*view.EmploymentType))
		if fullTimeVocabulary[normalized] {
			return true, ""
		}
		return false, fmt.Sprintf("Job must be a full-time position, got: %s", strings.TrimSpace(*view.EmploymentType))
	})
}
