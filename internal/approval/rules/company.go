package rules

import (
	"fmt"
	"strings"

	"github.com/elabz/job-ingestion/internal/approval"
)

var staffingVocabulary = map[string]bool{
	"staffing firm":      true,
	"staffing agency":    true,
	"recruiting firm":    true,
	"recruitment agency": true,
}

// CompanyType rejects postings from staffing and recruiting intermediaries.
// An absent company type is neutral and does not reject.
func CompanyType() approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		if view.CompanyType == nil {
			return true, ""
		}

		trimmed := strings.TrimSpace(*view.CompanyType)
		if staffingVocabulary[strings.ToLower(trimmed)] {
			return false, fmt.Sprintf("Job must not be from a staffing firm, got: %s", trimmed)
		}
		return true, ""
	})
}
