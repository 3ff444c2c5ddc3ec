package rules

import (
	"fmt"
	"strings"

	"github.com/elabz/job-ingestion/internal/approval"
)

// Content rejects records whose title is blank or whose description text is
// shorter than the configured minimum after trimming.
func Content(cfg Config) approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		if strings.TrimSpace(view.Title) == "" {
			return false, "Missing or empty title"
		}
		if len(strings.TrimSpace(view.Description)) < cfg.MinDescriptionLength {
			return false, fmt.Sprintf("Description too short (< %d)", cfg.MinDescriptionLength)
		}
		return true, ""
	})
}
