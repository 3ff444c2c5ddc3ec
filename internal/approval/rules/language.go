package rules

import (
	"fmt"
	"strings"

	"github.com/elabz/job-ingestion/internal/approval"
)

var (
	englishTokens = map[string]bool{"english": true, "en": true}
	frenchTokens  = map[string]bool{"french": true, "fr": true}
)

// Language rejects records without a language. English is always accepted;
// French only when the resolved location is in Canada, with a reason
// distinct from the generic unsupported-language one.
func Language() approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		if view.Language == nil || strings.TrimSpace(*view.Language) == "" {
			return false, "Job must specify a language"
		}

		language := strings.TrimSpace(*view.Language)
		normalized := strings.ToLower(language)
		country := view.Location.ResolvedCountry()

		if englishTokens[normalized] {
			return true, ""
		}
		if frenchTokens[normalized] {
			if approval.IsCanada(country) {
				return true, ""
			}
			return false, fmt.Sprintf("French language is only accepted for jobs in Canada, job location: %s", country)
		}

		return false, fmt.Sprintf("Job must be in English (or French if in Canada), got: %s", language)
	})
}
