package rules

import (
	"fmt"

	"github.com/elabz/job-ingestion/internal/approval"
)

// LocationPresence rejects records that carry neither a location nor an
// explicit remote flag.
func LocationPresence() approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		if view.Remote || !view.Location.Empty() {
			return true, ""
		}
		return false, "Missing location information"
	})
}

// Geography approves remote records unconditionally; otherwise the location
// must resolve to the US or Canada. A structured country outside the
// allow-list and a text location whose country cannot be recognized produce
// deliberately distinct reasons.
func Geography() approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		if view.Remote {
			return true, ""
		}
		if view.Location.Empty() {
			return false, "Missing location information"
		}

		if country := view.Location.Country; country != "" {
			if approval.IsUS(country) || approval.IsCanada(country) {
				return true, ""
			}
			return false, fmt.Sprintf("Job location must be in US/Canada or remote, got: %s", country)
		}

		country := view.Location.ResolvedCountry()
		if approval.IsUS(country) || approval.IsCanada(country) {
			return true, ""
		}
		return false, fmt.Sprintf("Unable to determine country from location: %s", view.Location.Text)
	})
}
