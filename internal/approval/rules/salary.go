package rules

import (
	"fmt"

	"github.com/elabz/job-ingestion/internal/approval"
	"github.com/elabz/job-ingestion/internal/models"
)

// currencyToUSD holds approximate conversion rates. Unknown currencies pass
// through at 1.0.
var currencyToUSD = map[string]float64{
	"USD": 1.0,
	"CAD": 0.74,
	"EUR": 1.08,
	"GBP": 1.27,
}

// Salary locates a minimum salary figure, normalizes it by currency and
// unit, and rejects unless the USD value clears the annual or hourly floor.
// Absence of any usable figure is a rejection, not a pass-through.
func Salary(cfg Config) approval.Rule {
	return approval.RuleFunc(func(view approval.View) (bool, string) {
		salary := view.SalaryMin
		if salary == nil {
			salary = view.EstimatedSalaryMin
		}
		if salary == nil || *salary <= 0 {
			return false, "No valid salary information found"
		}

		rate, ok := currencyToUSD[view.SalaryCurrency]
		if !ok {
			rate = 1.0
		}
		salaryUSD := *salary * rate

		if view.SalaryUnit == models.SalaryUnitHourly {
			if salaryUSD >= cfg.MinHourlyRateUSD {
				return true, ""
			}
			return false, fmt.Sprintf("Hourly rate below $%.0f/hour USD (found: $%.2f/hour USD)",
				cfg.MinHourlyRateUSD, salaryUSD)
		}

		if salaryUSD >= cfg.MinAnnualSalaryUSD {
			return true, ""
		}
		return false, fmt.Sprintf("Annual salary below $%.0f USD (found: $%.0f USD)",
			cfg.MinAnnualSalaryUSD, salaryUSD)
	})
}
