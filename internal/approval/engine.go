package approval

import (
	"github.com/elabz/job-ingestion/internal/xerrors"
)

// Rule examines one aspect of a record's eligibility. It returns the verdict
// and, when rejecting, a human-readable reason (empty string otherwise).
// Rules must be pure: no I/O, no side effects, order-insensitive in effect.
type Rule interface {
	Evaluate(view View) (bool, string)
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(view View) (bool, string)

func (f RuleFunc) Evaluate(view View) (bool, string) {
	return f(view)
}

// Decision is the immutable result of evaluating one record against the
// registered rules.
type Decision struct {
	Approved bool
	Reasons  []string
}

// Engine holds an ordered registry of rules and aggregates their verdicts.
// It is the single pure decision point in the pipeline.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) (*Engine, error) {
	e := &Engine{}
	for _, r := range rules {
		if err := e.Register(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Register appends a rule to the registry. Reason ordering in decisions
// follows registration order.
func (e *Engine) Register(rule Rule) error {
	if rule == nil {
		return xerrors.InvalidInput("rule must not be nil", nil)
	}
	e.rules = append(e.rules, rule)
	return nil
}

// Evaluate runs every registered rule exactly once, in registration order.
// Overall approval is the logical AND across all rules; with no rules
// registered every record is vacuously approved. Reasons collect the
// non-empty reasons of failing rules only.
func (e *Engine) Evaluate(view View) Decision {
	approved := true
	var reasons []string

	for _, rule := range e.rules {
		ok, reason := rule.Evaluate(view)
		if !ok {
			approved = false
			if reason != "" {
				reasons = append(reasons, reason)
			}
		}
	}

	return Decision{Approved: approved, Reasons: reasons}
}
