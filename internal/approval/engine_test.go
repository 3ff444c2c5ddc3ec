package approval

import (
	"reflect"
	"testing"
)

func pass(View) (bool, string)   { return true, "" }
func silent(View) (bool, string) { return false, "" }

func failWith(reason string) RuleFunc {
	return func(View) (bool, string) { return false, reason }
}

func TestEvaluateNoRulesApproves(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	decision := engine.Evaluate(View{})
	if !decision.Approved {
		t.Error("expected vacuous approval with empty registry")
	}
	if len(decision.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", decision.Reasons)
	}
}

func TestEvaluateAggregatesAND(t *testing.T) {
	engine, err := NewEngine(RuleFunc(pass), failWith("nope"), RuleFunc(pass))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	decision := engine.Evaluate(View{})
	if decision.Approved {
		t.Error("one failing rule must reject the record")
	}
	if !reflect.DeepEqual(decision.Reasons, []string{"nope"}) {
		t.Errorf("Reasons = %v", decision.Reasons)
	}
}

func TestEvaluateReasonsFollowRegistrationOrder(t *testing.T) {
	engine, err := NewEngine(failWith("first"), RuleFunc(pass), failWith("second"), failWith("third"))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	decision := engine.Evaluate(View{})
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(decision.Reasons, want) {
		t.Errorf("Reasons = %v, want %v", decision.Reasons, want)
	}
}

func TestEvaluateSkipsEmptyReasons(t *testing.T) {
	engine, err := NewEngine(RuleFunc(silent), failWith("stated"))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	decision := engine.Evaluate(View{})
	if decision.Approved {
		t.Error("silent failure must still reject")
	}
	if !reflect.DeepEqual(decision.Reasons, []string{"stated"}) {
		t.Errorf("Reasons = %v", decision.Reasons)
	}
}

func TestRegisterRejectsNil(t *testing.T) {
	engine := &Engine{}
	if err := engine.Register(nil); err == nil {
		t.Error("expected error registering a nil rule")
	}
	if _, err := NewEngine(RuleFunc(pass), nil); err == nil {
		t.Error("expected NewEngine to propagate the nil-rule error")
	}
}

func TestLocationResolvedCountry(t *testing.T) {
	cases := []struct {
		loc  Location
		want string
	}{
		{Location{Country: "Canada"}, "Canada"},
		{Location{Text: "Montreal, QC, Canada"}, "Canada"},
		{Location{Text: "Remote"}, "Remote"},
		{Location{Text: "  Boston , USA "}, "USA"},
		{Location{}, ""},
		// Structured country wins over text.
		{Location{Text: "Paris, France", Country: "USA"}, "USA"},
	}
	for _, c := range cases {
		if got := c.loc.ResolvedCountry(); got != c.want {
			t.Errorf("ResolvedCountry(%+v) = %q, want %q", c.loc, got, c.want)
		}
	}
}

func TestCountryPredicates(t *testing.T) {
	for _, s := range []string{"US", "usa", "U.S.", "United States", "united states of america"} {
		if !IsUS(s) {
			t.Errorf("IsUS(%q) = false", s)
		}
	}
	for _, s := range []string{"CA", "canada", " Canada "} {
		if !IsCanada(s) {
			t.Errorf("IsCanada(%q) = false", s)
		}
	}
	for _, s := range []string{"France", "UK", "", "california"} {
		if IsUS(s) || IsCanada(s) {
			t.Errorf("%q must not resolve to US or Canada", s)
		}
	}
}
