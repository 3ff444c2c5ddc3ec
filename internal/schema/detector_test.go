package schema

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name  string
		batch []map[string]any
		want  Tag
	}{
		{"nil batch", nil, TagUnknown},
		{"empty batch", []map[string]any{}, TagUnknown},
		{"no indicators", []map[string]any{{"title": "x"}, {"title": "y"}}, TagUnknown},
		{
			"schema_a dominates",
			[]map[string]any{{"company_name": "A"}, {"company_name": "B"}, {"employer": "C"}},
			TagSchemaA,
		},
		{
			"schema_b dominates",
			[]map[string]any{{"employer": "A"}, {"employer": "B"}},
			TagSchemaB,
		},
		{
			"tie is unknown",
			[]map[string]any{{"company_name": "A"}, {"employer": "B"}},
			TagUnknown,
		},
		{
			"both keys on one record count once each",
			[]map[string]any{{"company_name": "A", "employer": "A"}},
			TagUnknown,
		},
		{
			"nil records skipped",
			[]map[string]any{nil, {"company_name": "A"}},
			TagSchemaA,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Detect(c.batch); got != c.want {
				t.Errorf("Detect = %q, want %q", got, c.want)
			}
		})
	}
}
