// Package schema labels a batch of raw records with a coarse source-schema
// tag. The tag is diagnostic metadata only and never gates approval or
// persistence.
package schema

// Tag identifies which source-field convention a batch appears to use.
type Tag string

const (
	TagUnknown Tag = "unknown"
	TagSchemaA Tag = "schema_a"
	TagSchemaB Tag = "schema_b"
)

// Detect counts occurrences of the schema_a indicator key ("company_name")
// against the schema_b indicator ("employer") across all records. The tag
// whose indicator strictly dominates wins; ties, empty batches and batches
// without either indicator yield TagUnknown. Non-object records are skipped.
func Detect(batch []map[string]any) Tag {
	if len(batch) == 0 {
		return TagUnknown
	}

	countA := 0
	countB := 0
	for _, record := range batch {
		if record == nil {
			continue
		}
		if _, ok := record["company_name"]; ok {
			countA++
		}
		if _, ok := record["employer"]; ok {
			countB++
		}
	}

	switch {
	case countA > countB:
		return TagSchemaA
	case countB > countA:
		return TagSchemaB
	default:
		return TagUnknown
	}
}
