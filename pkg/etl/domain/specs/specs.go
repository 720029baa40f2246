// Package specs defines the per-entity-type loading behavior: required
// fields, preprocessing, natural keys and entity construction. Each function
// returns a loader.Spec consumed by a generic UpsertLoader.
package specs

import (
	"fmt"
	"strings"
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/support/exception"
)

const moduleName = "specs"

func stringField(rec record.Record, field string) string {
	s, _ := rec.StringField(field)
	return s
}

func boolField(rec record.Record, field string) bool {
	b, _ := rec.BoolField(field)
	return b
}

func intField(rec record.Record, field string) int {
	i, _ := rec.IntField(field)
	return int(i)
}

func floatField(rec record.Record, field string) float64 {
	f, _ := rec.FloatField(field)
	return f
}

func dateField(rec record.Record, field string) (time.Time, error) {
	t, ok := rec.DateField(field)
	if !ok {
		return time.Time{}, exception.NewValidationError(moduleName,
			"field %q is not a valid date", field)
	}
	return t, nil
}

// keyOf builds a key predicate from the given record fields, coerced to
// strings. It fails when any key field is empty.
func keyOf(rec record.Record, fields ...string) (map[string]interface{}, error) {
	key := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		v := stringField(rec, f)
		if v == "" {
			return nil, exception.NewValidationError(moduleName, "empty key field %q", f)
		}
		key[f] = v
	}
	return key, nil
}

// coerceStrings rewrites the given fields as string values so numeric IDs
// arriving as JSON numbers compare equal to their stored form.
func coerceStrings(rec record.Record, fields ...string) record.Record {
	out := rec.Clone()
	for _, f := range fields {
		if !out.Has(f) || out.Get(f).IsNull() {
			continue
		}
		if s, ok := out.Get(f).CoerceString(); ok {
			out[f] = record.String(s)
		}
	}
	return out
}

// coerceBools rewrites the given fields as booleans, accepting the usual
// permissive encodings ("1", "true", "yes", numeric flags).
func coerceBools(rec record.Record, fields ...string) (record.Record, error) {
	out := rec.Clone()
	for _, f := range fields {
		if !out.Has(f) || out.Get(f).IsNull() {
			continue
		}
		b, ok := out.Get(f).CoerceBool()
		if !ok {
			return nil, exception.NewValidationError(moduleName,
				"invalid boolean value for %s", f)
		}
		out[f] = record.Bool(b)
	}
	return out, nil
}

// splitMadeAttempted parses a composite "made/attempted" stat value.
func splitMadeAttempted(v string) (made, attempted int, err error) {
	parts := strings.SplitN(v, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed made/attempted value %q", v)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &made); err != nil {
		return 0, 0, fmt.Errorf("malformed made value %q", v)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &attempted); err != nil {
		return 0, 0, fmt.Errorf("malformed attempted value %q", v)
	}
	return made, attempted, nil
}
