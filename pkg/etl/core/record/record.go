// Package record defines the dynamically-typed record representation handed
// to the load path by the extraction layer. A Record is a flat mapping of
// field names to Values; a Value is a tagged union over the shapes that occur
// in the vendor's JSON (string, int, float, bool, date, nested record, list,
// null), so loaders can coerce fields without losing type information.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date-valued fields.
const DateLayout = "2006-01-02"

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDate
	KindMap
	KindList
)

// Value is a tagged union over the dynamic field types of a Record.
// The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
	m    Record
	l    []Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date wraps a calendar date (time component truncated).
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t.Truncate(24 * time.Hour)}
}

// Map wraps a nested record.
func Map(r Record) Value { return Value{kind: KindMap, m: r} }

// List wraps a list of values.
func List(vs []Value) Value { return Value{kind: KindList, l: vs} }

// FromAny converts a decoded-JSON value (map[string]interface{}, []interface{},
// string, float64, bool, nil) into a Value. Strings matching the date layout
// stay strings; loaders decide per-field whether to parse dates.
func FromAny(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float64:
		// JSON numbers arrive as float64; keep integral values as ints.
		if x == float64(int64(x)) {
			return Int(int64(x))
		}
		return Float(x)
	case time.Time:
		return Date(x)
	case map[string]interface{}:
		return Map(FromJSONMap(x))
	case []interface{}:
		vs := make([]Value, 0, len(x))
		for _, e := range x {
			vs = append(vs, FromAny(e))
		}
		return List(vs)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// Kind returns the tag of the Value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// StringVal returns the underlying string. ok is false for non-string kinds.
func (v Value) StringVal() (string, bool) { return v.s, v.kind == KindString }

// MapVal returns the nested record for map-kinded values.
func (v Value) MapVal() (Record, bool) { return v.m, v.kind == KindMap }

// ListVal returns the element slice for list-kinded values.
func (v Value) ListVal() ([]Value, bool) { return v.l, v.kind == KindList }

// CoerceString renders any scalar Value as a string. Maps, lists and null
// report ok=false.
func (v Value) CoerceString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindInt:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	case KindDate:
		return v.t.Format(DateLayout), true
	default:
		return "", false
	}
}

// CoerceBool interprets the Value as a boolean. Strings accept
// "true"/"false", "1"/"0", "yes"/"no" (case-insensitive); numbers are truthy
// when non-zero.
func (v Value) CoerceBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindInt:
		return v.i != 0, true
	case KindFloat:
		return v.f != 0, true
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no", "":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// CoerceInt interprets the Value as an integer, parsing numeric strings.
func (v Value) CoerceInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CoerceFloat interprets the Value as a float, parsing numeric strings.
func (v Value) CoerceFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// CoerceDate interprets the Value as a calendar date, parsing strings in the
// wire layout.
func (v Value) CoerceDate() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.t, true
	case KindString:
		t, err := time.Parse(DateLayout, strings.TrimSpace(v.s))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// Record is an order-irrelevant mapping of field name to dynamically-typed
// value. The engine never mutates records outside an explicit preprocessing
// step; preprocessing operates on a clone.
type Record map[string]Value

// FromJSONMap converts a decoded-JSON object into a Record.
func FromJSONMap(m map[string]interface{}) Record {
	r := make(Record, len(m))
	for k, v := range m {
		r[k] = FromAny(v)
	}
	return r
}

// Get returns the named field. Missing fields read as null.
func (r Record) Get(field string) Value {
	return r[field]
}

// Has reports whether the field is present and non-null.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && !v.IsNull()
}

// Clone returns a shallow copy of the record. Nested maps and lists are
// shared; preprocessing replaces field values rather than mutating them.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Clean trims string fields and nulls out strings that are empty after
// trimming. Returns the cleaned copy.
func (r Record) Clean() Record {
	out := r.Clone()
	for k, v := range out {
		if s, ok := v.StringVal(); ok {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" {
				out[k] = Null()
			} else if trimmed != s {
				out[k] = String(trimmed)
			}
		}
	}
	return out
}

// StringField returns the named field coerced to string.
func (r Record) StringField(field string) (string, bool) {
	return r.Get(field).CoerceString()
}

// BoolField returns the named field coerced to bool.
func (r Record) BoolField(field string) (bool, bool) {
	return r.Get(field).CoerceBool()
}

// IntField returns the named field coerced to int64.
func (r Record) IntField(field string) (int64, bool) {
	return r.Get(field).CoerceInt()
}

// FloatField returns the named field coerced to float64.
func (r Record) FloatField(field string) (float64, bool) {
	return r.Get(field).CoerceFloat()
}

// DateField returns the named field coerced to a date.
func (r Record) DateField(field string) (time.Time, bool) {
	return r.Get(field).CoerceDate()
}

// ChildRecord returns a nested record field, e.g. a league's settings.
func (r Record) ChildRecord(field string) (Record, bool) {
	return r.Get(field).MapVal()
}

// ChildRecords returns a nested list-of-records field, e.g. a team's
// managers. Non-map elements are ignored.
func (r Record) ChildRecords(field string) []Record {
	vs, ok := r.Get(field).ListVal()
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(vs))
	for _, v := range vs {
		if m, ok := v.MapVal(); ok {
			out = append(out, m)
		}
	}
	return out
}
