package loader

import (
	"reflect"
	"time"
)

// fields never copied from an incoming entity into an existing row.
var preservedFields = map[string]bool{
	"ID":        true,
	"CreatedAt": true,
	"FetchedAt": true,
}

// MergeNonZero copies every exported non-zero field of incoming onto
// existing, preserving identity and creation timestamps, then refreshes
// UpdatedAt when the entity carries one. It is the default Spec.Merge.
func MergeNonZero[T any](existing *T, incoming *T) {
	mergeFields(existing, incoming, false)
}

// MergeOverwrite copies every exported field of incoming onto existing,
// including zero values. Stats entities use it so a corrected zero score
// replaces a stale non-zero one.
func MergeOverwrite[T any](existing *T, incoming *T) {
	mergeFields(existing, incoming, true)
}

func mergeFields[T any](existing *T, incoming *T, includeZero bool) {
	dst := reflect.ValueOf(existing).Elem()
	src := reflect.ValueOf(incoming).Elem()
	if dst.Kind() != reflect.Struct {
		return
	}
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || preservedFields[f.Name] || f.Name == "UpdatedAt" {
			continue
		}
		sv := src.Field(i)
		if !includeZero && sv.IsZero() {
			continue
		}
		dst.Field(i).Set(sv)
	}
	if uf := dst.FieldByName("UpdatedAt"); uf.IsValid() && uf.Type() == reflect.TypeOf(time.Time{}) {
		uf.Set(reflect.ValueOf(time.Now()))
	}
}
