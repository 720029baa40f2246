package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
)

// Spec describes how one entity type is validated, keyed, built and merged.
// UpsertLoader is generic over the entity; all type-specific behavior lives
// here so each entity package supplies a Spec instead of subclassing.
type Spec[T any] struct {
	// Entity is the dataset name (e.g. "games", "player_stats_daily").
	Entity string

	// RequiredFields are record fields that must be present and non-null.
	// Records missing any of them are rejected before persistence.
	RequiredFields []string

	// Preprocess normalizes a record before validation (type coercion,
	// derived fields). The input record has already been Clean()ed. Nil
	// means no extra preprocessing.
	Preprocess func(rec record.Record) (record.Record, error)

	// Validate applies entity-specific checks beyond required fields.
	// Nil means required-field checking only.
	Validate func(rec record.Record) error

	// Key extracts the natural-key predicate used both for in-run
	// deduplication and for the existence lookup. Column names map to
	// database columns.
	Key func(rec record.Record) (map[string]interface{}, error)

	// Build constructs the entity from a validated record.
	Build func(rec record.Record) (*T, error)

	// ShouldUpdate decides whether an existing row is refreshed from the
	// incoming record. Nil means always update.
	ShouldUpdate func(existing *T, rec record.Record) bool

	// Merge folds the incoming entity into the existing one before the
	// update is written. Nil selects MergeNonZero.
	Merge func(existing *T, incoming *T)

	// ConflictColumns are the unique-index columns used by the per-row
	// upsert fallback when a bulk insert hits a duplicate key.
	ConflictColumns []string

	// UpdateColumns are the columns rewritten by the upsert fallback.
	UpdateColumns []string

	// AllowDuplicates disables in-run deduplication for entity types
	// where repeated natural keys are legitimate.
	AllowDuplicates bool
}

// keyString canonicalizes a key predicate for dedupe map lookups: columns
// sorted, values joined with '|'.
func keyString(key map[string]interface{}) string {
	cols := make([]string, 0, len(key))
	for c := range key {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf("%s=%v", c, key[c]))
	}
	return strings.Join(parts, "|")
}
