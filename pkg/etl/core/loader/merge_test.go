package loader_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
)

type mergeEntity struct {
	ID        uint
	Code      string
	Name      string
	Score     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func TestMergeNonZeroKeepsExistingForZeroIncoming(t *testing.T) {
	created := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	existing := &mergeEntity{ID: 7, Code: "a", Name: "old name", Score: 12.5, CreatedAt: created}
	incoming := &mergeEntity{Code: "a", Name: "new name"}

	loader.MergeNonZero(existing, incoming)

	assert.Equal(t, uint(7), existing.ID)
	assert.Equal(t, created, existing.CreatedAt)
	assert.Equal(t, "new name", existing.Name)
	// Zero incoming score must not clobber the stored value.
	assert.Equal(t, 12.5, existing.Score)
	assert.False(t, existing.UpdatedAt.IsZero())
}

func TestMergeOverwriteCopiesZeroValues(t *testing.T) {
	existing := &mergeEntity{ID: 7, Code: "a", Name: "old name", Score: 12.5}
	incoming := &mergeEntity{Code: "a", Name: "new name", Score: 0}

	loader.MergeOverwrite(existing, incoming)

	assert.Equal(t, uint(7), existing.ID)
	assert.Equal(t, "new name", existing.Name)
	// A corrected zero replaces the stale score.
	assert.Equal(t, 0.0, existing.Score)
}
