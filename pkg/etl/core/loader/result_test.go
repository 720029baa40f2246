package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
)

func TestResultSuccessRate(t *testing.T) {
	r := loader.NewResult()
	assert.Equal(t, 0.0, r.SuccessRate())

	r.TotalRecords = 10
	r.Inserted = 6
	r.Updated = 2
	r.Skipped = 1
	r.Failed = 1
	assert.InDelta(t, 0.8, r.SuccessRate(), 1e-9)
}

func TestResultCombineSumsCountersAndEntries(t *testing.T) {
	a := loader.NewResult()
	a.TotalRecords = 5
	a.Inserted = 4
	a.Failed = 1
	a.AddError("bad row", nil)

	b := loader.NewResult()
	b.TotalRecords = 3
	b.Updated = 2
	b.Skipped = 1
	b.AddWarning("dup key", nil)

	c := a.Combine(b)

	assert.Equal(t, 8, c.TotalRecords)
	assert.Equal(t, 4, c.Inserted)
	assert.Equal(t, 2, c.Updated)
	assert.Equal(t, 1, c.Skipped)
	assert.Equal(t, 1, c.Failed)
	assert.Len(t, c.Errors, 1)
	assert.Len(t, c.Warnings, 1)
	assert.False(t, c.End.Before(c.Start))
}

func TestResultCombineNil(t *testing.T) {
	a := loader.NewResult()
	a.Inserted = 1
	assert.Equal(t, a, a.Combine(nil))
}
