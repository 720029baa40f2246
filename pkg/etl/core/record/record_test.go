package record_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
)

func TestFromJSONMapKinds(t *testing.T) {
	r := record.FromJSONMap(map[string]interface{}{
		"name":   "Lakers",
		"rank":   float64(3),
		"pct":    0.625,
		"active": true,
		"coach":  nil,
	})

	assert.Equal(t, record.KindString, r.Get("name").Kind())
	// Integral JSON numbers decode as ints.
	assert.Equal(t, record.KindInt, r.Get("rank").Kind())
	assert.Equal(t, record.KindFloat, r.Get("pct").Kind())
	assert.Equal(t, record.KindBool, r.Get("active").Kind())
	assert.True(t, r.Get("coach").IsNull())
	assert.False(t, r.Has("coach"))
	assert.False(t, r.Has("missing"))
}

func TestCoercions(t *testing.T) {
	r := record.FromJSONMap(map[string]interface{}{
		"season":  float64(2023),
		"code":    "nba",
		"flag":    "1",
		"no":      "no",
		"percent": "0.456",
		"date":    "2023-10-24",
	})

	s, ok := r.StringField("season")
	require.True(t, ok)
	assert.Equal(t, "2023", s)

	b, ok := r.BoolField("flag")
	require.True(t, ok)
	assert.True(t, b)

	b, ok = r.BoolField("no")
	require.True(t, ok)
	assert.False(t, b)

	f, ok := r.FloatField("percent")
	require.True(t, ok)
	assert.InDelta(t, 0.456, f, 1e-9)

	d, ok := r.DateField("date")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC), d)

	_, ok = r.IntField("code")
	assert.False(t, ok)
}

func TestCleanTrimsAndNullsEmptyStrings(t *testing.T) {
	r := record.FromJSONMap(map[string]interface{}{
		"name":  "  Celtics  ",
		"blank": "   ",
		"rank":  float64(1),
	})

	cleaned := r.Clean()

	name, _ := cleaned.StringField("name")
	assert.Equal(t, "Celtics", name)
	assert.True(t, cleaned.Get("blank").IsNull())
	// The original record is untouched.
	orig, _ := r.StringField("name")
	assert.Equal(t, "  Celtics  ", orig)
	n, _ := cleaned.IntField("rank")
	assert.Equal(t, int64(1), n)
}

func TestChildRecords(t *testing.T) {
	r := record.FromJSONMap(map[string]interface{}{
		"team_key": "428.l.12345.t.1",
		"managers": []interface{}{
			map[string]interface{}{"manager_id": "1", "nickname": "alice"},
			map[string]interface{}{"manager_id": "2", "nickname": "bob"},
			"not a record",
		},
	})

	children := r.ChildRecords("managers")
	require.Len(t, children, 2)
	nick, _ := children[0].StringField("nickname")
	assert.Equal(t, "alice", nick)

	assert.Nil(t, r.ChildRecords("team_key"))
	assert.Nil(t, r.ChildRecords("missing"))
}
