package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamik3/oy-vey-pay/internal/record"
)

func TestParseRangeExplicit(t *testing.T) {
	from, to, err := parseRange("2024-03-01", "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	// The range covers the whole "to" day.
	assert.True(t, to.After(time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)))
	assert.True(t, to.Before(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
}

func TestParseRangeDefaultsToLast30Days(t *testing.T) {
	from, to, err := parseRange("", "")
	require.NoError(t, err)
	assert.True(t, from.Before(to))
	assert.WithinDuration(t, to.AddDate(0, 0, -29), from, time.Second)
}

func TestParseRangeMalformed(t *testing.T) {
	_, _, err := parseRange("March 1st", "2024-03-10")
	require.Error(t, err)
	assert.Equal(t, "from must be YYYY-MM-DD", err.Error())

	_, _, err = parseRange("2024-03-01", "10/03/2024")
	require.Error(t, err)
	assert.Equal(t, "to must be YYYY-MM-DD", err.Error())
}

func TestInRangeBoundaries(t *testing.T) {
	from, to, err := parseRange("2024-03-01", "2024-03-10")
	require.NoError(t, err)

	records := []record.Record{
		{Title: "before", CreatedAt: time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)},
		{Title: "first moment", CreatedAt: from},
		{Title: "last moment", CreatedAt: time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)},
		{Title: "day after", CreatedAt: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	kept := inRange(records, from, to)
	require.Len(t, kept, 2)
	assert.Equal(t, "first moment", kept[0].Title)
	assert.Equal(t, "last moment", kept[1].Title)
}
