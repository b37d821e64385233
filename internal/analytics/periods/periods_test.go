package periods

import (
	"testing"
	"time"

	"github.com/orderpulse/backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	w, err := Resolve(enums.TimeFilterLast7Days, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), w.Start)
	assert.Equal(t, now, w.End)

	w, err = Resolve(enums.TimeFilterLast365Days, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -365), w.Start)

	w, err = Resolve(enums.TimeFilterAllTime, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, now, w.End)

	_, err = Resolve(enums.TimeFilter("yesterday"), now)
	assert.Error(t, err)
}

func TestBucketsPartitionWindow(t *testing.T) {
	for _, g := range []enums.Granularity{enums.GranularityWeek, enums.GranularityMonth} {
		w := Window{
			Start: time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.April, 3, 16, 0, 0, 0, time.UTC),
		}
		buckets, err := Buckets(w, g)
		require.NoError(t, err)
		require.NotEmpty(t, buckets)

		assert.Equal(t, w.Start, buckets[0].Start, "first bucket clipped to window start")
		assert.Equal(t, w.End, buckets[len(buckets)-1].End, "last bucket clipped to window end")

		seen := map[string]bool{}
		for i, b := range buckets {
			assert.True(t, b.Start.Before(b.End), "bucket %d has positive span", i)
			assert.False(t, seen[b.Key], "duplicate key %s", b.Key)
			seen[b.Key] = true
			if i > 0 {
				assert.Equal(t, buckets[i-1].End, b.Start, "no gap or overlap at bucket %d", i)
				assert.True(t, buckets[i-1].Anchor.Before(b.Anchor), "anchors increase")
			}
		}
	}
}

func TestBucketsDegenerateWindow(t *testing.T) {
	at := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	buckets, err := Buckets(Window{Start: at, End: at}, enums.GranularityWeek)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}

func TestBucketsInvalidGranularity(t *testing.T) {
	w := Window{Start: time.Now().UTC().AddDate(0, 0, -7), End: time.Now().UTC()}
	_, err := Buckets(w, enums.Granularity("day"))
	assert.Error(t, err)
}

func TestWeekAlignment(t *testing.T) {
	// 2026-03-15 is a Sunday; its week starts Monday 2026-03-09.
	sunday := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	anchor := Align(sunday, enums.GranularityWeek)
	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), anchor)
	assert.Equal(t, time.Monday, anchor.Weekday())
	assert.Equal(t, "2026-W11", Key(anchor, enums.GranularityWeek))
}

func TestMonthKeysAndNext(t *testing.T) {
	anchor := Align(time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC), enums.GranularityMonth)
	assert.Equal(t, "2026-12", Key(anchor, enums.GranularityMonth))
	assert.Equal(t, "2027-01", Key(Next(anchor, enums.GranularityMonth), enums.GranularityMonth))
}

func TestWindowContains(t *testing.T) {
	w := Window{
		Start: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End), "end is exclusive")
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}
