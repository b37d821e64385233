package periods

import (
	"fmt"
	"time"

	apperrors "github.com/orderpulse/backend/pkg/errors"
	"github.com/orderpulse/backend/pkg/enums"
)

// allTimeStart is the floor of the all_time window. Orders predate nothing
// in this system, so a fixed epoch keeps the window finite and cacheable.
var allTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Window is a half-open [Start, End) reporting range in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the window covers no time at all.
func (w Window) IsZero() bool {
	return !w.Start.Before(w.End)
}

// Contains reports whether t falls inside the half-open range.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Resolve maps a named filter to an absolute window ending at now.
func Resolve(filter enums.TimeFilter, now time.Time) (Window, error) {
	now = now.UTC()
	switch filter {
	case enums.TimeFilterLast7Days:
		return Window{Start: now.AddDate(0, 0, -7), End: now}, nil
	case enums.TimeFilterLast30Days:
		return Window{Start: now.AddDate(0, 0, -30), End: now}, nil
	case enums.TimeFilterLast365Days:
		return Window{Start: now.AddDate(0, 0, -365), End: now}, nil
	case enums.TimeFilterAllTime:
		return Window{Start: allTimeStart, End: now}, nil
	default:
		return Window{}, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown time filter %q", filter))
	}
}

// Bucket is one period of a window partition. Start/End are clipped to the
// window; Anchor is the unclipped aligned period start used for key
// derivation and forecast continuation.
type Bucket struct {
	Key    string
	Start  time.Time
	End    time.Time
	Anchor time.Time
}

// Buckets partitions the window into ordered periods of the requested
// granularity. The first and last buckets are clipped to the window edges,
// so the ranges cover the window exactly with no gap and no overlap. A
// degenerate window yields an empty slice.
func Buckets(w Window, g enums.Granularity) ([]Bucket, error) {
	if !g.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown granularity %q", g))
	}
	if w.IsZero() {
		return nil, nil
	}

	var out []Bucket
	cursor := Align(w.Start, g)
	for cursor.Before(w.End) {
		next := Next(cursor, g)
		b := Bucket{
			Key:    Key(cursor, g),
			Start:  cursor,
			End:    next,
			Anchor: cursor,
		}
		if b.Start.Before(w.Start) {
			b.Start = w.Start
		}
		if b.End.After(w.End) {
			b.End = w.End
		}
		out = append(out, b)
		cursor = next
	}
	return out, nil
}

// Align returns the aligned period start at or before t. Weeks start on
// Monday at midnight UTC, months on the first of the month.
func Align(t time.Time, g enums.Granularity) time.Time {
	t = t.UTC()
	switch g {
	case enums.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	}
}

// Next returns the aligned start of the period following anchor.
func Next(anchor time.Time, g enums.Granularity) time.Time {
	if g == enums.GranularityMonth {
		return anchor.AddDate(0, 1, 0)
	}
	return anchor.AddDate(0, 0, 7)
}

// Key derives the stable, sortable label for the period anchored at anchor.
// Months use "2006-01"; weeks use the ISO form "2006-W02".
func Key(anchor time.Time, g enums.Granularity) string {
	if g == enums.GranularityMonth {
		return anchor.Format("2006-01")
	}
	year, week := anchor.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
