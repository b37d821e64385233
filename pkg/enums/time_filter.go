package enums

import "fmt"

// TimeFilter names the relative reporting windows exposed by the API.
type TimeFilter string

const (
	TimeFilterLast7Days   TimeFilter = "last_7_days"
	TimeFilterLast30Days  TimeFilter = "last_30_days"
	TimeFilterLast365Days TimeFilter = "last_365_days"
	TimeFilterAllTime     TimeFilter = "all_time"
)

var validTimeFilters = []TimeFilter{
	TimeFilterLast7Days,
	TimeFilterLast30Days,
	TimeFilterLast365Days,
	TimeFilterAllTime,
}

// String implements fmt.Stringer.
func (f TimeFilter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known TimeFilter.
func (f TimeFilter) IsValid() bool {
	for _, candidate := range validTimeFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseTimeFilter converts raw input into a TimeFilter.
func ParseTimeFilter(value string) (TimeFilter, error) {
	for _, candidate := range validTimeFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time filter %q", value)
}
