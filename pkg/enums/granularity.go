package enums

import "fmt"

// Granularity selects the bucket size for trend and forecast series.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

var validGranularities = []Granularity{
	GranularityWeek,
	GranularityMonth,
}

// String implements fmt.Stringer.
func (g Granularity) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Granularity.
func (g Granularity) IsValid() bool {
	for _, candidate := range validGranularities {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGranularity converts raw input into a Granularity.
func ParseGranularity(value string) (Granularity, error) {
	for _, candidate := range validGranularities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid granularity %q", value)
}
