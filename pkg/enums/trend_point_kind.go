package enums

import "fmt"

// TrendPointKind distinguishes measured revenue from projected revenue in a
// trend series.
type TrendPointKind string

const (
	TrendPointKindHistorical TrendPointKind = "historical"
	TrendPointKindForecast   TrendPointKind = "forecast"
)

var validTrendPointKinds = []TrendPointKind{
	TrendPointKindHistorical,
	TrendPointKindForecast,
}

// String implements fmt.Stringer.
func (k TrendPointKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known TrendPointKind.
func (k TrendPointKind) IsValid() bool {
	for _, candidate := range validTrendPointKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseTrendPointKind converts raw input into a TrendPointKind.
func ParseTrendPointKind(value string) (TrendPointKind, error) {
	for _, candidate := range validTrendPointKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trend point kind %q", value)
}
