package enums

import "testing"

func TestOrderStatusNormalize(t *testing.T) {
	cases := []struct {
		in   OrderStatus
		want OrderStatus
	}{
		{OrderStatusConfirmed, OrderStatusConfirmed},
		{"  hold  ", OrderStatusHold},
		{"", OrderStatusUnknown},
		{"shipped", OrderStatusUnknown},
		{OrderStatusUnknown, OrderStatusUnknown},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeFilter(t *testing.T) {
	if _, err := ParseTimeFilter("last_90_days"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
	f, err := ParseTimeFilter("last_7_days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != TimeFilterLast7Days {
		t.Fatalf("unexpected filter: %s", f)
	}
}

func TestParseGranularity(t *testing.T) {
	if _, err := ParseGranularity("year"); err == nil {
		t.Fatal("expected error for unknown granularity")
	}
	g, err := ParseGranularity("month")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != GranularityMonth {
		t.Fatalf("unexpected granularity: %s", g)
	}
}
