package dateparse

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-02-29", true, time.Date(2024, 2, 29, 0, 0, 0, 0, lagos)},
		{"2024-02-29 13:45:00", true, time.Date(2024, 2, 29, 13, 45, 0, 0, lagos)},
		{"2024-02-29T10:00:00Z", true, time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)},
		{"2024-02-29T10:00:00.000000Z", true, time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"29/02/2024", false, time.Time{}},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in, lagos)
		if ok != tc.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b, time.UTC); got != 30 {
		t.Fatalf("DaysBetween = %d, want 30", got)
	}
	if got := DaysBetween(b, a, time.UTC); got != -30 {
		t.Fatalf("DaysBetween reversed = %d, want -30", got)
	}
}
