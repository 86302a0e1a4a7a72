package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "2024-03-15", want: NewMonth(2024, time.March)},
		{in: "2024-3-1", want: NewMonth(2024, time.March)},
		{in: "2024-03-31T00:00:00Z", want: NewMonth(2024, time.March)},
		{in: "2024-03", want: NewMonth(2024, time.March)},
		{in: "202403", want: NewMonth(2024, time.March)},
		{in: " 1963-07-01 ", want: NewMonth(1963, time.July)},
		{in: "202413", wantErr: true},
		{in: "March 2024", wantErr: true},
		{in: "", wantErr: true},
		{in: "2024", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMonth(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMonth(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseMonth(%q) = %v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonthArithmetic(t *testing.T) {
	m := NewMonth(2024, time.December)
	if got := m.Add(1); got != NewMonth(2025, time.January) {
		t.Errorf("%v.Add(1) = %v want 2025-01", m, got)
	}
	if got := m.Add(-12); got != NewMonth(2023, time.December) {
		t.Errorf("%v.Add(-12) = %v want 2023-12", m, got)
	}
	if got := New(2024, time.February, 30).Month(); got != NewMonth(2024, time.March) {
		t.Errorf("New(2024-02-30).Month() = %v want 2024-03", got)
	}
	if got := m.String(); got != "2024-12" {
		t.Errorf("String() = %q want %q", got, "2024-12")
	}
}

func TestParseYears(t *testing.T) {
	testCases := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{in: "1990-2020", want: Years(1990, 2020)},
		{in: "1990..2020", want: Years(1990, 2020)},
		{in: "2020-1990", want: Years(1990, 2020)},
		{in: "1995", want: Years(1995, 1995)},
		{in: "nineties", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseYears(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseYears(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseYears(%q) = %v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := Years(2000, 2001)
	if !r.Contains(MustParseMonth("2000-01")) || !r.Contains(MustParseMonth("2001-12")) {
		t.Errorf("%v must contain its boundaries", r)
	}
	if r.Contains(MustParseMonth("1999-12")) || r.Contains(MustParseMonth("2002-01")) {
		t.Errorf("%v must not contain months outside its boundaries", r)
	}
}
