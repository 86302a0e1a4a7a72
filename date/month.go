package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MonthFormat is the format used to write a Month.
const MonthFormat = "2006-01"

// Month is a calendar month. It is comparable and can be used as a map key.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month, so that NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month {
	y, m, _ := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Date()
	return Month{y, m}
}

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Add returns the month i months after m.
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.index() < x.index() }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.index() > x.index() }

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after x.
func (m Month) Compare(x Month) int {
	switch {
	case m.Before(x):
		return -1
	case m.After(x):
		return 1
	default:
		return 0
	}
}

func (m Month) index() int { return m.y*12 + int(m.m) - 1 }

// String formats the month as "2006-01".
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.y, m.m) }

// compactMonthRE matches the YYYYMM labels used by the Kenneth French data library.
var compactMonthRE = regexp.MustCompile(`^(\d{4})(\d{2})$`)

// ParseMonth parses a row label into the Month that contains it.
//
// Accepted labels are "2006-01-02" (and its lenient single digit variant),
// RFC 3339 timestamps, "2006-01" and "200601". Finer grained labels are
// truncated to their month.
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return Month{}, fmt.Errorf("invalid month: empty label")
	}

	if match := compactMonthRE.FindStringSubmatch(str); match != nil {
		y, _ := strconv.Atoi(match[1])
		m, _ := strconv.Atoi(match[2])
		if m < 1 || m > 12 {
			return Month{}, fmt.Errorf("invalid month %q: month %d out of range", str, m)
		}
		return NewMonth(y, time.Month(m)), nil
	}

	if on, err := time.Parse("2006-1", str); err == nil {
		return NewMonth(on.Year(), on.Month()), nil
	}

	d, err := Parse(str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q, %q or %q: %w", str, DateFormat, MonthFormat, "200601", err)
	}
	return d.Month(), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}
