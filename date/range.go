package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Range represents an inclusive range of months.
type Range struct{ From, To Month }

// Years returns the range from January of year 'from' to December of year 'to'.
func Years(from, to int) Range {
	if to < from {
		from, to = to, from
	}
	return Range{From: NewMonth(from, time.January), To: NewMonth(to, time.December)}
}

// All is the range that contains every month.
var All = Range{From: NewMonth(1, time.January), To: NewMonth(9999, time.December)}

// Contains return true if the month is included in the range (boundaries included).
func (r Range) Contains(m Month) bool { return !m.Before(r.From) && !m.After(r.To) }

// IsZero reports whether r is the zero Range.
func (r Range) IsZero() bool { return r == Range{} }

// String formats the range as "2001-01..2010-12".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// ParseYears parses a year range like "1990-2020", "1990..2020" or "1995".
func ParseYears(str string) (Range, error) {
	str = strings.TrimSpace(str)
	sep := "-"
	if strings.Contains(str, "..") {
		sep = ".."
	}
	parts := strings.SplitN(str, sep, 2)
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, fmt.Errorf("invalid year range %q: %w", str, err)
	}
	to := from
	if len(parts) == 2 {
		to, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Range{}, fmt.Errorf("invalid year range %q: %w", str, err)
		}
	}
	return Years(from, to), nil
}
