package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	monthKeyLayout = "2006-01"
	// DateLayout is the canonical string form of a transaction date.
	DateLayout = "2006-01-02"
)

// MonthKey identifies a calendar month as YYYY-MM. It buckets transactions and budgets.
type MonthKey string

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(monthKeyLayout, s); err != nil {
		return "", fmt.Errorf("invalid month key %q, expected YYYY-MM: %w", s, err)
	}
	return MonthKey(s), nil
}

// MonthKeyOf returns the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthKeyLayout))
}

// Start returns the first day of the month at UTC midnight.
// An invalid key yields the zero time.
func (m MonthKey) Start() time.Time {
	t, err := time.Parse(monthKeyLayout, string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether m is a well-formed YYYY-MM key.
func (m MonthKey) Valid() bool {
	_, err := time.Parse(monthKeyLayout, string(m))
	return err == nil
}

// AddMonths returns the key n months after m (n may be negative).
func (m MonthKey) AddMonths(n int) MonthKey {
	return MonthKeyOf(m.Start().AddDate(0, n, 0))
}

// Prev returns the immediately preceding month.
func (m MonthKey) Prev() MonthKey {
	return m.AddMonths(-1)
}

// Label is the short display label, e.g. "Jan 2024".
func (m MonthKey) Label() string {
	return m.Start().Format("Jan 2006")
}

func (m MonthKey) String() string {
	return string(m)
}

// DateFilter selects transactions by the prefix of their canonical date string.
// AllDates disables filtering; a MonthKey selects a single month.
type DateFilter string

// AllDates is the DateFilter matching every transaction.
const AllDates DateFilter = "all"

// IsAll reports whether the filter matches every date.
func (f DateFilter) IsAll() bool {
	return f == "" || f == AllDates
}

// Matches reports whether the date falls inside the filter.
func (f DateFilter) Matches(date time.Time) bool {
	if f.IsAll() {
		return true
	}
	return strings.HasPrefix(date.Format(DateLayout), string(f))
}

// Month returns the filter as a MonthKey when it names exactly one month.
func (f DateFilter) Month() (MonthKey, bool) {
	if f.IsAll() {
		return "", false
	}
	m := MonthKey(f)
	return m, m.Valid()
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return d, nil
}

// TruncateToDate drops the time-of-day component of t, keeping its calendar date.
func TruncateToDate(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
