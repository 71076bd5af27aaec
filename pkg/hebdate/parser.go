package hebdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rollover thresholds in days. Dates more than threeMonthsPast days behind
// the reference are assumed to belong to next year; dates inside the
// (recentPast, threeMonthsPast] band keep the current year so that a
// newsletter mentioning last month's date is not pushed a year ahead.
const (
	recentPast      = 60
	threeMonthsPast = 90
)

// Parser resolves day/month tokens to absolute calendar days.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Jerusalem"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// ResolveDayMonth turns a day/month token into a concrete calendar day.
// The year is taken from baseTime first; if the resulting date is more than
// threeMonthsPast days before baseTime, the year rolls forward by one.
func (p *Parser) ResolveDayMonth(day, month int, baseTime time.Time) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}

	base := baseTime.In(p.location)
	candidate := time.Date(base.Year(), time.Month(month), day, 0, 0, 0, 0, p.location)

	// time.Date normalizes overflow (e.g. 31/2); treat that as invalid.
	if candidate.Day() != day || candidate.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("invalid calendar day %d/%d", day, month)
	}

	daysDiff := int(base.Sub(candidate).Hours() / 24)
	if daysDiff > threeMonthsPast {
		candidate = time.Date(base.Year()+1, time.Month(month), day, 0, 0, 0, 0, p.location)
	}

	return candidate, nil
}

// At combines a resolved calendar day with an "HH:MM" clock string.
func (p *Parser) At(day time.Time, hhmm string) (time.Time, error) {
	hour, minute, err := SplitClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	d := day.In(p.location)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, p.location), nil
}

// StartOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// SplitClock parses an "HH:MM" string into hour and minute.
func SplitClock(hhmm string) (int, int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock string %q", hhmm)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", hhmm, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", hhmm, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock %q out of range", hhmm)
	}
	return hour, minute, nil
}

// MinutesBetween returns end minus start in minutes for two "HH:MM" strings.
func MinutesBetween(start, end string) (int, error) {
	sh, sm, err := SplitClock(start)
	if err != nil {
		return 0, err
	}
	eh, em, err := SplitClock(end)
	if err != nil {
		return 0, err
	}
	return (eh*60 + em) - (sh*60 + sm), nil
}
