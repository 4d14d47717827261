// Package fuzzydate implements precision-aware calendar datetime values:
// parsing, validation, normalization and formatting of user-entered date and
// time text whose granularity is not known in advance (a bare year, a
// year-month, a full timestamp with timezone), together with resolution of
// free-form timezone tokens against a fixed registry.
//
// Values are immutable after construction and safe for concurrent use. Every
// transformation returns a new value; construction is all-or-nothing and
// never clamps an out-of-range component.
package fuzzydate

import (
	"fmt"
	"strings"
	"time"
)

// FuzzyDatetime is a calendar timestamp known only down to its precision.
// Components at or below the precision are populated; components beyond it
// are absent, never invented.
type FuzzyDatetime struct {
	comps     [6]int
	precision Precision
	tz        *Timezone
}

// Components carries the raw numeric components for direct construction.
// Year is always required; the rest are optional and must be populated
// strictly top-down (a day without a month is a precision violation).
type Components struct {
	Year   int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
	Second *int
}

func (c Components) list() [6]*int {
	y := c.Year
	return [6]*int{&y, c.Month, c.Day, c.Hour, c.Minute, c.Second}
}

// New builds a value from components, inferring the precision from the
// deepest component present. Omitted hour/minute/second components above
// the inferred precision stay absent; all populated components are
// calendar-validated.
func New(c Components, tz *Timezone) (*FuzzyDatetime, error) {
	parts := c.list()
	precision := Year
	for p := Second; p > Year; p-- {
		if parts[p] != nil {
			precision = p
			break
		}
	}
	return build(parts, precision, tz)
}

// NewWithPrecision builds a value at an explicit precision. Components
// beyond the precision must not be set; hour, minute and second components
// at or below it default to zero when omitted, while year, month and day
// must be given explicitly.
func NewWithPrecision(c Components, tz *Timezone, precision Precision) (*FuzzyDatetime, error) {
	if !precision.Valid() {
		return nil, newValueError(fmt.Sprintf("unknown precision: %d", int(precision)), map[string]any{"precision": int(precision)})
	}
	parts := c.list()
	for p := precision + 1; p <= Second; p++ {
		if parts[p] != nil {
			return nil, newPrecisionError(
				fmt.Sprintf("%s component cannot be set for precision %s", p, precision),
				map[string]any{"precision": precision.String(), "component": p.String()},
			)
		}
	}
	return build(parts, precision, tz)
}

func build(parts [6]*int, precision Precision, tz *Timezone) (*FuzzyDatetime, error) {
	fd := &FuzzyDatetime{precision: precision, tz: tz}
	// Year through day must be present down to the precision; time-of-day
	// components default to zero.
	for p := Year; p <= precision; p++ {
		if parts[p] == nil {
			if p >= Hour {
				continue
			}
			return nil, newPrecisionError(
				fmt.Sprintf("missing %s component for precision %s", p, precision),
				map[string]any{"precision": precision.String(), "component": p.String()},
			)
		}
		fd.comps[p] = *parts[p]
	}
	if err := fd.validate(); err != nil {
		return nil, err
	}
	return fd, nil
}

// validate checks calendar ranges top-down. Lower components are not
// examined once a higher one has failed.
func (fd *FuzzyDatetime) validate() error {
	year := fd.comps[Year]
	if year < 1 || year > 9999 {
		return newValueError(fmt.Sprintf("year %d is out of range", year), map[string]any{"year": year})
	}
	if fd.precision < Month {
		return nil
	}
	month := fd.comps[Month]
	if month < 1 || month > 12 {
		return newValueError(fmt.Sprintf("month %d is out of range", month), map[string]any{"month": month})
	}
	if fd.precision < Day {
		return nil
	}
	day := fd.comps[Day]
	if max := daysInMonth(year, month); day < 1 || day > max {
		return newValueError(
			fmt.Sprintf("day %d is out of range for %d/%d", day, year, month),
			map[string]any{"year": year, "month": month, "day": day},
		)
	}
	if fd.precision < Hour {
		return nil
	}
	if hour := fd.comps[Hour]; hour < 0 || hour > 23 {
		return newValueError(fmt.Sprintf("hour %d is out of range", hour), map[string]any{"hour": hour})
	}
	if fd.precision < Minute {
		return nil
	}
	if minute := fd.comps[Minute]; minute < 0 || minute > 59 {
		return newValueError(fmt.Sprintf("minute %d is out of range", minute), map[string]any{"minute": minute})
	}
	if fd.precision < Second {
		return nil
	}
	if sec := fd.comps[Second]; sec < 0 || sec > 59 {
		return newValueError(fmt.Sprintf("second %d is out of range", sec), map[string]any{"second": sec})
	}
	return nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if isLeapYear(year) {
		return 29
	}
	return 28
}

// Precision returns the deepest component explicitly known.
func (fd *FuzzyDatetime) Precision() Precision { return fd.precision }

// Year is always present.
func (fd *FuzzyDatetime) Year() int { return fd.comps[Year] }

// Month returns the month component and whether it is populated.
func (fd *FuzzyDatetime) Month() (int, bool) { return fd.Component(Month) }

// Day returns the day component and whether it is populated.
func (fd *FuzzyDatetime) Day() (int, bool) { return fd.Component(Day) }

// Hour returns the hour component and whether it is populated.
func (fd *FuzzyDatetime) Hour() (int, bool) { return fd.Component(Hour) }

// Minute returns the minute component and whether it is populated.
func (fd *FuzzyDatetime) Minute() (int, bool) { return fd.Component(Minute) }

// Second returns the second component and whether it is populated.
func (fd *FuzzyDatetime) Second() (int, bool) { return fd.Component(Second) }

// Component returns the value at the given precision level and whether that
// level is populated.
func (fd *FuzzyDatetime) Component(p Precision) (int, bool) {
	if !p.Valid() || p > fd.precision {
		return 0, false
	}
	return fd.comps[p], true
}

// Timezone returns the resolved timezone, or nil when none was given.
func (fd *FuzzyDatetime) Timezone() *Timezone { return fd.tz }

// Equal compares precision, every populated component, and the timezone
// triple. A Day-precision value never equals an Hour-precision one, even at
// midnight.
func (fd *FuzzyDatetime) Equal(other *FuzzyDatetime) bool {
	if fd == nil || other == nil {
		return fd == other
	}
	if fd.precision != other.precision {
		return false
	}
	for p := Year; p <= fd.precision; p++ {
		if fd.comps[p] != other.comps[p] {
			return false
		}
	}
	if fd.tz == nil || other.tz == nil {
		return fd.tz == other.tz
	}
	return fd.tz.Equal(other.tz)
}

// EnsureTimezone applies tz only when the value has none yet; a value that
// already carries a timezone is returned unchanged.
func (fd *FuzzyDatetime) EnsureTimezone(tz *Timezone) *FuzzyDatetime {
	if fd.tz != nil || tz == nil {
		return fd
	}
	out := *fd
	out.tz = tz
	return &out
}

// FromTime converts a standard library time.Time into a Second-precision
// value. The location's offset becomes a fixed timezone; the zone label is
// kept as an abbreviation when it looks like one.
func FromTime(t time.Time) *FuzzyDatetime {
	label, offsetSec := t.Zone()
	abbr := ""
	if isAbbrLabel(label) {
		abbr = label
	}
	tz := &Timezone{offset: offsetSec / 60, abbr: abbr}
	return &FuzzyDatetime{
		comps:     [6]int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()},
		precision: Second,
		tz:        tz,
	}
}

func isAbbrLabel(label string) bool {
	if label == "" || label == "Local" {
		return false
	}
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// FromDate builds a Day-precision value from a known calendar date.
func FromDate(year, month, day int) (*FuzzyDatetime, error) {
	return New(Components{Year: year, Month: &month, Day: &day}, nil)
}

// From converts a supported value into a FuzzyDatetime: a *FuzzyDatetime
// passes through, a time.Time converts at Second precision, and a string is
// parsed with default options. Anything else is a type error.
func From(v any) (*FuzzyDatetime, error) {
	switch x := v.(type) {
	case *FuzzyDatetime:
		return x, nil
	case time.Time:
		return FromTime(x), nil
	case string:
		return Parse(x, ParseOptions{})
	default:
		return nil, newTypeError(
			fmt.Sprintf("unsupported type %T for datetime conversion", v),
			map[string]any{"input": fmt.Sprintf("%v", v)},
		)
	}
}

// Time converts to a standard calendar instant, filling components beyond
// the precision from def. A zero def fills with midnight of January 1. The
// location is the value's timezone when present, otherwise def's location,
// otherwise UTC.
func (fd *FuzzyDatetime) Time(def time.Time) time.Time {
	defComps := [6]int{def.Year(), int(def.Month()), def.Day(), def.Hour(), def.Minute(), def.Second()}
	if def.IsZero() {
		defComps = [6]int{1, 1, 1, 0, 0, 0}
	}
	out := fd.comps
	for p := fd.precision + 1; p <= Second; p++ {
		out[p] = defComps[p]
	}
	loc := time.UTC
	if fd.tz != nil {
		loc = fd.tz.Location()
	} else if !def.IsZero() {
		loc = def.Location()
	}
	return time.Date(out[Year], time.Month(out[Month]), out[Day], out[Hour], out[Minute], out[Second], 0, loc)
}

func (fd *FuzzyDatetime) String() string {
	s, err := fd.Format(FormatOptions{ZeroPad: true, TZFormats: []TZFormat{TZAbbr, TZName, TZOffset}})
	if err != nil {
		// Offset forms are always renderable, so this cannot happen with
		// the default format chain.
		return fmt.Sprintf("!%v", err)
	}
	return s
}

// GoString renders the populated components for debugging.
func (fd *FuzzyDatetime) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fuzzydate.FuzzyDatetime(precision=%s", fd.precision)
	for p := Year; p <= fd.precision; p++ {
		fmt.Fprintf(&b, ", %s=%d", p, fd.comps[p])
	}
	if fd.tz != nil {
		fmt.Fprintf(&b, ", tz=%s", fd.tz)
	}
	b.WriteString(")")
	return b.String()
}
