package services

import (
	"time"

	"livre_manager_go/fuzzydate"
)

// NormalizedDate is the outcome of validating a user-entered date or
// datetime string: the canonical zero-padded rendering (stored as the source
// of truth), the resolved instant for range queries (missing components
// defaulted), the detected precision, and the timezone name when one was
// given.
type NormalizedDate struct {
	Canonical string
	Resolved  time.Time
	Precision fuzzydate.Precision
	Timezone  string
}

// strictSeparators is set at startup from config; when true, mixed date or
// time separators in entered strings are rejected.
var strictSeparators = false

// InitDatePolicy configures the input strictness for date normalization.
func InitDatePolicy(strict bool) {
	strictSeparators = strict
}

// NormalizeAcquisitionDate validates an acquisition datetime string. Any
// precision from a bare year down to seconds is accepted, with an optional
// trailing timezone in any supported form. The returned error, when non-nil,
// is a *fuzzydate.Error suitable for field-level reporting.
func NormalizeAcquisitionDate(raw string, defaultTZ *fuzzydate.Timezone) (*NormalizedDate, error) {
	fd, err := fuzzydate.Parse(raw, fuzzydate.ParseOptions{
		SameDateSep: strictSeparators,
		SameTimeSep: strictSeparators,
	})
	if err != nil {
		return nil, err
	}
	fd = fd.EnsureTimezone(defaultTZ)
	return normalized(fd), nil
}

// NormalizeBookDate validates a publication date string through the
// date-only grammar: year, year/month or a full date, no time portion.
func NormalizeBookDate(raw string) (*NormalizedDate, error) {
	fd, err := fuzzydate.ParseDate(raw, fuzzydate.ParseOptions{SameDateSep: strictSeparators})
	if err != nil {
		return nil, err
	}
	return normalized(fd), nil
}

func normalized(fd *fuzzydate.FuzzyDatetime) *NormalizedDate {
	tzName := ""
	if tz := fd.Timezone(); tz != nil {
		if s, err := tz.TryFormat(fuzzydate.TZName, fuzzydate.TZAbbr, fuzzydate.TZOffset); err == nil {
			tzName = s
		}
	}
	return &NormalizedDate{
		Canonical: fd.String(),
		Resolved:  fd.Time(time.Time{}),
		Precision: fd.Precision(),
		Timezone:  tzName,
	}
}
