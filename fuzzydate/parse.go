package fuzzydate

import (
	"fmt"
	"regexp"
	"strconv"
)

// Grammar for date and datetime strings. Components are strictly
// left-to-right dependent: a minute can only appear after an hour, an hour
// only after a full date. The trailing timezone token is captured raw and
// resolved against the registry in a second step.
var (
	datetimeRe = regexp.MustCompile(
		`^(?P<year>\d{4})` +
			`(?:(?P<sep1>[/.-])(?P<month>\d{1,2})` +
			`(?:(?P<sep2>[/.-])(?P<day>\d{1,2})` +
			`(?:[ T](?P<hour>\d{1,2})` +
			`(?:(?P<sep3>[:.-])(?P<minute>\d{1,2})` +
			`(?:(?P<sep4>[:.-])(?P<second>\d{1,2}))?` +
			`)?` +
			`(?:\s?(?P<tz>` + tzTokenPattern + `))?` +
			`)?)?)?$`)

	dateRe = regexp.MustCompile(
		`^(?P<year>\d{4})` +
			`(?:(?P<sep1>[/.-])(?P<month>\d{1,2})` +
			`(?:(?P<sep2>[/.-])(?P<day>\d{1,2})T?` +
			`)?)?$`)
)

// ParseOptions configures how strict the parser is beyond the grammar
// itself. The zero value requires nothing: any precision from Year down is
// accepted, mixed separators are tolerated, and every timezone form
// (including a missing timezone) is allowed.
type ParseOptions struct {
	// RequiredPrecision is the minimum precision the input must specify.
	RequiredPrecision Precision
	// SameDateSep rejects dates whose two separators differ, e.g. "2020-4/1".
	SameDateSep bool
	// SameTimeSep rejects times whose two separators differ, e.g. "9:5.3".
	SameTimeSep bool
	// AllowedTZFormats restricts the acceptable timezone text forms. Include
	// TZNone to accept input without a timezone. Empty means all forms.
	AllowedTZFormats []TZFormat
}

// capture holds the raw grammar match before numeric conversion.
type capture struct {
	comps   [6]*int
	seps    [4]string // sep1, sep2 (date), sep3, sep4 (time)
	tzToken string
}

func captureGroups(re *regexp.Regexp, source string) (*capture, bool) {
	m := re.FindStringSubmatch(source)
	if m == nil {
		return nil, false
	}
	cap := &capture{}
	group := func(name string) string {
		if i := re.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}
	for p := Year; p <= Second; p++ {
		if s := group(p.String()); s != "" {
			n, _ := strconv.Atoi(s)
			v := n
			cap.comps[p] = &v
		}
	}
	cap.seps = [4]string{group("sep1"), group("sep2"), group("sep3"), group("sep4")}
	cap.tzToken = group("tz")
	return cap, true
}

// inputPrecision is the deepest component actually present in the match.
func (c *capture) inputPrecision() Precision {
	for p := Second; p > Year; p-- {
		if c.comps[p] != nil {
			return p
		}
	}
	return Year
}

// Parse parses a date or datetime string into a FuzzyDatetime whose
// precision reflects exactly how much of the value the input specified.
// Failures are structured: grammar mismatches and disallowed mixed
// separators are format errors, calendar violations are value errors, an
// input below the required precision is a precision error, and an
// unresolvable timezone token is a timezone format error annotated with the
// full source string.
func Parse(source string, opts ParseOptions) (*FuzzyDatetime, error) {
	cap, ok := captureGroups(datetimeRe, source)
	if !ok {
		return nil, newFormatError(
			fmt.Sprintf("invalid datetime format: %q", source),
			map[string]any{"input": source},
		)
	}

	inPrecision := cap.inputPrecision()
	if err := checkRequiredPrecision(source, inPrecision, opts.RequiredPrecision); err != nil {
		return nil, err
	}
	if err := checkSeparators(source, cap, opts); err != nil {
		return nil, err
	}

	var tz *Timezone
	if cap.tzToken != "" {
		parsed, err := ParseTimezone(cap.tzToken, opts.AllowedTZFormats...)
		if err != nil {
			return nil, wrapTimezoneFormatError(err, source, cap.tzToken)
		}
		tz = parsed
	} else if len(opts.AllowedTZFormats) > 0 && !tzFormatSet(opts.AllowedTZFormats)[TZNone] {
		return nil, newTimezoneFormatError(
			fmt.Sprintf("missing timezone in %q; include TZNone to allow input without one", source),
			map[string]any{"input": source},
		)
	}

	return assemble(cap, inPrecision, tz)
}

// ParseDate parses a date-only string (year, optional month, optional day).
// The required precision cannot exceed Day for date parsing.
func ParseDate(source string, opts ParseOptions) (*FuzzyDatetime, error) {
	if opts.RequiredPrecision > Day {
		return nil, newPrecisionError(
			fmt.Sprintf("required precision must be year, month or day for date parsing, got %s", opts.RequiredPrecision),
			map[string]any{"input": source, "precision_required": opts.RequiredPrecision.String()},
		)
	}
	cap, ok := captureGroups(dateRe, source)
	if !ok {
		return nil, newFormatError(
			fmt.Sprintf("invalid date format: %q", source),
			map[string]any{"input": source},
		)
	}

	inPrecision := cap.inputPrecision()
	if err := checkRequiredPrecision(source, inPrecision, opts.RequiredPrecision); err != nil {
		return nil, err
	}
	if err := checkSeparators(source, cap, ParseOptions{SameDateSep: opts.SameDateSep}); err != nil {
		return nil, err
	}

	return assemble(cap, inPrecision, nil)
}

func checkRequiredPrecision(source string, in, required Precision) error {
	if !required.Valid() {
		return newValueError(
			fmt.Sprintf("unknown precision requirement: %d", int(required)),
			map[string]any{"input": source, "precision_required": int(required)},
		)
	}
	if in < required {
		return newPrecisionError(
			fmt.Sprintf("precision %s required but %q only specifies %s", required, source, in),
			map[string]any{"input": source, "precision_required": required.String(), "precision": in.String()},
		)
	}
	return nil
}

func checkSeparators(source string, cap *capture, opts ParseOptions) error {
	if opts.SameDateSep && cap.seps[0] != "" && cap.seps[1] != "" && cap.seps[0] != cap.seps[1] {
		return newFormatError(
			fmt.Sprintf("mixed date separators %q and %q in %q", cap.seps[0], cap.seps[1], source),
			map[string]any{"input": source, "sep1": cap.seps[0], "sep2": cap.seps[1]},
		)
	}
	if opts.SameTimeSep && cap.seps[2] != "" && cap.seps[3] != "" && cap.seps[2] != cap.seps[3] {
		return newFormatError(
			fmt.Sprintf("mixed time separators %q and %q in %q", cap.seps[2], cap.seps[3], source),
			map[string]any{"input": source, "sep3": cap.seps[2], "sep4": cap.seps[3]},
		)
	}
	return nil
}

func assemble(cap *capture, precision Precision, tz *Timezone) (*FuzzyDatetime, error) {
	c := Components{Year: *cap.comps[Year]}
	c.Month, c.Day = cap.comps[Month], cap.comps[Day]
	c.Hour, c.Minute, c.Second = cap.comps[Hour], cap.comps[Minute], cap.comps[Second]
	return NewWithPrecision(c, tz, precision)
}
