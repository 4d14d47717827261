package fuzzydate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TZPlaceholder is the custom layout token replaced by the first applicable
// timezone form during layout formatting. It survives time.Format untouched
// because '%' never appears in reference-time layouts.
const TZPlaceholder = "%@"

// FormatOptions controls the fixed-layout rendering of a value.
type FormatOptions struct {
	// ZeroPad pads the year to four digits and every other component to two.
	ZeroPad bool
	// DateSep joins year, month and day. Defaults to "/".
	DateSep string
	// TimeSep joins hour, minute and second. Defaults to ":".
	TimeSep string
	// TZFormats is the ranked list of acceptable timezone output forms.
	// Defaults to abbreviation, name, then "+hh:mm".
	TZFormats []TZFormat
}

// Format renders the components from the year down to the value's
// precision. The date and time portions are joined by a single space, as is
// the trailing timezone (omitted when the value has none). Fails when the
// requested timezone forms are all inapplicable.
func (fd *FuzzyDatetime) Format(opts FormatOptions) (string, error) {
	dateSep := opts.DateSep
	if dateSep == "" {
		dateSep = "/"
	}
	timeSep := opts.TimeSep
	if timeSep == "" {
		timeSep = ":"
	}
	tzFormats := opts.TZFormats
	if len(tzFormats) == 0 {
		tzFormats = []TZFormat{TZAbbr, TZName, TZOffset}
	}

	var b strings.Builder
	b.WriteString(pad(fd.comps[Year], 4, opts.ZeroPad))
	seps := [...]string{Month: dateSep, Day: dateSep, Hour: " ", Minute: timeSep, Second: timeSep}
	for p := Month; p <= fd.precision; p++ {
		b.WriteString(seps[p])
		b.WriteString(pad(fd.comps[p], 2, opts.ZeroPad))
	}

	if fd.tz != nil {
		tzStr, err := fd.tz.TryFormat(tzFormats...)
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(tzStr)
	}
	return b.String(), nil
}

func pad(v, width int, zeroPad bool) string {
	if !zeroPad {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%0*d", width, v)
}

// FormatLayout renders the value through a standard library time layout,
// filling components beyond the precision with their defaults (midnight of
// January 1). Any occurrence of TZPlaceholder is replaced with the first
// applicable timezone form (abbreviation then "+hh:mm" when none are given),
// or the empty string when the value carries no timezone.
func (fd *FuzzyDatetime) FormatLayout(layout string, tzFormats ...TZFormat) (string, error) {
	if len(tzFormats) == 0 {
		tzFormats = []TZFormat{TZAbbr, TZOffset}
	}
	tzStr := ""
	if fd.tz != nil {
		var err error
		tzStr, err = fd.tz.TryFormat(tzFormats...)
		if err != nil {
			return "", err
		}
	}
	// Format first, substitute after: a timezone abbreviation such as "MST"
	// would otherwise be mangled by time.Format.
	out := fd.Time(time.Time{}).Format(layout)
	return strings.ReplaceAll(out, TZPlaceholder, tzStr), nil
}
