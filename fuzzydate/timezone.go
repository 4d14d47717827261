package fuzzydate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TZFormat names a textual form a timezone token may take on input or output.
type TZFormat string

const (
	TZName          TZFormat = "name"      // canonical name, e.g. "Asia/Tokyo"
	TZAbbr          TZFormat = "abbr"      // abbreviation, e.g. "JST"
	TZOffset        TZFormat = "+hh:mm"    // colon-separated offset, e.g. "+09:00"
	TZOffsetCompact TZFormat = "+hhmm"     // compact offset, e.g. "+0900"
	TZUTCOffset     TZFormat = "utc+hh:mm" // prefixed colon-separated offset, e.g. "UTC+09:00"
	TZUTCCompact    TZFormat = "utc+hhmm"  // prefixed compact offset, e.g. "UTC+0900"
	TZZulu          TZFormat = "z"         // the literal "Z", meaning UTC
	TZNone          TZFormat = "none"      // input only: permit a missing timezone token
)

// AllTZFormats lists every input form, including the absent-timezone marker.
var AllTZFormats = []TZFormat{TZName, TZAbbr, TZZulu, TZOffset, TZOffsetCompact, TZUTCOffset, TZUTCCompact, TZNone}

// tzTokenPattern matches any candidate timezone token in a datetime string.
// Resolution against the registry happens in a second step.
const tzTokenPattern = `[A-Za-z0-9/_:+-]+`

var offsetRe = regexp.MustCompile(`(?i)^(?P<utc>UTC)?(?P<sign>[+-])(?:(?P<hours>\d{1,2}):(?P<minutes>\d{1,2})|(?P<compact>\d{1,4}))$`)

// maxOffsetMinutes bounds a UTC offset to less than one day in either direction.
const maxOffsetMinutes = 24 * 60

// Timezone is a fixed UTC offset with an optional display abbreviation and
// canonical name. Immutable after construction; two values with the same
// offset but different display text are distinct entities.
type Timezone struct {
	offset int // minutes east of UTC
	abbr   string
	name   string
}

// NewTimezone builds a fixed-offset timezone. The offset is minutes east of
// UTC and must stay within +/-24h.
func NewTimezone(offsetMinutes int, abbr, name string) (*Timezone, error) {
	if offsetMinutes <= -maxOffsetMinutes || offsetMinutes >= maxOffsetMinutes {
		return nil, newTimezoneValueError(
			fmt.Sprintf("timezone offset %d minutes is out of range", offsetMinutes),
			map[string]any{"offset": offsetMinutes},
		)
	}
	return &Timezone{offset: offsetMinutes, abbr: abbr, name: name}, nil
}

// OffsetMinutes returns the canonical offset in minutes east of UTC.
func (t *Timezone) OffsetMinutes() int { return t.offset }

// Abbreviation returns the display abbreviation, or "" if the timezone
// carries none (e.g. one parsed from a bare numeric offset).
func (t *Timezone) Abbreviation() string { return t.abbr }

// Name returns the canonical zone name, or "" if the timezone carries none.
func (t *Timezone) Name() string { return t.name }

// Equal compares the (offset, abbreviation, name) triple.
func (t *Timezone) Equal(other *Timezone) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.offset == other.offset && t.abbr == other.abbr && t.name == other.name
}

// EqualOffset compares by resolved offset only, ignoring display text.
func (t *Timezone) EqualOffset(other *Timezone) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.offset == other.offset
}

// Location materializes the offset as a fixed *time.Location for use with
// the standard library. The display name prefers the abbreviation.
func (t *Timezone) Location() *time.Location {
	label := t.abbr
	if label == "" {
		label = t.FormatOffset(false, ":")
	}
	return time.FixedZone(label, t.offset*60)
}

func (t *Timezone) String() string {
	if t.name != "" {
		return t.name
	}
	if t.abbr != "" {
		return t.abbr
	}
	return t.FormatOffset(false, ":")
}

// FormatOffset renders the numeric offset, optionally prefixed with "UTC"
// and with the given separator between hours and minutes.
func (t *Timezone) FormatOffset(utcPrefix bool, sep string) string {
	sign := "+"
	off := t.offset
	if off < 0 {
		sign = "-"
		off = -off
	}
	prefix := ""
	if utcPrefix {
		prefix = "UTC"
	}
	return fmt.Sprintf("%s%s%02d%s%02d", prefix, sign, off/60, sep, off%60)
}

// TryFormat renders the timezone using the first applicable form in the
// ranked list. Name and abbreviation forms apply only when the timezone
// carries them; numeric forms always apply. Fails with a value error when
// none of the requested forms apply, or when an unknown form is requested.
func (t *Timezone) TryFormat(formats ...TZFormat) (string, error) {
	if len(formats) == 0 {
		formats = []TZFormat{TZName, TZAbbr, TZUTCOffset}
	}
	for _, f := range formats {
		switch f {
		case TZName:
			if t.name != "" {
				return t.name, nil
			}
		case TZAbbr:
			if t.abbr != "" {
				return t.abbr, nil
			}
		case TZOffset:
			return t.FormatOffset(false, ":"), nil
		case TZOffsetCompact:
			return t.FormatOffset(false, ""), nil
		case TZUTCOffset:
			return t.FormatOffset(true, ":"), nil
		case TZUTCCompact:
			return t.FormatOffset(true, ""), nil
		default:
			return "", newValueError(
				fmt.Sprintf("unknown timezone format %q", string(f)),
				map[string]any{"tz_format": string(f)},
			)
		}
	}
	return "", newValueError(
		fmt.Sprintf("none of the formats %v applicable to %s", formats, t),
		map[string]any{"timezone": t.String(), "tz_formats": formats},
	)
}

// registry is the immutable process-wide timezone table. It is built exactly
// once on first use; values are never mutated afterwards, so concurrent
// lookups need no locking.
type registry struct {
	byName map[string]*Timezone
	byAbbr map[string]*Timezone
	sorted []*Timezone
}

var loadRegistry = sync.OnceValue(func() *registry {
	r := &registry{
		byName: make(map[string]*Timezone, len(tzTable)),
		byAbbr: make(map[string]*Timezone, len(tzTable)),
	}
	for _, e := range tzTable {
		tz := &Timezone{offset: e.offset, abbr: e.abbr, name: e.name}
		// One canonical entry per name and per abbreviation: first wins.
		if _, dup := r.byName[strings.ToLower(e.name)]; dup {
			continue
		}
		if _, dup := r.byAbbr[strings.ToLower(e.abbr)]; dup {
			continue
		}
		r.byName[strings.ToLower(e.name)] = tz
		r.byAbbr[strings.ToLower(e.abbr)] = tz
		r.sorted = append(r.sorted, tz)
	}
	sort.SliceStable(r.sorted, func(i, j int) bool {
		a, b := r.sorted[i], r.sorted[j]
		if a.name == "UTC" {
			return true
		}
		if b.name == "UTC" {
			return false
		}
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		return a.name < b.name
	})
	return r
})

// TimezoneByName looks up a registry entry by canonical name,
// case-insensitively.
func TimezoneByName(name string) (*Timezone, error) {
	if tz, ok := loadRegistry().byName[strings.ToLower(name)]; ok {
		return tz, nil
	}
	return nil, newTimezoneValueError("unknown timezone name: "+name, map[string]any{"input": name})
}

// TimezoneByAbbr looks up a registry entry by abbreviation,
// case-insensitively.
func TimezoneByAbbr(abbr string) (*Timezone, error) {
	if tz, ok := loadRegistry().byAbbr[strings.ToLower(abbr)]; ok {
		return tz, nil
	}
	return nil, newTimezoneValueError("unknown timezone abbreviation: "+abbr, map[string]any{"input": abbr})
}

// Timezones returns every registry entry ordered by offset then name, with
// UTC first. The returned slice is a copy; entries are shared and immutable.
func Timezones() []*Timezone {
	src := loadRegistry().sorted
	out := make([]*Timezone, len(src))
	copy(out, src)
	return out
}

// ParseTimezone resolves a timezone token against the registry and the
// numeric offset grammar. Resolution order: canonical name, the "Z" literal,
// abbreviation, then numeric offset. The allowed set restricts which textual
// forms are acceptable; empty means all forms.
func ParseTimezone(token string, allowed ...TZFormat) (*Timezone, error) {
	allowedSet := tzFormatSet(allowed)

	input := strings.ToLower(token)
	if tz, ok := loadRegistry().byName[input]; ok {
		if !allowedSet[TZName] {
			return nil, tzFormNotAllowed(token, TZName, allowed)
		}
		return tz, nil
	}

	if input == "z" {
		if !allowedSet[TZZulu] {
			return nil, tzFormNotAllowed(token, TZZulu, allowed)
		}
		return loadRegistry().byAbbr["utc"], nil
	}

	if tz, ok := loadRegistry().byAbbr[input]; ok {
		if !allowedSet[TZAbbr] {
			return nil, tzFormNotAllowed(token, TZAbbr, allowed)
		}
		return tz, nil
	}

	if m := offsetRe.FindStringSubmatch(token); m != nil {
		utc := m[offsetRe.SubexpIndex("utc")] != ""
		sign := m[offsetRe.SubexpIndex("sign")]
		hoursStr := m[offsetRe.SubexpIndex("hours")]
		compact := m[offsetRe.SubexpIndex("compact")]

		var form TZFormat
		var hours, minutes int
		if hoursStr != "" {
			if utc {
				form = TZUTCOffset
			} else {
				form = TZOffset
			}
			hours, _ = strconv.Atoi(hoursStr)
			minutes, _ = strconv.Atoi(m[offsetRe.SubexpIndex("minutes")])
		} else {
			if utc {
				form = TZUTCCompact
			} else {
				form = TZOffsetCompact
			}
			switch len(compact) {
			case 1, 2:
				hours, _ = strconv.Atoi(compact)
			case 3:
				hours, _ = strconv.Atoi(compact[:1])
				minutes, _ = strconv.Atoi(compact[1:])
			case 4:
				hours, _ = strconv.Atoi(compact[:2])
				minutes, _ = strconv.Atoi(compact[2:])
			}
		}
		if !allowedSet[form] {
			return nil, tzFormNotAllowed(token, form, allowed)
		}
		offset := hours*60 + minutes
		if sign == "-" {
			offset = -offset
		}
		return NewTimezone(offset, "", "")
	}

	return nil, newTimezoneFormatError(
		fmt.Sprintf("invalid timezone format: %q", token),
		map[string]any{"input": token},
	)
}

func tzFormatSet(formats []TZFormat) map[TZFormat]bool {
	set := make(map[TZFormat]bool, len(AllTZFormats))
	if len(formats) == 0 {
		formats = AllTZFormats
	}
	for _, f := range formats {
		set[f] = true
	}
	return set
}

func tzFormNotAllowed(token string, form TZFormat, allowed []TZFormat) *Error {
	return newTimezoneFormatError(
		fmt.Sprintf("timezone %q matched form %q, which is not in the allowed set %v", token, string(form), allowed),
		map[string]any{"input": token, "matched_form": string(form)},
	)
}
