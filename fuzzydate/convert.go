package fuzzydate

import (
	"fmt"
	"time"
)

// Rounding selects how dropped components are handled when narrowing
// precision.
type Rounding string

const (
	// RoundTrunc drops the trailing components.
	RoundTrunc Rounding = "trunc"
	// RoundCeil increments the retained least-significant component when any
	// dropped component is nonzero. Only defined for Day precision and below.
	RoundCeil Rounding = "ceil"
	// RoundHalfUp increments when the most significant dropped component is
	// at or past the midpoint of its unit. Only defined for Day precision
	// and below.
	RoundHalfUp Rounding = "round"
)

// WithPrecision returns a copy of the value adjusted to the target
// precision.
//
// Narrowing drops trailing components under the chosen rounding mode;
// ceil and half-up rounding are undefined for Year and Month targets
// (there is no calendar-free way to round a day up into a month) and
// carry into higher components when the retained one overflows its unit.
//
// Widening fills the missing components from def, a full Second-precision
// timestamp; with no default, midnight of January 1 of the existing year is
// used.
//
// The timezone is kept when the result is at Hour precision or deeper
// (inherited from def when widening across the Hour boundary and none was
// present) and dropped entirely below Hour.
func (fd *FuzzyDatetime) WithPrecision(target Precision, def *FuzzyDatetime, rounding Rounding) (*FuzzyDatetime, error) {
	if !target.Valid() {
		return nil, newValueError(
			fmt.Sprintf("unknown precision: %d", int(target)),
			map[string]any{"precision": int(target)},
		)
	}
	if def != nil && def.precision != Second {
		return nil, newPrecisionError(
			fmt.Sprintf("default value must be a full timestamp at second precision, got %s", def.precision),
			map[string]any{"default": def.String(), "precision": def.precision.String()},
		)
	}

	if target == fd.precision {
		return fd, nil
	}

	var comps [6]int
	if target < fd.precision {
		var err error
		comps, err = fd.narrow(target, rounding)
		if err != nil {
			return nil, err
		}
	} else {
		comps = fd.comps
		defComps := [6]int{fd.comps[Year], 1, 1, 0, 0, 0}
		if def != nil {
			defComps = def.comps
		}
		for p := fd.precision + 1; p <= target; p++ {
			comps[p] = defComps[p]
		}
	}

	var tz *Timezone
	if target >= Hour {
		tz = fd.tz
		if tz == nil && target > fd.precision && def != nil {
			tz = def.tz
		}
	}

	out := &FuzzyDatetime{comps: comps, precision: target, tz: tz}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (fd *FuzzyDatetime) narrow(target Precision, rounding Rounding) ([6]int, error) {
	var comps [6]int
	copy(comps[:], fd.comps[:target+1])

	switch rounding {
	case RoundTrunc, "":
		return comps, nil
	case RoundCeil, RoundHalfUp:
		if target < Day {
			return comps, newValueError(
				fmt.Sprintf("rounding mode %q is not defined for precision %s", rounding, target),
				map[string]any{"rounding": string(rounding), "precision": target.String()},
			)
		}
	default:
		return comps, newValueError(
			fmt.Sprintf("unknown rounding mode: %q", rounding),
			map[string]any{"rounding": string(rounding)},
		)
	}

	bump := false
	if rounding == RoundCeil {
		for p := target + 1; p <= fd.precision; p++ {
			if fd.comps[p] != 0 {
				bump = true
				break
			}
		}
	} else {
		// Half-up looks only at the most significant dropped component:
		// hours round against 24, minutes and seconds against 60.
		width := 60
		if target == Day {
			width = 24
		}
		bump = fd.comps[target+1] >= width/2
	}
	if !bump {
		return comps, nil
	}

	// Increment via the calendar so month and day boundaries carry
	// correctly (e.g. Jan 31 23:59 ceiled to Day becomes Feb 1).
	t := time.Date(comps[Year], time.Month(comps[Month]), comps[Day], comps[Hour], comps[Minute], 0, 0, time.UTC)
	switch target {
	case Day:
		t = t.AddDate(0, 0, 1)
	case Hour:
		t = t.Add(time.Hour)
	case Minute:
		t = t.Add(time.Minute)
	}
	return [6]int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), 0}, nil
}

// Add converts the value to a full calendar instant (missing components
// zero-filled), applies the duration, and re-extracts only as many
// components as the original precision specified. Arithmetic never promotes
// precision; the timezone is carried over unchanged.
func (fd *FuzzyDatetime) Add(d time.Duration) (*FuzzyDatetime, error) {
	t := fd.Time(time.Time{}).Add(d)
	comps := [6]int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
	for p := fd.precision + 1; p <= Second; p++ {
		comps[p] = 0
	}
	out := &FuzzyDatetime{comps: comps, precision: fd.precision, tz: fd.tz}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sub subtracts a duration under the same precision rules as Add.
func (fd *FuzzyDatetime) Sub(d time.Duration) (*FuzzyDatetime, error) {
	return fd.Add(-d)
}
