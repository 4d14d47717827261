package fuzzydate

import "strings"

// Precision identifies the deepest calendar component explicitly known for a
// datetime value. The six levels form a total order: Year < Month < Day <
// Hour < Minute < Second.
type Precision int

const (
	Year Precision = iota
	Month
	Day
	Hour
	Minute
	Second
)

// MaxPrecision is the deepest precision level.
const MaxPrecision = Second

var precisionNames = [...]string{"year", "month", "day", "hour", "minute", "second"}

// Valid reports whether p is one of the six defined precision levels.
func (p Precision) Valid() bool {
	return p >= Year && p <= Second
}

func (p Precision) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return precisionNames[p]
}

// PrecisionByName resolves a precision level from its lowercase name
// ("year" through "second"). Unknown names are a value error.
func PrecisionByName(name string) (Precision, error) {
	for i, n := range precisionNames {
		if n == strings.ToLower(name) {
			return Precision(i), nil
		}
	}
	return 0, newValueError("unknown precision: "+name, map[string]any{"input": name})
}

// Precisions returns all six levels in order.
func Precisions() []Precision {
	return []Precision{Year, Month, Day, Hour, Minute, Second}
}

// PrecisionRange returns the ordered levels in the half-open interval
// [from, to). An empty slice is returned when from >= to.
func PrecisionRange(from, to Precision) []Precision {
	if from < Year {
		from = Year
	}
	if to > Second+1 {
		to = Second + 1
	}
	var out []Precision
	for p := from; p < to; p++ {
		out = append(out, p)
	}
	return out
}
