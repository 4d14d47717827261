package fuzzydate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecisionByName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Precision
		wantErr  bool
	}{
		{name: "Year", input: "year", expected: Year},
		{name: "Second", input: "second", expected: Second},
		{name: "Case insensitive", input: "MONTH", expected: Month},
		{name: "Unknown name", input: "fortnight", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrecisionByName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrValue))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestPrecisionOrdering(t *testing.T) {
	all := Precisions()
	assert.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i])
	}
}

func TestPrecisionRange(t *testing.T) {
	assert.Equal(t, []Precision{Month, Day}, PrecisionRange(Month, Hour))
	assert.Equal(t, []Precision{Year, Month, Day, Hour, Minute, Second}, PrecisionRange(Year, Second+1))
	assert.Empty(t, PrecisionRange(Hour, Hour))
	assert.Empty(t, PrecisionRange(Second, Year))
}

func TestPrecisionString(t *testing.T) {
	assert.Equal(t, "minute", Minute.String())
	assert.Equal(t, "invalid", Precision(42).String())
	assert.False(t, Precision(-1).Valid())
}
