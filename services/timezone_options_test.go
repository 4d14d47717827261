package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneOptions(t *testing.T) {
	options := TimezoneOptions()
	require.NotEmpty(t, options)

	assert.Equal(t, "UTC", options[0].Name)
	assert.Equal(t, "UTC (UTC+00:00)", options[0].Label)

	byName := map[string]string{}
	for _, opt := range options {
		byName[opt.Name] = opt.Label
	}
	assert.Equal(t, "Asia/Tokyo (UTC+09:00)", byName["Asia/Tokyo"])
	assert.Equal(t, "America/St_Johns (UTC-03:30)", byName["America/St_Johns"])
}

func TestResolveTimezone(t *testing.T) {
	tz, err := ResolveTimezone("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, 540, tz.OffsetMinutes())

	tz, err = ResolveTimezone("+05:30")
	require.NoError(t, err)
	assert.Equal(t, 330, tz.OffsetMinutes())

	tz, err = ResolveTimezone("")
	assert.NoError(t, err)
	assert.Nil(t, tz)

	_, err = ResolveTimezone("Mars/Olympus")
	assert.Error(t, err)
}
