package services

import (
	"fmt"

	"livre_manager_go/fuzzydate"
)

// TimezoneOption is one entry of the timezone selector: the canonical name
// plus a display label carrying the UTC offset, e.g. "Asia/Tokyo (UTC+09:00)".
type TimezoneOption struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// TimezoneOptions lists every registry zone in registry order (UTC first,
// then by offset, then name), labelled for form dropdowns.
func TimezoneOptions() []TimezoneOption {
	zones := fuzzydate.Timezones()
	options := make([]TimezoneOption, 0, len(zones))
	for _, tz := range zones {
		options = append(options, TimezoneOption{
			Name:  tz.Name(),
			Label: fmt.Sprintf("%s (%s)", tz.Name(), tz.FormatOffset(true, ":")),
		})
	}
	return options
}

// ResolveTimezone resolves a user-supplied timezone token (name,
// abbreviation, Z or numeric offset) against the registry. An empty token
// resolves to nil, meaning no timezone.
func ResolveTimezone(token string) (*fuzzydate.Timezone, error) {
	if token == "" {
		return nil, nil
	}
	return fuzzydate.ParseTimezone(token)
}
