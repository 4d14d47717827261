package services

import "github.com/microcosm-cc/bluemonday"

// memoPolicy strips all markup: memo and note fields are plain text.
var memoPolicy = bluemonday.StrictPolicy()

// SanitizeText removes any HTML from a user-entered text field before it is
// persisted.
func SanitizeText(s string) string {
	return memoPolicy.Sanitize(s)
}
