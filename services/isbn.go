package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidISBN10      = errors.New("invalid ISBN-10 format")
	ErrInvalidISBN13      = errors.New("invalid ISBN-13 format")
	ErrUnconvertibleISBN  = errors.New("ISBN-13 must start with '978' for conversion to ISBN-10")
	ErrISBNCheckDigit     = errors.New("ISBN check digit mismatch")
	ErrUnrecognizableISBN = errors.New("not a recognizable ISBN")
)

// ISBN10To13 converts an ISBN-10 to its ISBN-13 form (978 prefix, mod-10
// check digit). Hyphens in the input are ignored.
func ISBN10To13(isbn10 string) (string, error) {
	isbn10 = strings.ReplaceAll(isbn10, "-", "")
	if !isValidISBN10Shape(isbn10) {
		return "", fmt.Errorf("%w: %q", ErrInvalidISBN10, isbn10)
	}

	core := "978" + isbn10[:9]
	return core + string(isbn13CheckDigit(core)), nil
}

// ISBN13To10 converts a 978-prefixed ISBN-13 back to ISBN-10 (mod-11 check
// digit, 'X' for ten). Other prefixes have no ISBN-10 form and are rejected.
func ISBN13To10(isbn13 string) (string, error) {
	isbn13 = strings.ReplaceAll(isbn13, "-", "")
	if len(isbn13) != 13 || !isDigits(isbn13) {
		return "", fmt.Errorf("%w: %q", ErrInvalidISBN13, isbn13)
	}
	if !strings.HasPrefix(isbn13, "978") {
		return "", fmt.Errorf("%w: %q", ErrUnconvertibleISBN, isbn13)
	}

	core := isbn13[3:12]
	return core + string(isbn10CheckDigit(core)), nil
}

// ValidateISBN checks the given string as either form and verifies its check
// digit. Returns the cleaned (hyphen-free) ISBN.
func ValidateISBN(isbn string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	switch len(cleaned) {
	case 10:
		if !isValidISBN10Shape(cleaned) {
			return "", fmt.Errorf("%w: %q", ErrInvalidISBN10, isbn)
		}
		if cleaned[9] != byte(isbn10CheckDigit(cleaned[:9])) {
			return "", fmt.Errorf("%w: %q", ErrISBNCheckDigit, isbn)
		}
		return cleaned, nil
	case 13:
		if !isDigits(cleaned) {
			return "", fmt.Errorf("%w: %q", ErrInvalidISBN13, isbn)
		}
		if cleaned[12] != byte(isbn13CheckDigit(cleaned[:12])) {
			return "", fmt.Errorf("%w: %q", ErrISBNCheckDigit, isbn)
		}
		return cleaned, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizableISBN, isbn)
	}
}

func isValidISBN10Shape(s string) bool {
	if len(s) != 10 || !isDigits(s[:9]) {
		return false
	}
	last := s[9]
	return last == 'X' || (last >= '0' && last <= '9')
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// isbn10CheckDigit computes the weighted mod-11 check digit over the nine
// core digits.
func isbn10CheckDigit(core string) rune {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += (10 - i) * int(core[i]-'0')
	}
	rem := (11 - sum%11) % 11
	if rem == 10 {
		return 'X'
	}
	return rune('0' + rem)
}

// isbn13CheckDigit computes the alternating 1/3 mod-10 check digit over the
// twelve core digits.
func isbn13CheckDigit(core string) rune {
	sum := 0
	for i := 0; i < 12; i++ {
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += weight * int(core[i]-'0')
	}
	return rune('0' + (10-sum%10)%10)
}
