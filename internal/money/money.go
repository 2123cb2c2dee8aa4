// Package money converts between decimal amount strings and integer cents.
// All arithmetic in the application happens on cents so sums stay exact.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrInvalidAmount is returned for amounts that are malformed, negative
// or zero.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents converts a decimal string to cents with half-up rounding on
// the third decimal place.  Both dot (12.34) and comma (12,34) separators
// are accepted.  Only strictly positive amounts are valid.
//
// Examples:
//
//	ParseCents("12.34")  -> 1234, nil
//	ParseCents("12,34")  -> 1234, nil
//	ParseCents("12.344") -> 1234, nil (rounds down)
//	ParseCents("12.345") -> 1235, nil (rounds up)
func ParseCents(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot; reject explicit signs so negative
	// and "+" prefixed values fail uniformly.
	norm := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ',' {
			r = '.'
		}
		if r == '+' || r == '-' {
			return 0, ErrInvalidAmount
		}
		if !unicode.IsSpace(r) {
			norm = append(norm, r)
		}
	}
	intPart, fracPart := string(norm), ""
	for i, r := range norm {
		if r == '.' {
			intPart, fracPart = string(norm[:i]), string(norm[i+1:])
			break
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Guard against overflow when scaling to cents.
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	cents := iv*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// FormatCents renders cents as a decimal string with two fractional
// digits, e.g. 1234 -> "12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
