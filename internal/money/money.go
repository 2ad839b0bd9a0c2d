// Package money converts between decimal amount strings and integer cents.
// Amounts are stored as int64 cents throughout the core so that sums and
// budget arithmetic stay exact.
package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	apperrors "fintrack/internal/errors"
)

// ParseCents converts a non-negative decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted.
//
// Examples:
//
//	ParseCents("3.50")  -> 350, nil
//	ParseCents("3,50")  -> 350, nil
//	ParseCents("3.505") -> 351, nil
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be signed")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount format")
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount format")
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount format")
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount out of range")
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	return iv*100 + fracCents, nil
}

// FormatCents renders cents as a decimal string with two fractional digits.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
