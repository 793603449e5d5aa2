package utils

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	phoneCharsRegex = regexp.MustCompile(`^[\d+\s\-]+$`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

// ValidPhone accepts digits, spaces, '+' and '-' with 9 to 15 digits.
func ValidPhone(phone string) bool {
	if !phoneCharsRegex.MatchString(phone) {
		return false
	}
	n := len(nonDigitRegex.ReplaceAllString(phone, ""))
	return n >= 9 && n <= 15
}

// NormalizePostalCode turns "00950" or "00-950" into "00-950". ok is false
// when the input does not hold exactly five digits.
func NormalizePostalCode(code string) (string, bool) {
	digits := nonDigitRegex.ReplaceAllString(code, "")
	if len(digits) != 5 {
		return "", false
	}
	return digits[:2] + "-" + digits[2:], true
}

// MinLen trims s and reports whether it has at least n characters.
func MinLen(s string, n int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) >= n
}

func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
