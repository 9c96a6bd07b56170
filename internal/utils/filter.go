package utils

import (
	"unicode"
)

// IsSeparator checks if a rune may appear inside a word
func IsSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '\''
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars checks if a string contains special characters
// (non-alphanumeric characters excluding in-word separators)
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsRepetitive reports strings made of one repeated character, e.g. "aaaa".
func IsRepetitive(s string) bool {
	if len(s) <= 3 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// IsWordToken checks if a dictionary entry looks like a word.
// Numbers, symbols and runs of one character are rejected.
func IsWordToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) || ContainsSpecialChars(s) || IsRepetitive(s) {
		return false
	}
	return true
}
