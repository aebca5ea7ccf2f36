package utils

import (
	"regexp"
	"strings"
	"unicode"

	"pesanet/kopa_lending/internal/pkg/consts"
)

var nonDigit = regexp.MustCompile(`\D`)

// CleanPhoneNumber strips everything but digits and keeps the trailing 9 to
// 12 digits, so "+263 77 123-4567" and "0771234567" normalise the same way.
func CleanPhoneNumber(phone string) string {
	cleaned := nonDigit.ReplaceAllString(phone, "")

	if len(cleaned) >= 12 {
		cleaned = cleaned[len(cleaned)-12:]
	} else if len(cleaned) >= 10 {
		cleaned = cleaned[len(cleaned)-10:]
	} else if len(cleaned) >= 9 {
		cleaned = cleaned[len(cleaned)-9:]
	}

	return cleaned
}

// IsValidPhoneNumber checks a cleaned number against the accepted prefixes.
func IsValidPhoneNumber(cleaned string) (bool, error) {
	regex := regexp.MustCompile(consts.ValidPhonePrefixes)

	if !regex.MatchString(cleaned) {
		return false, consts.ErrorPhoneFormatInvalid
	}

	if len(cleaned) < 9 || len(cleaned) > 12 {
		return false, consts.ErrorPhoneFormatInvalid
	}

	return true, nil
}

// IsValidPin accepts exactly four digits.
func IsValidPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, ch := range pin {
		if !unicode.IsDigit(ch) {
			return false
		}
	}
	return true
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
