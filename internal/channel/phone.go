package channel

import "strings"

// NormalizeDigits reduces a stored phone number to bare E.164 digits:
// everything non-numeric is stripped, a local trunk "0" is replaced by the
// country code, and a missing country code is prepended. "01012345678" with
// country code "20" becomes "201012345678".
func NormalizeDigits(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	if !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}
