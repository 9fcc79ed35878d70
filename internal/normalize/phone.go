package normalize

import "strings"

// Phone canonicalizes a free-form phone string to a fixed-width 10-digit
// national number. It is total: any input yields exactly 10 digit characters.
//
// The order of the checks matters: an overlong number beginning with "91" is
// handled by stripping the country prefix, not by taking the last 10 digits,
// and a 10-digit number that happens to start with "91" is left alone.
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "91") && len(digits) > 10:
		return digits[2:]
	case len(digits) > 10:
		return digits[len(digits)-10:]
	case len(digits) < 10:
		return strings.Repeat("0", 10-len(digits)) + digits
	default:
		return digits
	}
}
