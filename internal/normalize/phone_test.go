package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"country code with spaces", "+91 98765 43210", "9876543210"},
		{"country code no spaces", "919876543210", "9876543210"},
		{"exactly ten digits", "9876543210", "9876543210"},
		{"ten digits starting with 91 is not stripped", "9198765432", "9198765432"},
		{"short number padded", "12345", "0000012345"},
		{"overlong without 91 prefix keeps last ten", "123456789012", "3456789012"},
		{"dashes and parens stripped", "(987) 654-3210", "9876543210"},
		{"empty input", "", "0000000000"},
		{"no digits at all", "call me maybe", "0000000000"},
		{"91 prefix with punctuation", "+91-98765-43210", "9876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestPhoneTotality(t *testing.T) {
	inputs := []string{
		"", "1", "12345", "9876543210", "919876543210", "00919876543210",
		"+91 98765 43210", "hello", "98-76-54-32-10-99",
	}
	for _, in := range inputs {
		got := Phone(in)
		assert.Len(t, got, 10, "input %q", in)
		for _, r := range got {
			assert.True(t, r >= '0' && r <= '9', "input %q produced non-digit %q", in, r)
		}
	}
}

func TestPhoneIdempotent(t *testing.T) {
	inputs := []string{"+91 98765 43210", "12345", "123456789012", "9876543210", ""}
	for _, in := range inputs {
		once := Phone(in)
		assert.Equal(t, once, Phone(once), "input %q", in)
	}
}
