package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguages(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercased and sorted", []string{"Tamil", "English"}, []string{"english", "tamil"}},
		{"duplicates removed", []string{"hindi", "Hindi", " hindi "}, []string{"hindi"}},
		{"empties dropped", []string{"", "  ", "telugu"}, []string{"telugu"}},
		{"empty defaults to english", nil, []string{"english"}},
		{"all blank defaults to english", []string{"", " "}, []string{"english"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Languages(tt.in))
		})
	}
}
