package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "agent display name with role",
			in:   "Natalie (Agent): Hello\nUser: Hi",
			want: "Agent: Hello\nUser: Hi",
		},
		{
			name: "role with name in parens",
			in:   "Agent (natalie): Good morning",
			want: "Agent: Good morning",
		},
		{
			name: "bare agent tag case insensitive",
			in:   "AGENT: anything I can help with?",
			want: "Agent: anything I can help with?",
		},
		{
			name: "bare display name",
			in:   "Natalie: Sure, let me check",
			want: "Agent: Sure, let me check",
		},
		{
			name: "user tag case insensitive",
			in:   "user : yes please",
			want: "User: yes please",
		},
		{
			name: "narration and blank lines pass through",
			in:   "[call connected]\n\nAgent: Hello",
			want: "[call connected]\n\nAgent: Hello",
		},
		{
			name: "unrecognized speaker left alone",
			in:   "Ramesh: who is this?",
			want: "Ramesh: who is this?",
		},
		{
			name: "no cross line state",
			in:   "Agent: one\nsome narration\nUser: two",
			want: "Agent: one\nsome narration\nUser: two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.in))
		})
	}
}

func TestTagsIdempotent(t *testing.T) {
	in := "Natalie (Agent): Hello there\nUSER: hi\nnarration line\nAgent (Bob): bye"
	once := Tags(in)
	assert.Equal(t, once, Tags(once))
}
