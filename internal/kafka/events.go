package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/cibf/call-postprocessor/internal/models"
)

const patternCallCompleted = "call.completed"

// decodeTranscriptEvent parses a raw message and returns nil for events this
// service does not care about.
func decodeTranscriptEvent(value []byte) (*models.TranscriptEvent, error) {
	var event models.TranscriptEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, fmt.Errorf("unmarshal transcript event: %w", err)
	}
	if event.Pattern != patternCallCompleted {
		return nil, nil
	}
	if event.Data.Conversation == "" {
		return nil, fmt.Errorf("event %q has no conversation", event.Data.CallID)
	}
	return &event, nil
}
