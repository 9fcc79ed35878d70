package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IntentLevel is the marketing-funnel stage derived from a conversation.
type IntentLevel string

const (
	IntentTOFU IntentLevel = "TOFU"
	IntentMOFU IntentLevel = "MOFU"
	IntentBOFU IntentLevel = "BOFU"
)

// ParseIntentLevel maps free-form model output to a valid funnel stage,
// defaulting to TOFU.
func ParseIntentLevel(s string) IntentLevel {
	switch IntentLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case IntentMOFU:
		return IntentMOFU
	case IntentBOFU:
		return IntentBOFU
	default:
		return IntentTOFU
	}
}

// UserAnalytics holds the per-user analytics record. Exactly zero or one
// record exists per user; reprocessing a conversation overwrites all fields
// while keeping the record identifier.
//
// FollowUp is a pointer so a legacy record written before the field existed
// can be told apart from an explicit false.
type UserAnalytics struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Country     string             `bson:"country" json:"country"`
	IntentLevel IntentLevel        `bson:"intent_level" json:"intent_level"`
	FollowUp    *bool              `bson:"follow_up,omitempty" json:"follow_up,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
