package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationHistory is an append-only log entry. Entries are never updated
// or merged; each pipeline run produces exactly one.
type ConversationHistory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Conversation string             `bson:"conversation" json:"conversation"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	Languages    []string           `bson:"languages_used" json:"languages_used"`
}
