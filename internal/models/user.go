package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root identity record. At least one of Email/PhoneNumber is
// present at creation; phone numbers are stored as "91" + 10 digits.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
