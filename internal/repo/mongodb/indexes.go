package mongodb

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints the identity resolver
// relies on. The application-level find-then-create sequence is not
// transactional, so duplicate prevention ultimately rests on these indexes.
// Sparse, because a user carries either a phone number or an email, not
// necessarily both.
func EnsureIndexes(ctx context.Context, db *DB) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := db.Database.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	analytics := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Database.Collection("userAnalytics").Indexes().CreateOne(ctx, analytics); err != nil {
		return fmt.Errorf("failed to create analytics index: %w", err)
	}

	history := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	}
	if _, err := db.Database.Collection("conversationHistory").Indexes().CreateOne(ctx, history); err != nil {
		return fmt.Errorf("failed to create history index: %w", err)
	}

	log.Infow(ctx, "Ensured collection indexes",
		"collections", []string{"users", "userAnalytics", "conversationHistory"})
	return nil
}
