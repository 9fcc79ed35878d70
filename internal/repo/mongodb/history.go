package mongodb

import (
	"context"
	"fmt"

	"github.com/cibf/call-postprocessor/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *models.ConversationHistory) error
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.ConversationHistory, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *DB) HistoryRepository {
	return &historyRepo{
		collection: db.Database.Collection("conversationHistory"),
	}
}

// Create always inserts a new document; history entries are never updated.
func (r *historyRepo) Create(ctx context.Context, entry *models.ConversationHistory) error {
	entry.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create conversation history: %w", err)
	}
	return nil
}

func (r *historyRepo) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.ConversationHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.ConversationHistory
	for cursor.Next(ctx) {
		var entry models.ConversationHistory
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode conversation history: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return entries, nil
}
