package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cibf/call-postprocessor/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AnalyticsRepository interface {
	Create(ctx context.Context, analytics *models.UserAnalytics) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserAnalytics, error)
	Replace(ctx context.Context, analytics *models.UserAnalytics) error
}

type analyticsRepo struct {
	collection *mongo.Collection
}

func NewAnalyticsRepository(db *DB) AnalyticsRepository {
	return &analyticsRepo{
		collection: db.Database.Collection("userAnalytics"),
	}
}

func (r *analyticsRepo) Create(ctx context.Context, analytics *models.UserAnalytics) error {
	analytics.ID = primitive.NewObjectID()
	analytics.CreatedAt = time.Now()
	analytics.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, analytics)
	if err != nil {
		return fmt.Errorf("failed to create analytics: %w", err)
	}
	return nil
}

func (r *analyticsRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserAnalytics, error) {
	var analytics models.UserAnalytics
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&analytics)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}
	return &analytics, nil
}

// Replace overwrites every field of the stored record while keeping its
// identifier. This is a full-document replace, not a field-level merge.
func (r *analyticsRepo) Replace(ctx context.Context, analytics *models.UserAnalytics) error {
	analytics.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": analytics.ID}, analytics)
	if err != nil {
		return fmt.Errorf("failed to replace analytics: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
