package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cibf/call-postprocessor/internal/models"
	"github.com/cibf/call-postprocessor/internal/normalize"
	"github.com/cibf/call-postprocessor/internal/repo/llm"
	"github.com/cibf/call-postprocessor/internal/repo/mongodb"
	"github.com/cibf/call-postprocessor/pkg/util"
)

type ProcessUsecase interface {
	// ProcessConversation runs the full pipeline: identifier extraction,
	// identity resolution, analytics upsert, history append.
	ProcessConversation(ctx context.Context, conversation string) (*models.ProcessResult, error)
	// FormatBudget is a standalone utility, not part of the main pipeline.
	FormatBudget(ctx context.Context, budget string) (string, error)
	GetUserHistory(ctx context.Context, userID string) ([]*models.ConversationHistory, error)
}

type processUsecase struct {
	userRepo      mongodb.UserRepository
	analyticsRepo mongodb.AnalyticsRepository
	historyRepo   mongodb.HistoryRepository
	gateway       llm.Gateway
	now           func() time.Time
}

func NewProcessUsecase(
	userRepo mongodb.UserRepository,
	analyticsRepo mongodb.AnalyticsRepository,
	historyRepo mongodb.HistoryRepository,
	gateway llm.Gateway,
) ProcessUsecase {
	return &processUsecase{
		userRepo:      userRepo,
		analyticsRepo: analyticsRepo,
		historyRepo:   historyRepo,
		gateway:       gateway,
		now:           time.Now,
	}
}

func (uc *processUsecase) ProcessConversation(ctx context.Context, conversation string) (*models.ProcessResult, error) {
	if strings.TrimSpace(conversation) == "" {
		return nil, models.ErrInvalidInput
	}

	// Phase 1: extract an identifier and detect languages.
	phone, email, err := uc.extractIdentifier(ctx, conversation)
	if err != nil {
		return nil, err
	}

	languages, err := uc.gateway.DetectLanguages(ctx, conversation)
	if err != nil {
		log.Errorw(ctx, "Language detection failed, defaulting to english", "error", err)
		languages = []string{"english"}
	}

	user, err := uc.resolveUser(ctx, conversation, phone, email)
	if err != nil {
		return nil, err
	}

	// Phase 2: derive and upsert analytics.
	analytics, err := uc.upsertAnalytics(ctx, conversation, user.ID)
	if err != nil {
		return nil, err
	}

	// Phase 3: append the history entry.
	history, err := uc.appendHistory(ctx, conversation, user.ID, languages)
	if err != nil {
		return nil, err
	}

	log.Infow(ctx, "Conversation processed",
		"user_id", user.ID.Hex(),
		"intent_level", analytics.IntentLevel,
		"languages", languages)

	return &models.ProcessResult{
		User:      user,
		Analytics: analytics,
		History:   history,
	}, nil
}

// extractIdentifier tries phone first, then email. Each extraction failure is
// soft on its own; only the absence of both rejects the request.
func (uc *processUsecase) extractIdentifier(ctx context.Context, conversation string) (phone, email string, err error) {
	phone, err = uc.gateway.ExtractPhone(ctx, conversation)
	if err == nil {
		log.Infow(ctx, "Extracted phone number", "phone", phone)
		return phone, "", nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		log.Warnw(ctx, "Phone extraction errored, falling back to email", "error", err)
	}

	email, err = uc.gateway.ExtractEmail(ctx, conversation)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", models.ErrExtractionFailed
		}
		return "", "", fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
	}

	log.Infow(ctx, "Extracted email", "email", email)
	return "", email, nil
}

// upsertAnalytics derives a fresh analytics document and either inserts it or
// fully overwrites the existing record for the user, keeping its identifier.
// A legacy record without a follow_up field gets one computed before the
// overwrite so the stored answer to "did this user ever agree to follow-up"
// is not silently dropped.
func (uc *processUsecase) upsertAnalytics(ctx context.Context, conversation string, userID primitive.ObjectID) (*models.UserAnalytics, error) {
	fields, err := uc.gateway.ExtractAnalytics(ctx, conversation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAnalyticsGeneration, err)
	}

	followUp, err := uc.gateway.DetectFollowUp(ctx, conversation)
	if err != nil {
		log.Errorw(ctx, "Follow-up detection failed, defaulting to false", "error", err)
		followUp = false
	}

	derived := &models.UserAnalytics{
		UserID:      userID,
		Country:     fields.Country,
		IntentLevel: models.ParseIntentLevel(fields.IntentLevel),
		FollowUp:    util.Ptr(followUp),
	}

	existing, err := uc.analyticsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		if err := uc.analyticsRepo.Create(ctx, derived); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrAnalyticsGeneration, err)
		}
		return derived, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up analytics: %w", err)
	}

	if existing.FollowUp == nil {
		// Legacy records predate the follow_up field; the overwrite below
		// backfills it with the freshly detected value.
		log.Infow(ctx, "Backfilling follow_up on legacy analytics record", "user_id", userID.Hex())
	}

	derived.ID = existing.ID
	derived.CreatedAt = existing.CreatedAt
	if err := uc.analyticsRepo.Replace(ctx, derived); err != nil {
		return nil, fmt.Errorf("failed to update analytics: %w", err)
	}
	return derived, nil
}

// appendHistory always inserts a new entry; users can have many conversations.
func (uc *processUsecase) appendHistory(ctx context.Context, conversation string, userID primitive.ObjectID, languages []string) (*models.ConversationHistory, error) {
	entry := &models.ConversationHistory{
		UserID:       userID,
		Conversation: normalize.Tags(conversation),
		Timestamp:    uc.now(),
		Languages:    languages,
	}

	if err := uc.historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to store conversation history: %w", err)
	}
	return entry, nil
}

func (uc *processUsecase) FormatBudget(ctx context.Context, budget string) (string, error) {
	return uc.gateway.FormatBudget(ctx, budget)
}

func (uc *processUsecase) GetUserHistory(ctx context.Context, userID string) ([]*models.ConversationHistory, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", models.ErrInvalidInput)
	}
	return uc.historyRepo.ListByUserID(ctx, id)
}
