package llm

import (
	"context"
	"fmt"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/cibf/call-postprocessor/internal/config"
	"github.com/cibf/call-postprocessor/internal/models"
	"github.com/cibf/call-postprocessor/internal/normalize"
)

// Profile is the name/email pair derived for user creation.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AnalyticsFields is the raw analytics extraction result before enum
// coercion.
type AnalyticsFields struct {
	Country     string `json:"country"`
	IntentLevel string `json:"intent_level"`
}

// Gateway is the external language-understanding capability. One method per
// operation, typed results throughout. Soft operations (languages, budget)
// absorb model failures into documented defaults; the rest surface errors so
// the pipeline can decide whether the failure is fatal.
type Gateway interface {
	// ExtractPhone returns the normalized 10-digit national number, or
	// models.ErrNotFound when the transcript carries none.
	ExtractPhone(ctx context.Context, conversation string) (string, error)
	// ExtractEmail returns the lowercased standard-format address, honoring
	// most-recent-correction-wins, or models.ErrNotFound.
	ExtractEmail(ctx context.Context, conversation string) (string, error)
	// DetectLanguages never returns an empty list; on model failure it
	// degrades to ["english"].
	DetectLanguages(ctx context.Context, conversation string) ([]string, error)
	ExtractProfile(ctx context.Context, conversation string) (*Profile, error)
	DetectFollowUp(ctx context.Context, conversation string) (bool, error)
	ExtractAnalytics(ctx context.Context, conversation string) (*AnalyticsFields, error)
	// FormatBudget renders an Indian-style grouped yearly range. Already
	// formatted input skips the model call; on model failure the input text
	// is returned unchanged.
	FormatBudget(ctx context.Context, budget string) (string, error)
}

type genkitGateway struct {
	genkit *genkit.Genkit
	model  string
}

func NewGateway(g *genkit.Genkit, cfg *config.Config) Gateway {
	return &genkitGateway{
		genkit: g,
		model:  cfg.LLM.Model,
	}
}

const notFoundMarker = "NOT_FOUND"

func (gw *genkitGateway) ExtractPhone(ctx context.Context, conversation string) (string, error) {
	raw, err := genkit.GenerateText(ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(phoneSystemPrompt),
		ai.WithPrompt(phonePromptFmt, conversation),
	)
	if err != nil {
		return "", fmt.Errorf("generate phone extraction: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == notFoundMarker {
		return "", models.ErrNotFound
	}
	if !strings.ContainsAny(raw, "0123456789") {
		log.Warnw(ctx, "Phone extraction returned no digits", "raw", raw)
		return "", models.ErrNotFound
	}

	return normalize.Phone(raw), nil
}

func (gw *genkitGateway) ExtractEmail(ctx context.Context, conversation string) (string, error) {
	raw, err := genkit.GenerateText(ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(emailSystemPrompt),
		ai.WithPrompt(emailPromptFmt, conversation),
	)
	if err != nil {
		return "", fmt.Errorf("generate email extraction: %w", err)
	}

	email := cleanEmail(raw)
	if email == "" || email == strings.ToLower(notFoundMarker) {
		return "", models.ErrNotFound
	}
	if !isValidEmail(email) {
		log.Warnw(ctx, "Invalid email format extracted", "email", email)
		return "", models.ErrNotFound
	}

	return email, nil
}

func cleanEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	email = strings.Trim(email, `"'`)
	return strings.TrimRight(email, ".,;:!?")
}

func isValidEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}
	return strings.Contains(domain, ".")
}

type languagesPayload struct {
	Languages []string `json:"languages"`
}

func (gw *genkitGateway) DetectLanguages(ctx context.Context, conversation string) ([]string, error) {
	payload, _, err := genkit.GenerateData[languagesPayload](ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(languagesSystemPrompt),
		ai.WithPrompt(languagesPromptFmt, conversation),
	)
	if err != nil {
		log.Errorw(ctx, "Language detection failed, defaulting to english", "error", err)
		return []string{"english"}, nil
	}

	return normalize.Languages(payload.Languages), nil
}

func (gw *genkitGateway) ExtractProfile(ctx context.Context, conversation string) (*Profile, error) {
	profile, _, err := genkit.GenerateData[Profile](ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(profileSystemPrompt),
		ai.WithPrompt(profilePromptFmt, conversation),
	)
	if err != nil {
		return nil, fmt.Errorf("generate profile extraction: %w", err)
	}

	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	return profile, nil
}

type followUpPayload struct {
	FollowUp bool `json:"follow_up"`
}

func (gw *genkitGateway) DetectFollowUp(ctx context.Context, conversation string) (bool, error) {
	payload, _, err := genkit.GenerateData[followUpPayload](ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(followUpSystemPrompt),
		ai.WithPrompt(followUpPromptFmt, conversation),
	)
	if err != nil {
		return false, fmt.Errorf("generate follow-up detection: %w", err)
	}
	return payload.FollowUp, nil
}

func (gw *genkitGateway) ExtractAnalytics(ctx context.Context, conversation string) (*AnalyticsFields, error) {
	fields, _, err := genkit.GenerateData[AnalyticsFields](ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(analyticsSystemPrompt),
		ai.WithPrompt(analyticsPromptFmt, conversation),
	)
	if err != nil {
		return nil, fmt.Errorf("generate analytics extraction: %w", err)
	}
	return fields, nil
}

func (gw *genkitGateway) FormatBudget(ctx context.Context, budget string) (string, error) {
	budget = strings.TrimSpace(budget)
	if budget == "" {
		return "", nil
	}
	if normalize.IsIndianBudgetRange(budget) {
		return budget, nil
	}

	formatted, err := genkit.GenerateText(ctx, gw.genkit,
		ai.WithModelName(gw.model),
		ai.WithSystem(budgetSystemPrompt),
		ai.WithPrompt(budgetPromptFmt, budget),
	)
	if err != nil {
		log.Errorw(ctx, "Budget formatting failed, keeping original text", "error", err, "budget", budget)
		return budget, nil
	}

	return strings.Trim(strings.TrimSpace(formatted), `"'`), nil
}
