package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cibf/call-postprocessor/internal/models"
	"github.com/cibf/call-postprocessor/internal/repo/llm"
	"github.com/cibf/call-postprocessor/pkg/util"
)

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeAnalyticsRepo struct {
	records []*models.UserAnalytics
}

func (r *fakeAnalyticsRepo) Create(_ context.Context, a *models.UserAnalytics) error {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	copied := *a
	r.records = append(r.records, &copied)
	return nil
}

func (r *fakeAnalyticsRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*models.UserAnalytics, error) {
	for _, a := range r.records {
		if a.UserID == userID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeAnalyticsRepo) Replace(_ context.Context, a *models.UserAnalytics) error {
	for i, existing := range r.records {
		if existing.ID == a.ID {
			a.UpdatedAt = time.Now()
			copied := *a
			r.records[i] = &copied
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeHistoryRepo struct {
	entries []*models.ConversationHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, e *models.ConversationHistory) error {
	e.ID = primitive.NewObjectID()
	copied := *e
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeHistoryRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]*models.ConversationHistory, error) {
	var out []*models.ConversationHistory
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeGateway struct {
	phone        string
	phoneErr     error
	email        string
	emailErr     error
	languages    []string
	languagesErr error
	profile      llm.Profile
	profileErr   error
	followUp     bool
	followUpErr  error
	analytics    llm.AnalyticsFields
	analyticsErr error

	followUpCalls int
}

func (g *fakeGateway) ExtractPhone(context.Context, string) (string, error) {
	if g.phoneErr != nil {
		return "", g.phoneErr
	}
	return g.phone, nil
}

func (g *fakeGateway) ExtractEmail(context.Context, string) (string, error) {
	if g.emailErr != nil {
		return "", g.emailErr
	}
	return g.email, nil
}

func (g *fakeGateway) DetectLanguages(context.Context, string) ([]string, error) {
	if g.languagesErr != nil {
		return nil, g.languagesErr
	}
	return g.languages, nil
}

func (g *fakeGateway) ExtractProfile(context.Context, string) (*llm.Profile, error) {
	if g.profileErr != nil {
		return nil, g.profileErr
	}
	p := g.profile
	return &p, nil
}

func (g *fakeGateway) DetectFollowUp(context.Context, string) (bool, error) {
	g.followUpCalls++
	if g.followUpErr != nil {
		return false, g.followUpErr
	}
	return g.followUp, nil
}

func (g *fakeGateway) ExtractAnalytics(context.Context, string) (*llm.AnalyticsFields, error) {
	if g.analyticsErr != nil {
		return nil, g.analyticsErr
	}
	a := g.analytics
	return &a, nil
}

func (g *fakeGateway) FormatBudget(_ context.Context, budget string) (string, error) {
	return budget, nil
}

type fixture struct {
	uc        ProcessUsecase
	users     *fakeUserRepo
	analytics *fakeAnalyticsRepo
	history   *fakeHistoryRepo
	gateway   *fakeGateway
}

func newFixture(gw *fakeGateway) *fixture {
	users := &fakeUserRepo{}
	analytics := &fakeAnalyticsRepo{}
	history := &fakeHistoryRepo{}
	return &fixture{
		uc:        NewProcessUsecase(users, analytics, history, gw),
		users:     users,
		analytics: analytics,
		history:   history,
		gateway:   gw,
	}
}

const transcript = "Natalie (Agent): Hello, may I have your number?\nUser: Sure, +91 98765 43210"

func TestProcessConversationCreatesUserByPhone(t *testing.T) {
	f := newFixture(&fakeGateway{
		phone:     "9876543210",
		languages: []string{"english", "tamil"},
		profile:   llm.Profile{Name: "Ravi Kumar", Email: "Ravi@Example.com"},
		followUp:  true,
		analytics: llm.AnalyticsFields{Country: "India", IntentLevel: "bofu"},
	})

	result, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)

	require.NotNil(t, result.User)
	assert.Equal(t, "919876543210", result.User.PhoneNumber)
	assert.Equal(t, "Ravi Kumar", result.User.Name)
	assert.Equal(t, "ravi@example.com", result.User.Email)
	assert.Len(t, f.users.users, 1)

	require.NotNil(t, result.Analytics)
	assert.Equal(t, result.User.ID, result.Analytics.UserID)
	assert.Equal(t, models.IntentBOFU, result.Analytics.IntentLevel)
	assert.Equal(t, "India", result.Analytics.Country)
	require.NotNil(t, result.Analytics.FollowUp)
	assert.True(t, *result.Analytics.FollowUp)

	require.NotNil(t, result.History)
	assert.Equal(t, "Agent: Hello, may I have your number?\nUser: Sure, +91 98765 43210", result.History.Conversation)
	assert.Equal(t, []string{"english", "tamil"}, result.History.Languages)
}

func TestProcessConversationDeduplicatesByPhone(t *testing.T) {
	gw := &fakeGateway{
		phone:     "9876543210",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar"},
		analytics: llm.AnalyticsFields{Country: "India", IntentLevel: "TOFU"},
	}
	f := newFixture(gw)

	first, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)

	gw.analytics = llm.AnalyticsFields{Country: "India", IntentLevel: "MOFU"}
	second, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, f.users.users, 1)

	// Analytics is a single record, fully overwritten with the new values.
	assert.Len(t, f.analytics.records, 1)
	assert.Equal(t, first.Analytics.ID, second.Analytics.ID)
	assert.Equal(t, models.IntentMOFU, second.Analytics.IntentLevel)

	// History is append-only: one entry per run.
	assert.Len(t, f.history.entries, 2)
}

func TestProcessConversationFallsBackToEmail(t *testing.T) {
	f := newFixture(&fakeGateway{
		phoneErr:  models.ErrNotFound,
		email:     "ravi@example.com",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar", Email: "ravi@example.com"},
		analytics: llm.AnalyticsFields{IntentLevel: "TOFU"},
	})

	result, err := f.uc.ProcessConversation(context.Background(), "User: my email is ravi@example.com")
	require.NoError(t, err)
	assert.Empty(t, result.User.PhoneNumber)
	assert.Equal(t, "ravi@example.com", result.User.Email)
}

func TestProcessConversationReusesUserFoundAtPreInsertRecheck(t *testing.T) {
	gw := &fakeGateway{
		phone:     "9876543210",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar", Email: "ravi@example.com"},
		analytics: llm.AnalyticsFields{IntentLevel: "TOFU"},
	}
	f := newFixture(gw)

	// Known only by email; the extracted phone matches nothing, so the first
	// lookup misses and the collision surfaces at the re-check before insert.
	existing := &models.User{Name: "Ravi Kumar", Email: "ravi@example.com"}
	require.NoError(t, f.users.Create(context.Background(), existing))

	result, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, result.User.ID)
	assert.Len(t, f.users.users, 1)
	// The stored record is authoritative; it is reused, not rewritten.
	assert.Empty(t, result.User.PhoneNumber)
}

func TestProcessConversationIdentifierEmailWinsOverProfile(t *testing.T) {
	f := newFixture(&fakeGateway{
		phoneErr:  models.ErrNotFound,
		email:     "primary@example.com",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar", Email: "other@example.com"},
		analytics: llm.AnalyticsFields{IntentLevel: "TOFU"},
	})

	result, err := f.uc.ProcessConversation(context.Background(), "User: reach me at primary@example.com")
	require.NoError(t, err)

	assert.Equal(t, "primary@example.com", result.User.Email)
	require.Len(t, f.users.users, 1)
	assert.Equal(t, "primary@example.com", f.users.users[0].Email)
}

func TestProcessConversationNoIdentifier(t *testing.T) {
	f := newFixture(&fakeGateway{
		phoneErr: models.ErrNotFound,
		emailErr: models.ErrNotFound,
	})

	_, err := f.uc.ProcessConversation(context.Background(), "User: hello?")
	assert.ErrorIs(t, err, models.ErrExtractionFailed)
	assert.Empty(t, f.users.users)
	assert.Empty(t, f.analytics.records)
	assert.Empty(t, f.history.entries)
}

func TestProcessConversationBlankInput(t *testing.T) {
	f := newFixture(&fakeGateway{})

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := f.uc.ProcessConversation(context.Background(), in)
		assert.ErrorIs(t, err, models.ErrInvalidInput, "input %q", in)
	}
	assert.Empty(t, f.history.entries)
}

func TestProcessConversationLegacyFollowUpBackfill(t *testing.T) {
	gw := &fakeGateway{
		phone:     "9876543210",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar"},
		followUp:  true,
		analytics: llm.AnalyticsFields{Country: "India", IntentLevel: "MOFU"},
	}
	f := newFixture(gw)

	user := &models.User{PhoneNumber: "919876543210", Name: "Ravi Kumar"}
	require.NoError(t, f.users.Create(context.Background(), user))

	// Legacy record written before follow_up existed.
	legacy := &models.UserAnalytics{UserID: user.ID, Country: "India", IntentLevel: models.IntentTOFU}
	require.NoError(t, f.analytics.Create(context.Background(), legacy))

	result, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, legacy.ID, result.Analytics.ID)
	require.NotNil(t, result.Analytics.FollowUp)
	assert.True(t, *result.Analytics.FollowUp)
	assert.Equal(t, models.IntentMOFU, result.Analytics.IntentLevel)
}

func TestProcessConversationExistingFollowUpNotRecomputed(t *testing.T) {
	gw := &fakeGateway{
		phone:     "9876543210",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar"},
		analytics: llm.AnalyticsFields{IntentLevel: "TOFU"},
	}
	f := newFixture(gw)

	user := &models.User{PhoneNumber: "919876543210"}
	require.NoError(t, f.users.Create(context.Background(), user))
	existing := &models.UserAnalytics{
		UserID:      user.ID,
		IntentLevel: models.IntentTOFU,
		FollowUp:    util.Ptr(true),
	}
	require.NoError(t, f.analytics.Create(context.Background(), existing))

	_, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)

	// One detection for the derived document, no second backfill call.
	assert.Equal(t, 1, gw.followUpCalls)
}

func TestProcessConversationLanguageDetectionDegrades(t *testing.T) {
	f := newFixture(&fakeGateway{
		phone:        "9876543210",
		languagesErr: context.DeadlineExceeded,
		profile:      llm.Profile{Name: "Ravi Kumar"},
		analytics:    llm.AnalyticsFields{IntentLevel: "TOFU"},
	})

	result, err := f.uc.ProcessConversation(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, []string{"english"}, result.History.Languages)
}

func TestProcessConversationProfileFailureIsFatal(t *testing.T) {
	f := newFixture(&fakeGateway{
		phone:      "9876543210",
		languages:  []string{"english"},
		profileErr: context.DeadlineExceeded,
	})

	_, err := f.uc.ProcessConversation(context.Background(), transcript)
	assert.ErrorIs(t, err, models.ErrUserCreation)
	assert.Empty(t, f.users.users)
}

func TestProcessConversationAnalyticsFailureIsFatal(t *testing.T) {
	f := newFixture(&fakeGateway{
		phone:        "9876543210",
		languages:    []string{"english"},
		profile:      llm.Profile{Name: "Ravi Kumar"},
		analyticsErr: context.DeadlineExceeded,
	})

	_, err := f.uc.ProcessConversation(context.Background(), transcript)
	assert.ErrorIs(t, err, models.ErrAnalyticsGeneration)

	// The user write has already happened; there is no rollback.
	assert.Len(t, f.users.users, 1)
	assert.Empty(t, f.history.entries)
}

func TestAppendHistoryIsAppendOnly(t *testing.T) {
	gw := &fakeGateway{
		phone:     "9876543210",
		languages: []string{"english"},
		profile:   llm.Profile{Name: "Ravi Kumar"},
		analytics: llm.AnalyticsFields{IntentLevel: "TOFU"},
	}
	f := newFixture(gw)

	const n = 4
	var userID primitive.ObjectID
	for i := 0; i < n; i++ {
		result, err := f.uc.ProcessConversation(context.Background(), transcript)
		require.NoError(t, err)
		userID = result.User.ID
	}

	entries, err := f.uc.GetUserHistory(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Len(t, entries, n)

	seen := make(map[primitive.ObjectID]bool)
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate history id %s", e.ID.Hex())
		seen[e.ID] = true
	}
}

func TestGetUserHistoryInvalidID(t *testing.T) {
	f := newFixture(&fakeGateway{})

	_, err := f.uc.GetUserHistory(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
