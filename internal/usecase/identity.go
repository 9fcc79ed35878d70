package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/cibf/call-postprocessor/internal/models"
)

// Phone numbers are stored with the country prefix attached.
const phoneStoragePrefix = "91"

// resolveUser finds or creates the unique user for an extracted identifier.
// Phone takes precedence: a phone match short-circuits without consulting
// email. The caller guarantees at least one of phone/email is set.
//
// The find-then-create sequence is not transactional; a second existence
// check runs immediately before the insert to narrow the race window, and
// the unique indexes on phone_number/email make duplicate creation
// impossible at the storage layer.
func (uc *processUsecase) resolveUser(ctx context.Context, conversation, phone, email string) (*models.User, error) {
	storedPhone := ""
	if phone != "" {
		storedPhone = phoneStoragePrefix + phone
	}
	email = normalizeEmail(email)

	if user, err := uc.lookupUser(ctx, storedPhone, email); err != nil {
		return nil, err
	} else if user != nil {
		log.Infow(ctx, "User found", "user_id", user.ID.Hex(), "name", user.Name)
		return user, nil
	}

	profile, err := uc.gateway.ExtractProfile(ctx, conversation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUserCreation, err)
	}

	// The identifier-extraction email wins over the profile one.
	userEmail := email
	if userEmail == "" {
		userEmail = normalizeEmail(profile.Email)
	}

	user := &models.User{
		Name:        profile.Name,
		Email:       userEmail,
		PhoneNumber: storedPhone,
	}

	// Re-check right before insert: another request may have created the
	// user between the first lookup and now.
	if existing, err := uc.lookupUser(ctx, storedPhone, userEmail); err != nil {
		return nil, err
	} else if existing != nil {
		log.Infow(ctx, "User created concurrently, reusing", "user_id", existing.ID.Hex())
		return existing, nil
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUserCreation, err)
	}

	log.Infow(ctx, "Created new user",
		"user_id", user.ID.Hex(),
		"name", user.Name,
		"phone", user.PhoneNumber,
		"email", user.Email)
	return user, nil
}

// lookupUser checks phone first, then email. A nil user with nil error means
// no match.
func (uc *processUsecase) lookupUser(ctx context.Context, storedPhone, email string) (*models.User, error) {
	if storedPhone != "" {
		user, err := uc.userRepo.GetByPhone(ctx, storedPhone)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by phone: %w", err)
		}
	}

	if email != "" {
		user, err := uc.userRepo.GetByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
	}

	return nil, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
