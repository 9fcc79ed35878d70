package models

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrNotFound = status.Errorf(codes.NotFound, "not found")

var (
	// ErrInvalidInput rejects a blank transcript before any external call.
	ErrInvalidInput = errors.New("conversation data is required")
	// ErrExtractionFailed means neither a phone number nor an email could be
	// derived; nothing has been written when it is returned.
	ErrExtractionFailed = errors.New("could not extract phone number or email from conversation")
	// ErrUserCreation aborts the request when the profile extraction or the
	// user insert fails.
	ErrUserCreation = errors.New("failed to create user")
	// ErrAnalyticsGeneration aborts the request after the user may already
	// have been persisted; there is no compensating rollback.
	ErrAnalyticsGeneration = errors.New("failed to generate analytics")
)
