package service

import (
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

// Client-facing errors returned by the services.
var (
	ErrQuestionNotFound   = apperrors.New(apperrors.ErrNotFound, "Question not found")
	ErrSubjectNotFound    = apperrors.New(apperrors.ErrNotFound, "Subject not found")
	ErrModelNotFound      = apperrors.New(apperrors.ErrNotFound, "Model not found")
	ErrUserNotFound       = apperrors.New(apperrors.ErrUnauthorized, "User not found")
	ErrEmailTaken         = apperrors.New(apperrors.ErrConflict, "Email already registered")
	ErrInvalidCredentials = apperrors.New(apperrors.ErrUnauthorized, "Invalid credentials")
)
