package usecase

import "errors"

var (
	ErrInternal             = errors.New("internal error")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserNotFound         = errors.New("User not found")
	ErrProjectNotFound      = errors.New("Project not found")
	ErrAssessmentInProgress = errors.New("Assessment already in progress")
)
