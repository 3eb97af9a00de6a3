package utils

import "errors"

var (
	ErrBusinessNotFound  = errors.New("business not found")
	ErrOfferingNotFound  = errors.New("offering not found")
	ErrImageNotFound     = errors.New("image not found")
	ErrReviewNotFound    = errors.New("review not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrSettingNotFound   = errors.New("setting not found")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrDuplicateReview    = errors.New("account already reviewed this business")
	ErrInvalidStatusTransition = errors.New("invalid review status transition")
	ErrImageRejected      = errors.New("image failed safety checks")
	ErrRefreshRunning     = errors.New("refresh already running")
	ErrUpstreamFailed     = errors.New("upstream service failed")
	ErrEmbeddingFailed    = errors.New("embedding generation failed")
	ErrDatabaseError      = errors.New("database error")
)
