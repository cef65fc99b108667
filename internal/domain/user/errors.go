package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidRole             = errors.New("invalid role")
	ErrReviewScopeRequired     = errors.New("manager or admin access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
