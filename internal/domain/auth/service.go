package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes the access token for the rest of its lifetime.
	Logout(ctx context.Context, accessToken string) error
}
