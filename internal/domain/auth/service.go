package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, track SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Me(ctx context.Context) (MeResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
