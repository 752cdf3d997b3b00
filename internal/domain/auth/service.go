package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string)
	LoginWithGoogle(ctx context.Context, userAgent string) (redirectURL, state string)
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)
}
