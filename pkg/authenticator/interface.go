package authenticator

import (
	"context"
	"time"
)

type OAuth2User struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
}

type IOAuth2Service interface {
	Service() string

	// AuthCodeURL returns the provider consent page for the given anti-CSRF state.
	AuthCodeURL(state string) string

	// VerifyAuthorizationCode exchanges the code and resolves the provider user.
	VerifyAuthorizationCode(ctx context.Context, code string) (OAuth2User, error)
}

type TokenEngine interface {
	// Generate creates a token string containing the obj and expiration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify if token is invalid or expired. Then parse the obj from token to obj parameter. The
	// obj paramter must be a pointer.
	Verify(token string, obj any) error
}
