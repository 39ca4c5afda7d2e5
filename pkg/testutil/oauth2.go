package testutil

import (
	"context"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/authenticator"
)

type mockOAuth2 struct {
	Name                        string
	AuthCodeURLFunc             func(state string) string
	VerifyAuthorizationCodeFunc func(ctx context.Context, code string) (authenticator.OAuth2User, error)
}

func NewMockOAuth2(name string) *mockOAuth2 {
	return &mockOAuth2{Name: name}
}

func (m *mockOAuth2) Service() string {
	return m.Name
}

func (m *mockOAuth2) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}

	return "https://provider.example.com/authorize?state=" + state
}

func (m *mockOAuth2) VerifyAuthorizationCode(ctx context.Context, code string) (authenticator.OAuth2User, error) {
	if m.VerifyAuthorizationCodeFunc != nil {
		return m.VerifyAuthorizationCodeFunc(ctx, code)
	}

	return authenticator.OAuth2User{}, nil
}
