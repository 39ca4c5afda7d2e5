package authenticator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/danishayman/bobo-game-awards-sub000/config"
	"golang.org/x/oauth2"
)

type oauth2Service struct {
	cfg      config.OAuth2Config
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
	client   *http.Client
}

// NewOAuth2Service builds a provider from its configuration. When an issuer is configured the
// endpoints are discovered and the id_token is verified, otherwise the user is read from the
// userinfo endpoint at VerifyURL.
func NewOAuth2Service(ctx context.Context, cfg config.OAuth2Config) (*oauth2Service, error) {
	s := &oauth2Service{
		cfg:    withDefaultFields(cfg),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	endpoint := oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	if cfg.Issuer != "" {
		provider, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return nil, fmt.Errorf("cannot discover issuer %s: %w", cfg.Issuer, err)
		}

		endpoint = provider.Endpoint()
		s.verifier = provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
	} else if cfg.VerifyURL == "" {
		return nil, fmt.Errorf("oauth2 service %s needs either an issuer or a verify url", cfg.Name)
	}

	s.config = oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
	}

	return s, nil
}

func (s *oauth2Service) Service() string {
	return s.cfg.Name
}

func (s *oauth2Service) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state)
}

func (s *oauth2Service) VerifyAuthorizationCode(ctx context.Context, code string) (OAuth2User, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return OAuth2User{}, fmt.Errorf("cannot exchange authorization code: %w", err)
	}

	var claims map[string]any
	if s.verifier != nil {
		claims, err = s.verifyIDToken(ctx, token)
	} else {
		claims, err = s.getUserInfo(ctx, token)
	}
	if err != nil {
		return OAuth2User{}, err
	}

	return s.userFromClaims(claims)
}

func (s *oauth2Service) verifyIDToken(ctx context.Context, token *oauth2.Token) (map[string]any, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token field in oauth2 token")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("invalid id token: %w", err)
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("cannot parse id token claims: %w", err)
	}

	return claims, nil
}

func (s *oauth2Service) getUserInfo(ctx context.Context, token *oauth2.Token) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.VerifyURL, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %s", resp.Status)
	}

	var claims map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("cannot decode userinfo: %w", err)
	}

	return claims, nil
}

func (s *oauth2Service) userFromClaims(claims map[string]any) (OAuth2User, error) {
	id := claimString(claims, s.cfg.IDField)
	if id == "" {
		return OAuth2User{}, fmt.Errorf("invalid id field %s", s.cfg.IDField)
	}

	return OAuth2User{
		ID:        id,
		Username:  claimString(claims, s.cfg.NameField),
		Email:     claimString(claims, s.cfg.EmailField),
		AvatarURL: claimString(claims, s.cfg.AvatarField),
	}, nil
}

func claimString(claims map[string]any, field string) string {
	switch v := claims[field].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func withDefaultFields(cfg config.OAuth2Config) config.OAuth2Config {
	if cfg.IDField == "" {
		cfg.IDField = "sub"
	}
	if cfg.NameField == "" {
		cfg.NameField = "name"
	}
	if cfg.EmailField == "" {
		cfg.EmailField = "email"
	}
	if cfg.AvatarField == "" {
		cfg.AvatarField = "picture"
	}

	return cfg
}
