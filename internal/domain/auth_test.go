package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/authenticator"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/testutil"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAuthDomain(services ...authenticator.IOAuth2Service) AuthDomain {
	return NewAuthDomain(repository.NewUserRepository(), repository.NewOAuth2Repository(), services)
}

func Test_authDomain_OAuth2Login(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain(testutil.NewMockOAuth2("google"))

	resp, err := domain.OAuth2Login(ctx, &model.OAuth2LoginRequest{Type: "google"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.State)
	require.True(t, strings.HasSuffix(resp.RedirectURL, "state="+resp.State))

	_, err = domain.OAuth2Login(ctx, &model.OAuth2LoginRequest{Type: "discord"})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_authDomain_OAuth2Callback(t *testing.T) {
	ctx := testutil.MockContext()

	google := testutil.NewMockOAuth2("google")
	google.VerifyAuthorizationCodeFunc = func(ctx context.Context, code string) (authenticator.OAuth2User, error) {
		switch code {
		case "code-a":
			return authenticator.OAuth2User{ID: "google-a", Username: "Ann", Email: "ann@example.com"}, nil
		case "code-b":
			return authenticator.OAuth2User{ID: "google-b", Username: "Ben"}, nil
		case "code-a-renamed":
			return authenticator.OAuth2User{ID: "google-a", Username: "Annie", AvatarURL: "https://a.png"}, nil
		default:
			return authenticator.OAuth2User{}, errors.New("invalid code")
		}
	}

	domain := newTestAuthDomain(google)
	callback := func(code string) (*model.OAuth2CallbackResponse, error) {
		return domain.OAuth2Callback(ctx, &model.OAuth2CallbackRequest{
			Type:         "google",
			State:        "state",
			SessionState: "state",
			Code:         code,
		})
	}

	respA, err := callback("code-a")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", respA.RedirectURL)

	var tokenA model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(respA.AccessToken, &tokenA))
	require.Equal(t, "Ann", tokenA.Name)

	userRepo := repository.NewUserRepository()
	userA, err := userRepo.GetByID(ctx, tokenA.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleSuperAdmin, userA.Role)

	respB, err := callback("code-b")
	require.NoError(t, err)

	var tokenB model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(respB.AccessToken, &tokenB))
	userB, err := userRepo.GetByID(ctx, tokenB.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, userB.Role)

	// Logging in again reuses the account and refreshes the profile.
	respA, err = callback("code-a-renamed")
	require.NoError(t, err)
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(respA.AccessToken, &tokenA))
	require.Equal(t, userA.ID, tokenA.ID)

	userA, err = userRepo.GetByID(ctx, tokenA.ID)
	require.NoError(t, err)
	require.Equal(t, "Annie", userA.Name)
	require.Equal(t, "https://a.png", userA.AvatarURL)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	_, err = callback("bad-code")
	require.True(t, errorx.Is(err, errorx.Unauthenticated))
}

func Test_authDomain_OAuth2Callback_InvalidState(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestAuthDomain(testutil.NewMockOAuth2("google"))

	tests := []struct {
		name string
		req  *model.OAuth2CallbackRequest
	}{
		{
			name: "mismatched state",
			req:  &model.OAuth2CallbackRequest{Type: "google", State: "a", SessionState: "b", Code: "code"},
		},
		{
			name: "no session state",
			req:  &model.OAuth2CallbackRequest{Type: "google", State: "a", Code: "code"},
		},
		{
			name: "missing code",
			req:  &model.OAuth2CallbackRequest{Type: "google", State: "a", SessionState: "a"},
		},
		{
			name: "unsupported type",
			req:  &model.OAuth2CallbackRequest{Type: "discord", State: "a", SessionState: "a", Code: "code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.OAuth2Callback(ctx, tt.req)
			require.True(t, errorx.Is(err, errorx.BadRequest), "got %v", err)
		})
	}
}

type flakyOAuth2Repository struct {
	repository.OAuth2Repository
	failures int
}

func (r *flakyOAuth2Repository) Create(ctx context.Context, data *entity.OAuth2) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("insert failed")
	}

	return r.OAuth2Repository.Create(ctx, data)
}

func Test_authDomain_OAuth2Callback_FirstUserAfterFailedRegistration(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()

	google := testutil.NewMockOAuth2("google")
	google.VerifyAuthorizationCodeFunc = func(ctx context.Context, code string) (authenticator.OAuth2User, error) {
		return authenticator.OAuth2User{ID: "google-" + code, Username: code}, nil
	}

	oauth2Repo := &flakyOAuth2Repository{OAuth2Repository: repository.NewOAuth2Repository(), failures: 1}
	domain := NewAuthDomain(userRepo, oauth2Repo, []authenticator.IOAuth2Service{google})
	callback := func(code string) error {
		_, err := domain.OAuth2Callback(ctx, &model.OAuth2CallbackRequest{
			Type:         "google",
			State:        "state",
			SessionState: "state",
			Code:         code,
		})
		return err
	}

	require.Error(t, callback("ann"))

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	require.NoError(t, callback("ann"))
	require.NoError(t, callback("ben"))

	ann, err := userRepo.GetByServiceUserID(ctx, "google", "google-ann")
	require.NoError(t, err)
	require.Equal(t, entity.RoleSuperAdmin, ann.Role)

	ben, err := userRepo.GetByServiceUserID(ctx, "google", "google-ben")
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, ben.Role)
}
