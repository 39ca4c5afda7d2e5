package middleware

import (
	"context"
	"strings"

	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/router"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

// AuthVerifier resolves the caller from the access token in the Authorization header or in the
// access token cookie.
type AuthVerifier struct {
	required bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// Required rejects requests without a valid access token.
func (a *AuthVerifier) Required() *AuthVerifier {
	return &AuthVerifier{required: true}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token != "" {
			var info model.AccessToken
			err := xcontext.TokenEngine(ctx).Verify(token, &info)
			if err == nil && info.ID != "" {
				return xcontext.WithRequestUserID(ctx, info.ID), nil
			}

			xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		}

		if a.required {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
