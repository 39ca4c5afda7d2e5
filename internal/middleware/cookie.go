package middleware

import (
	"context"
	"net/http"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/router"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(context.Context) []http.Cookie
}

func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cookieResp, ok := xcontext.Response(ctx).(CookieResponse)
		if !ok {
			return nil, nil
		}

		for _, cookie := range cookieResp.CookieInfo(ctx) {
			cookie := cookie
			http.SetCookie(xcontext.ResponseWriter(ctx), &cookie)
		}

		return nil, nil
	}
}
