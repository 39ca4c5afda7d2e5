package middleware

import (
	"context"
	"net/http"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/router"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

type RedirectResponse interface {
	RedirectInfo() (int, string)
}

// HandleRedirect must run after every middleware which writes headers.
func HandleRedirect() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		redirectResp, ok := xcontext.Response(ctx).(RedirectResponse)
		if !ok {
			return nil, nil
		}

		code, uri := redirectResp.RedirectInfo()
		http.Redirect(xcontext.ResponseWriter(ctx), xcontext.HTTPRequest(ctx), uri, code)

		// The redirect is the whole response.
		return xcontext.WithResponse(ctx, nil), nil
	}
}
