package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.Handler {
	befores := router.befores
	afters := router.afters
	closers := router.closers

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var ctx context.Context = requestContext{Context: r.Context(), base: router.ctx}
		if router.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, router.timeout)
			defer cancel()
		}

		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithResponseWriter(ctx, w)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		ctx, err := handle(ctx, befores, afters, handler)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		}

		writeResponse(ctx)

		for _, closer := range closers {
			closer(ctx)
		}
	})
}

func handle[Request, Response any](
	ctx context.Context,
	befores, afters []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) (context.Context, error) {
	ctx, err := runMiddlewares(ctx, befores)
	if err != nil {
		return ctx, err
	}

	var req Request
	if err := parseRequest(ctx, &req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ctx, errorx.New(errorx.BadRequest, "Request body too large (at most %d bytes)", tooLarge.Limit)
		}

		return ctx, errorx.New(errorx.BadRequest, "Invalid request")
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return ctx, err
	}

	if resp != nil {
		ctx = xcontext.WithResponse(ctx, resp)
	}

	return runMiddlewares(ctx, afters)
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if newCtx != nil {
			ctx = newCtx
		}

		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}
