package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

type response struct {
	Code   int    `json:"code"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) (int, response) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	return errx.Code.HTTPStatus(), response{
		Code:   int(errx.Code),
		Reason: errx.Code.Reason(),
		Error:  errx.Message,
	}
}

func writeResponse(ctx context.Context) {
	w := xcontext.ResponseWriter(ctx)

	if err := xcontext.Error(ctx); err != nil {
		var errx errorx.Error
		if !errors.As(err, &errx) {
			xcontext.Logger(ctx).Errorf("Request failed: %v", err)
		}

		status, resp := newErrorResponse(err)
		if err := WriteJSON(w, status, resp); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
		return
	}

	if resp := xcontext.Response(ctx); resp != nil {
		if err := WriteJSON(w, http.StatusOK, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
