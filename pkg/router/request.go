package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

func parseRequest(ctx context.Context, req any) error {
	r := xcontext.HTTPRequest(ctx)

	switch r.Method {
	case http.MethodGet:
		if err := parseQuery(r, req); err != nil {
			return err
		}
	case http.MethodPost:
		body := r.Body
		if limit := xcontext.Configs(ctx).ApiServer.MaxBodySize; limit > 0 {
			body = http.MaxBytesReader(xcontext.ResponseWriter(ctx), r.Body, limit)
		}

		err := json.NewDecoder(body).Decode(req)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	return parseSession(ctx, req)
}

func parseQuery(r *http.Request, req any) error {
	values := map[string]any{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}

// parseSession fills the fields tagged with `session:"key"` from the cookie session. The option
// `session:"key,delete"` removes the key once read.
func parseSession(ctx context.Context, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	hasDeleted := false
	var session interface {
		Save(*http.Request, http.ResponseWriter) error
	}
	var values map[any]any

	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("session")
		if !ok {
			continue
		}

		if values == nil {
			s, err := xcontext.SessionStore(ctx).Get(
				xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
			if err != nil {
				return err
			}
			session, values = s, s.Values
		}

		key, option, _ := strings.Cut(tag, ",")
		value, ok := values[key].(string)
		if !ok {
			continue
		}

		if v.Field(i).Kind() == reflect.String {
			v.Field(i).SetString(value)
		}

		if option == "delete" {
			delete(values, key)
			hasDeleted = true
		}
	}

	if hasDeleted {
		return session.Save(xcontext.HTTPRequest(ctx), xcontext.ResponseWriter(ctx))
	}

	return nil
}
