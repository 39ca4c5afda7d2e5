package router

import "context"

// requestContext carries the cancellation of the http request and falls back to the router's base
// context for values.
type requestContext struct {
	context.Context
	base context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.base.Value(key)
}
