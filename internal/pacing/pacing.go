// Package pacing carries a shared request limiter on a context, so that a
// batch of outbound requests keeps its minimum spacing even when a request
// is retried deep inside a client.
//
// The batch owner waits on the limiter before each first attempt; clients
// call Wait before every retry.
package pacing

import (
	"context"

	"golang.org/x/time/rate"
)

type ctxKey struct{}

// WithLimiter returns a copy of ctx carrying l.
func WithLimiter(ctx context.Context, l *rate.Limiter) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the limiter carried by ctx, or nil.
func FromContext(ctx context.Context) *rate.Limiter {
	l, _ := ctx.Value(ctxKey{}).(*rate.Limiter)
	return l
}

// Wait blocks until the limiter carried by ctx allows one more request. It
// returns immediately when ctx carries none.
func Wait(ctx context.Context) error {
	l := FromContext(ctx)
	if l == nil {
		return ctx.Err()
	}
	return l.Wait(ctx)
}
