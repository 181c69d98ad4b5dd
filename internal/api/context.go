package api

import (
	"context"

	"github.com/org/floodgate/internal/auth"
)

type contextKey string

const (
	ctxKeyCredential  contextKey = "credential"
	ctxKeyRequestID   contextKey = "request_id"
	ctxKeySynthesized contextKey = "synthesized_token"
)

func withCredential(ctx context.Context, c *auth.Credential) context.Context {
	return context.WithValue(ctx, ctxKeyCredential, c)
}

func credentialFromCtx(ctx context.Context) *auth.Credential {
	c, _ := ctx.Value(ctxKeyCredential).(*auth.Credential)
	return c
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

func requestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// withSynthesizedToken installs a capability-derived session credential
// for the mandatory verification step to consume in place of a cookie.
func withSynthesizedToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeySynthesized, token)
}

func synthesizedTokenFromCtx(ctx context.Context) string {
	t, _ := ctx.Value(ctxKeySynthesized).(string)
	return t
}
