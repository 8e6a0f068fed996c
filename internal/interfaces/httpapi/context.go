package httpapi

import (
	"context"

	"github.com/riskibarqy/creator-hub/internal/domain/session"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	accessTokenContextKey contextKey = "auth_access_token"
)

func withPrincipal(ctx context.Context, p session.Principal, accessToken string) context.Context {
	ctx = context.WithValue(ctx, principalContextKey, p)
	return context.WithValue(ctx, accessTokenContextKey, accessToken)
}

func principalFromContext(ctx context.Context) (session.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(session.Principal)
	return p, ok
}

func accessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenContextKey).(string)
	return token
}
