package auth

import (
	"context"
)

type ctxKey string

const (
	userKey ctxKey = "userClaims"
)

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).UserID
}
