package context

import "context"

type sessionKey struct{}

// NewContextWithSession stores the page session for downstream handlers.
func NewContextWithSession[T any](ctx context.Context, session T) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSessionFromContext[T any](ctx context.Context) (T, bool) {
	s, ok := ctx.Value(sessionKey{}).(T)
	return s, ok
}
