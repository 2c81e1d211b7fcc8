package middleware

import "context"

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxUsername  contextKey = "username"
	ctxRole      contextKey = "role"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxRequestID).(string)
	return value
}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxUsername, username)
}

func UsernameFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxUsername).(string)
	return value
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxRole, role)
}

func RoleFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxRole).(string)
	return value
}
