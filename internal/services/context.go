package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	hookKey      contextKey = "hook"
	fileKey      contextKey = "file"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithHook annotates context with the hook name (file_test or worker).
func WithHook(ctx context.Context, hook string) context.Context {
	if hook == "" {
		return ctx
	}
	return context.WithValue(ctx, hookKey, hook)
}

// HookFromContext returns the hook name if present.
func HookFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(hookKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithFile annotates context with the media file being processed.
func WithFile(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, fileKey, path)
}

// FileFromContext returns the media file path if present.
func FileFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(fileKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
