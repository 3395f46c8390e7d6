package middleware

import "context"

type (
	requestIDKey struct{}
	htmxKey      struct{}
	sessionKey   struct{}
)

// WithRequestID stores the chi request id for error envelopes.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// WithHTMX stores the parsed htmx request headers.
func WithHTMX(ctx context.Context, h HTMXRequest) context.Context {
	return context.WithValue(ctx, htmxKey{}, h)
}

// HTMXFrom returns the htmx headers of the request; the zero value for
// plain browser requests.
func HTMXFrom(ctx context.Context) HTMXRequest {
	h, _ := ctx.Value(htmxKey{}).(HTMXRequest)
	return h
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(ctx context.Context) bool {
	return HTMXFrom(ctx).Request
}
