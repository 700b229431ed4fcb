package httpheader

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id between services.
const RequestIDHeader = "X-Request-ID"

var defaultHeadersToForward = []string{
	RequestIDHeader,
	"User-Agent",
	"X-Forwarded-For",
	"X-Forwarded-Host",
	"X-Forwarded-Proto",
	"X-Real-IP",
}

type forwardedKey struct{}

// Capture is middleware that assigns a request id when the caller did not send
// one and remembers the forwardable headers for outgoing calls made while
// serving the request.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(RequestIDHeader) == "" {
			r.Header.Set(RequestIDHeader, uuid.NewString())
		}
		w.Header().Set(RequestIDHeader, r.Header.Get(RequestIDHeader))

		forwarded := http.Header{}
		for _, name := range defaultHeadersToForward {
			if values := r.Header.Values(name); len(values) > 0 {
				forwarded[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
			}
		}

		ctx := context.WithValue(r.Context(), forwardedKey{}, forwarded)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Forward copies the headers captured for ctx onto an outgoing request.
// Headers already set on req are left alone.
func Forward(ctx context.Context, req *http.Request) {
	forwarded, ok := ctx.Value(forwardedKey{}).(http.Header)
	if !ok {
		return
	}

	for name, values := range forwarded {
		if req.Header.Get(name) != "" {
			continue
		}
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
}

// RequestID returns the request id captured for ctx, if any.
func RequestID(ctx context.Context) string {
	forwarded, ok := ctx.Value(forwardedKey{}).(http.Header)
	if !ok {
		return ""
	}
	return forwarded.Get(RequestIDHeader)
}
