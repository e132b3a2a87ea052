// Package middleware provides composable HTTP middleware and the stack that applies it.
package middleware

import (
	"mime"
	"net/http"
	"slices"
	"strings"
)

// System manages an ordered stack of HTTP middleware.
// Middleware added first runs first.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	mws []func(http.Handler) http.Handler
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(mw func(http.Handler) http.Handler) {
	if mw != nil {
		s.mws = append(s.mws, mw)
	}
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, mw := range slices.Backward(s.mws) {
		handler = mw(handler)
	}
	return handler
}

// LimitBody caps request bodies at limit bytes. Multipart bodies are left to
// their handlers, which enforce their own upload ceilings. A limit of zero or
// less disables the cap.
func LimitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody && !isMultipart(r) {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}
