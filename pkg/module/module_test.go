package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/canopy/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) should panic", prefix)
				}
			}()
			module.New(prefix, http.NewServeMux())
		})
	}
}

func pathEcho() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Path", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", pathEcho()))
	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Path", "native")
	}))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"module prefix stripped", "/api/sessions/abc", "/sessions/abc"},
		{"module root", "/api", "/"},
		{"trailing slash trimmed", "/api/documents/", "/documents"},
		{"native fallback", "/healthz", "native"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := rec.Header().Get("X-Path"); got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouterUnknownPrefix(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", pathEcho()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apix/documents", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", pathEcho())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	m.Serve(rec, req)

	if rec.Header().Get("X-Module") != "api" {
		t.Error("middleware did not run")
	}
	if req.URL.Path != "/api/documents" {
		t.Errorf("original request mutated: %s", req.URL.Path)
	}
}
