package documents_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: content missing", documents.ErrNotFound), http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"too large", documents.ErrContentTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid content", documents.ErrInvalidContent, http.StatusBadRequest},
		{"invalid id", documents.ErrInvalidID, http.StatusBadRequest},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documents.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name            string
		values          url.Values
		wantName        *string
		wantContentType *string
	}{
		{"empty", url.Values{}, nil, nil},
		{"name only", url.Values{"name": {"flow"}}, ptr("flow"), nil},
		{
			"both",
			url.Values{"name": {"flow"}, "content_type": {"application/json"}},
			ptr("flow"),
			ptr("application/json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := documents.FiltersFromQuery(tt.values)
			if !equalPtr(f.Name, tt.wantName) {
				t.Errorf("Name = %v, want %v", f.Name, tt.wantName)
			}
			if !equalPtr(f.ContentType, tt.wantContentType) {
				t.Errorf("ContentType = %v, want %v", f.ContentType, tt.wantContentType)
			}
		})
	}
}

func TestFiltersApply(t *testing.T) {
	projection := query.NewProjectionMap("public", "documents", "d").
		Project("name", "Name").
		Project("content_type", "ContentType")

	f := documents.Filters{Name: ptr("flow"), ContentType: ptr("application/json")}
	sql, args := f.Apply(query.NewBuilder(projection)).BuildCount()

	want := "SELECT COUNT(*) FROM public.documents d WHERE d.name ILIKE $1 AND d.content_type = $2"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != "%flow%" || args[1] != "application/json" {
		t.Errorf("args = %v", args)
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
