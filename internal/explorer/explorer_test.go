package explorer_test

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/explorer"
)

var discard = slog.New(slog.DiscardHandler)

func TestParseID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		raw    string
		want   uuid.UUID
		wantOK bool
	}{
		{"canonical", id.String(), id, true},
		{"urn form", "urn:uuid:" + id.String(), id, true},
		{"empty", "", uuid.Nil, false},
		{"garbage", "not-a-uuid", uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := explorer.ParseID(discard, tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseID(%q) = (%s, %v), want (%s, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	for range 64 {
		id := uuid.New()

		for _, raw := range []string{id.String(), strings.ToUpper(id.String()), "{" + id.String() + "}"} {
			got, ok := explorer.ParseID(discard, raw)
			if !ok || got != id {
				t.Fatalf("ParseID(%q) = (%s, %v), want (%s, true)", raw, got, ok, id)
			}
			if got.String() != id.String() {
				t.Fatalf("String() = %q, want %q", got.String(), id.String())
			}
		}
	}
}

func TestParseIDNilLogger(t *testing.T) {
	if _, ok := explorer.ParseID(nil, "bad"); ok {
		t.Error("expected failure")
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		kind           string
		document       bool
		representation bool
	}{
		{"document", true, false},
		{"Diagram", false, true},
		{"Form", false, true},
		{"Diagram::Node", false, false},
		{"flow::System", false, false},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := explorer.IsDocumentKind(tt.kind); got != tt.document {
				t.Errorf("IsDocumentKind(%q) = %v, want %v", tt.kind, got, tt.document)
			}
			if got := explorer.IsRepresentationKind(tt.kind); got != tt.representation {
				t.Errorf("IsRepresentationKind(%q) = %v, want %v", tt.kind, got, tt.representation)
			}
			if tt.document && tt.representation {
				t.Errorf("kind %q claimed by both predicates", tt.kind)
			}
		})
	}
}

func TestSuccessCopiesParameters(t *testing.T) {
	params := map[string]any{"k": "v"}
	out := explorer.Success(explorer.SemanticChange, params)
	params["k"] = "changed"

	if !out.Succeeded || out.ChangeKind != explorer.SemanticChange {
		t.Fatalf("outcome = %+v", out)
	}
	if out.Parameters["k"] != "v" {
		t.Errorf("parameters aliased caller map: %v", out.Parameters)
	}
	if out.Err() != nil {
		t.Errorf("Err() = %v, want nil", out.Err())
	}
}

func TestSuccessNilParameters(t *testing.T) {
	out := explorer.Success(explorer.SemanticChange, nil)
	if out.Parameters == nil {
		t.Error("Parameters should be an empty map")
	}
}

func TestFailure(t *testing.T) {
	out := explorer.Failure(explorer.ErrUnsupportedItem)

	if out.Succeeded {
		t.Error("failure reported success")
	}
	if out.Message != "unsupported tree item" {
		t.Errorf("Message = %q", out.Message)
	}
	if !errors.Is(out.Err(), explorer.ErrUnsupportedItem) {
		t.Errorf("Err() = %v", out.Err())
	}
}

func TestRepresentationID(t *testing.T) {
	id := uuid.New()

	if got, ok := explorer.Success(explorer.RepresentationToDelete, map[string]any{
		explorer.ParamRepresentationID: id,
	}).RepresentationID(); !ok || got != id {
		t.Errorf("RepresentationID = (%s, %v), want (%s, true)", got, ok, id)
	}

	if _, ok := explorer.Success(explorer.RepresentationToDelete, map[string]any{
		explorer.ParamRepresentationID: id.String(),
	}).RepresentationID(); ok {
		t.Error("string parameter should not be accepted")
	}

	if _, ok := explorer.Success(explorer.SemanticChange, nil).RepresentationID(); ok {
		t.Error("missing parameter should not be accepted")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{explorer.ErrUnparseableIdentifier, http.StatusBadRequest},
		{explorer.ErrInvalidRequest, http.StatusBadRequest},
		{explorer.ErrRecordNotFound, http.StatusNotFound},
		{explorer.ErrContextNotFound, http.StatusNotFound},
		{explorer.ErrContextNotEditable, http.StatusConflict},
		{explorer.ErrUnsupportedItem, http.StatusUnprocessableEntity},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := explorer.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAsEditable(t *testing.T) {
	if _, ok := explorer.AsEditable(nil); ok {
		t.Error("nil context should not be editable")
	}
	if _, ok := explorer.AsEditable(plainContext{id: uuid.New()}); ok {
		t.Error("plain context should not be editable")
	}
	if _, ok := explorer.AsEditable(newFakeSession()); !ok {
		t.Error("fake session should be editable")
	}
}
