package explorer

import (
	"maps"

	"github.com/google/uuid"
)

// ChangeKind classifies the state change reported by a successful Outcome.
type ChangeKind string

const (
	// SemanticChange signals that the session's model graph changed.
	SemanticChange ChangeKind = "SEMANTIC_CHANGE"
	// RepresentationToDelete instructs the outcome processor to delete the
	// representation named by ParamRepresentationID.
	RepresentationToDelete ChangeKind = "REPRESENTATION_TO_DELETE"
)

// ParamRepresentationID is the parameter key carrying a representation uuid.UUID.
const ParamRepresentationID = "representationId"

// Outcome is the result of a deletion request: either a success carrying a
// ChangeKind and auxiliary parameters, or a failure carrying a message.
type Outcome struct {
	Succeeded  bool           `json:"success"`
	ChangeKind ChangeKind     `json:"change_kind,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Message    string         `json:"message,omitempty"`

	err error
}

// Success creates a successful Outcome. The parameter map is copied;
// a nil map yields an empty one.
func Success(kind ChangeKind, params map[string]any) Outcome {
	p := make(map[string]any, len(params))
	maps.Copy(p, params)
	return Outcome{
		Succeeded:  true,
		ChangeKind: kind,
		Parameters: p,
	}
}

// Failure creates a failed Outcome whose message is the error text.
func Failure(err error) Outcome {
	o := Outcome{err: err}
	if err != nil {
		o.Message = err.Error()
	}
	return o
}

// Err returns the cause of a failed Outcome, or nil.
func (o Outcome) Err() error {
	return o.err
}

// RepresentationID extracts the representation identifier parameter.
func (o Outcome) RepresentationID() (uuid.UUID, bool) {
	v, ok := o.Parameters[ParamRepresentationID]
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
