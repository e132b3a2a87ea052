// Package explorer implements deletion of explorer tree items.
//
// A Dispatcher holds an ordered list of DeleteHandlers. For each request the
// first handler whose CanHandle reports true is invoked and its Outcome is
// returned; when no handler claims the item the dispatcher returns a Failure
// wrapping ErrUnsupportedItem. Handler predicates are expected to partition
// the space of item kinds, but the dispatcher does not enforce it: registration
// order is the tie-break.
package explorer

import "strings"

const (
	// DocumentKind is the tree item kind of a whole document.
	DocumentKind = "document"
	// KindSeparator marks namespaced kinds such as model elements ("flow::System").
	// Items whose kind contains it are not handled by this package.
	KindSeparator = "::"
)

// TreeItem is a node of the explorer tree selected for deletion.
type TreeItem struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// IsDocumentKind reports whether kind identifies a document item.
func IsDocumentKind(kind string) bool {
	return kind == DocumentKind
}

// IsRepresentationKind reports whether kind identifies a representation item:
// any kind that is neither the document kind nor namespaced. The empty kind
// counts as a representation; the item id still has to resolve.
func IsRepresentationKind(kind string) bool {
	return !IsDocumentKind(kind) && !strings.Contains(kind, KindSeparator)
}
