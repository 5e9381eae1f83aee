package interfaces

import (
	"strings"

	"github.com/google/uuid"
)

// PageNode is the read-only view of a site tree node consumed by the link
// resolver. Nodes are owned by the storage layer; resolvers never mutate them.
type PageNode struct {
	ID         uuid.UUID
	ParentID   *uuid.UUID
	URLSegment string
	// IsRoot marks the configured home node.
	IsRoot bool
}

// Exists reports whether the node has been persisted. Transient nodes carry
// a nil ID.
func (n PageNode) Exists() bool {
	return n.ID != uuid.Nil
}

// HasParent reports whether the node sits below another node.
func (n PageNode) HasParent() bool {
	return n.ParentID != nil && *n.ParentID != uuid.Nil
}

// Segment returns the trimmed URL segment.
func (n PageNode) Segment() string {
	return strings.Trim(strings.TrimSpace(n.URLSegment), "/")
}
