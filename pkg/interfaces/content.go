package interfaces

import "github.com/google/uuid"

// ExistenceProvider answers per-locale existence questions for a node. It is
// implemented by the versioned storage collaborator; answers are plain
// booleans and carry no further semantics.
type ExistenceProvider interface {
	ExistsDraft(nodeID uuid.UUID, locale string) bool
	ExistsPublished(nodeID uuid.UUID, locale string) bool
	ExistsArchived(nodeID uuid.UUID, locale string) bool
}

// LocaleInstanceChecker reports whether a node has content in any locale.
type LocaleInstanceChecker interface {
	HasAnyLocaleInstance(nodeID uuid.UUID) bool
}

// ContentStateSource bundles both storage lookups. The in-memory existence
// index and the bun snapshot loader return values satisfying it.
type ContentStateSource interface {
	ExistenceProvider
	LocaleInstanceChecker
}
