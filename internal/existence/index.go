package existence

import (
	"strings"
	"sync"

	"github.com/goliatone/go-fluent/pkg/interfaces"
	"github.com/google/uuid"
)

// Stage names the versioned table a locale row lives in.
type Stage string

const (
	StageDraft    Stage = "draft"
	StageLive     Stage = "live"
	StageArchived Stage = "archived"
)

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	switch s {
	case StageDraft, StageLive, StageArchived:
		return true
	default:
		return false
	}
}

type key struct {
	node   uuid.UUID
	locale string
}

type presence struct {
	draft    bool
	live     bool
	archived bool
}

// Index is an in-memory answer to the storage existence questions. It is safe
// for concurrent use.
type Index struct {
	mu   sync.RWMutex
	rows map[key]presence
}

var _ interfaces.ContentStateSource = (*Index)(nil)

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{rows: make(map[key]presence)}
}

// Mark records that nodeID has a row for locale in stage.
func (i *Index) Mark(nodeID uuid.UUID, locale string, stage Stage) {
	i.Set(nodeID, locale, stage, true)
}

// Set records or clears a stage row for nodeID in locale.
func (i *Index) Set(nodeID uuid.UUID, locale string, stage Stage, present bool) {
	k := key{node: nodeID, locale: normalizeLocale(locale)}

	i.mu.Lock()
	defer i.mu.Unlock()

	row := i.rows[k]
	switch stage {
	case StageDraft:
		row.draft = present
	case StageLive:
		row.live = present
	case StageArchived:
		row.archived = present
	default:
		return
	}
	if row == (presence{}) {
		delete(i.rows, k)
		return
	}
	i.rows[k] = row
}

// Forget drops every row for nodeID.
func (i *Index) Forget(nodeID uuid.UUID) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for k := range i.rows {
		if k.node == nodeID {
			delete(i.rows, k)
		}
	}
}

// Len returns the number of (node, locale) pairs tracked.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.rows)
}

func (i *Index) ExistsDraft(nodeID uuid.UUID, locale string) bool {
	return i.lookup(nodeID, locale).draft
}

func (i *Index) ExistsPublished(nodeID uuid.UUID, locale string) bool {
	return i.lookup(nodeID, locale).live
}

func (i *Index) ExistsArchived(nodeID uuid.UUID, locale string) bool {
	return i.lookup(nodeID, locale).archived
}

// HasAnyLocaleInstance reports whether nodeID has a draft or live row in any
// locale. Archived rows do not count.
func (i *Index) HasAnyLocaleInstance(nodeID uuid.UUID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for k, row := range i.rows {
		if k.node == nodeID && (row.draft || row.live) {
			return true
		}
	}
	return false
}

func (i *Index) lookup(nodeID uuid.UUID, locale string) presence {
	if i == nil {
		return presence{}
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.rows[key{node: nodeID, locale: normalizeLocale(locale)}]
}

func normalizeLocale(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "-", "_"))
}
