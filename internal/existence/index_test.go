package existence

import (
	"testing"

	"github.com/google/uuid"
)

func TestIndexTracksStagesPerLocale(t *testing.T) {
	idx := NewIndex()
	node := uuid.New()

	idx.Mark(node, "de_DE", StageDraft)
	idx.Mark(node, "de-de", StageLive)
	idx.Mark(node, "en_US", StageArchived)

	if !idx.ExistsDraft(node, "de_DE") || !idx.ExistsPublished(node, "DE_de") {
		t.Fatal("expected draft and live rows for de_DE")
	}
	if idx.ExistsArchived(node, "de_DE") {
		t.Fatal("expected no archived row for de_DE")
	}
	if !idx.ExistsArchived(node, "en_US") || idx.ExistsDraft(node, "en_US") {
		t.Fatal("expected archived-only row for en_US")
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 tracked pairs, got %d", idx.Len())
	}
}

func TestIndexHasAnyLocaleInstanceIgnoresArchived(t *testing.T) {
	idx := NewIndex()
	node := uuid.New()

	idx.Mark(node, "en_US", StageArchived)
	if idx.HasAnyLocaleInstance(node) {
		t.Fatal("expected archived rows not to count as instances")
	}

	idx.Mark(node, "es_ES", StageDraft)
	if !idx.HasAnyLocaleInstance(node) {
		t.Fatal("expected draft row to count as instance")
	}
	if idx.HasAnyLocaleInstance(uuid.New()) {
		t.Fatal("expected unknown node to have no instances")
	}
}

func TestIndexSetClearsRows(t *testing.T) {
	idx := NewIndex()
	node := uuid.New()

	idx.Mark(node, "de_DE", StageDraft)
	idx.Set(node, "de_DE", StageDraft, false)
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d", idx.Len())
	}

	idx.Set(node, "de_DE", Stage("staging"), true)
	if idx.Len() != 0 {
		t.Fatal("expected unknown stage to be ignored")
	}

	idx.Mark(node, "de_DE", StageLive)
	idx.Mark(node, "en_US", StageLive)
	idx.Forget(node)
	if idx.Len() != 0 {
		t.Fatalf("expected Forget to drop all rows, got %d", idx.Len())
	}
}
