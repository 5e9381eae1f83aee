package bootstrap

import (
	"testing"

	"github.com/google/uuid"
)

func TestBuildNode(t *testing.T) {
	parent := uuid.New()

	node, err := BuildNode(NodeOptions{Segment: " about-us ", ParentID: parent.String()})
	if err != nil {
		t.Fatalf("build node: %v", err)
	}
	if node.ID == uuid.Nil {
		t.Fatal("expected a generated id for persisted nodes")
	}
	if node.ParentID == nil || *node.ParentID != parent {
		t.Fatalf("expected parent %s, got %v", parent, node.ParentID)
	}
	if node.URLSegment != "about-us" {
		t.Fatalf("expected trimmed segment, got %q", node.URLSegment)
	}

	transient, err := BuildNode(NodeOptions{ID: uuid.NewString(), Transient: true})
	if err != nil {
		t.Fatalf("build transient node: %v", err)
	}
	if transient.Exists() {
		t.Fatal("expected transient node to have no id")
	}

	if _, err := BuildNode(NodeOptions{ID: "not-a-uuid"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSplitLocales(t *testing.T) {
	got := SplitLocales(" en_US, ,de_DE ")
	if len(got) != 2 || got[0] != "en_US" || got[1] != "de_DE" {
		t.Fatalf("unexpected locales %v", got)
	}
	if SplitLocales("  ") != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestBuildModuleRequiresLocales(t *testing.T) {
	if _, err := BuildModule(Options{}); err == nil {
		t.Fatal("expected error without a catalogue")
	}
}
