package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestEntryIDIsStable(t *testing.T) {
	first := EntryID("posts", "transducers")
	second := EntryID("posts", "transducers")

	if first == uuid.Nil {
		t.Fatalf("expected a non-nil id")
	}
	if first != second {
		t.Fatalf("expected stable ids, got %s and %s", first, second)
	}
}

func TestEntryIDDistinguishesCollections(t *testing.T) {
	post := EntryID("posts", "about")
	page := EntryID("pages", "about")

	if post == page {
		t.Fatalf("same slug in different collections must yield different ids")
	}
}

func TestEntryIDNormalizesInput(t *testing.T) {
	if EntryID("Posts", " Transducers ") != EntryID("posts", "transducers") {
		t.Fatalf("expected case and whitespace normalization")
	}
}

func TestEntryIDRequiresBothParts(t *testing.T) {
	if EntryID("", "slug") != uuid.Nil {
		t.Fatalf("missing collection should yield uuid.Nil")
	}
	if EntryID("posts", "") != uuid.Nil {
		t.Fatalf("missing slug should yield uuid.Nil")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatalf("blank keys should map to uuid.Nil")
	}
}
