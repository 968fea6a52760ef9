package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntryID derives the archive entry identifier for a content file. The key
// carries collection and slug so re-syncing the same tree always yields the
// same IDs, while the same slug in different collections stays distinct.
func EntryID(collection, slug string) uuid.UUID {
	collection = strings.ToLower(strings.TrimSpace(collection))
	slug = strings.ToLower(strings.TrimSpace(slug))
	if collection == "" || slug == "" {
		return uuid.Nil
	}
	return UUID("blog:entry:" + collection + ":" + slug)
}
