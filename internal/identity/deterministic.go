package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity so different entities never share a key.
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

// BlockRowUUID is the storage row id of a block inside a page. The same
// block keeps the same row id across saves. Block ids are compared exactly,
// so the key is not normalized: "Hero" and "hero" are distinct rows.
func BlockRowUUID(pageID uuid.UUID, blockID string) uuid.UUID {
	return uuid.NewSHA1(pageID, []byte("lnkmx:page_block:"+blockID))
}

// ImportedPageUUID is the page id assigned to a manifest import for slug, so
// re-importing the same manifest updates the same page.
func ImportedPageUUID(slug string) uuid.UUID {
	return UUID("lnkmx:imported_page:" + strings.ToLower(strings.TrimSpace(slug)))
}
