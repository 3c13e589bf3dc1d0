package glove

import (
	"context"
	"fmt"
)

// baseCollection is the unsuffixed name of a user's first session sub-collection.
const baseCollection = "datos"

// CollectionName returns the sub-collection name for session index n:
// "datos" for 0, "datos1" for 1, and so on.
func CollectionName(n int) string {
	if n == 0 {
		return baseCollection
	}
	return fmt.Sprintf("%s%d", baseCollection, n)
}

// Doc is one finger document of a session sub-collection. ID is the
// canonical finger name.
type Doc struct {
	ID   string
	Data map[string]interface{}
}

// SessionSource fetches the finger documents of one session sub-collection.
// An empty slice means the sub-collection does not exist (or holds no docs),
// which terminates a scan.
type SessionSource interface {
	SessionDocs(ctx context.Context, userID, collection string) ([]Doc, error)
}

// SessionActive reports whether any finger document in the sub-collection has
// a positive metric after normalization.
func SessionActive(docs []Doc) bool {
	for _, d := range docs {
		if ReadingFromDoc(d.Data).Active() {
			return true
		}
	}
	return false
}

// CountSessions walks a user's session sub-collections in increasing suffix
// order, stopping at the first missing one, and counts those that are active.
// Sub-collections after a gap in the numbering are never reached.
func CountSessions(ctx context.Context, src SessionSource, userID string) (count int, hasSessions bool, err error) {
	for n := 0; ; n++ {
		docs, err := src.SessionDocs(ctx, userID, CollectionName(n))
		if err != nil {
			return 0, false, err
		}
		if len(docs) == 0 {
			return count, hasSessions, nil
		}
		if SessionActive(docs) {
			hasSessions = true
			count++
		}
	}
}

// LatestActive scans the same way as CountSessions and returns the name and
// zero-based index of the last active sub-collection seen before the scan
// terminated. ok is false when no active session exists.
func LatestActive(ctx context.Context, src SessionSource, userID string) (name string, index int, ok bool, err error) {
	for n := 0; ; n++ {
		collection := CollectionName(n)
		docs, err := src.SessionDocs(ctx, userID, collection)
		if err != nil {
			return "", 0, false, err
		}
		if len(docs) == 0 {
			return name, index, ok, nil
		}
		if SessionActive(docs) {
			name = collection
			index = n
			ok = true
		}
	}
}
