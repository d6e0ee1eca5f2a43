package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type feedLister interface {
	FeedKey(userID string) string
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Reader serves a user's activity feed back out of Redis.
type Reader struct {
	store feedLister
}

// NewReader builds a feed reader.
func NewReader(store feedLister) (*Reader, error) {
	if store == nil {
		return nil, fmt.Errorf("feed store required")
	}
	return &Reader{store: store}, nil
}

// ListForUser returns up to limit feed entries, newest first. Entries that no
// longer parse (older schema versions) are skipped rather than failing the read.
func (r *Reader) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error) {
	if limit <= 0 || limit > defaultFeedLength {
		limit = defaultFeedLength
	}
	raw, err := r.store.LRange(ctx, r.store.FeedKey(userID.String()), 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
