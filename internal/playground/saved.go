package playground

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/store"
)

// SavedCode is the persisted playground state.
type SavedCode struct {
	Snippet
	Timestamp time.Time `json:"timestamp"`
}

// SaveCode stores s as the saved playground state, stamped with now.
func SaveCode(ctx context.Context, kv store.KV, s Snippet, now time.Time) error {
	return store.WriteJSON(ctx, kv, store.KeySavedCode, SavedCode{Snippet: s, Timestamp: now.UTC()})
}

// LoadCode returns the saved playground state and whether one exists. A
// corrupted blob reads as nothing saved.
func LoadCode(ctx context.Context, kv store.KV, log *zap.Logger) (SavedCode, bool, error) {
	saved, err := store.ReadJSON[*SavedCode](ctx, kv, store.KeySavedCode, log)
	if err != nil || saved == nil {
		return SavedCode{}, false, err
	}
	return *saved, true, nil
}
