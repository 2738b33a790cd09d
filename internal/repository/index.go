package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/sporthub/internal/kv"
)

// appendToIndex adds id to the JSON array stored under key. The append is a
// single atomic Update, so concurrent appends to one index are not lost.
func appendToIndex(ctx context.Context, store kv.Store, key, id string) error {
	return store.Update(ctx, key, func(current []byte) ([]byte, error) {
		ids, err := decodeIndex(current)
		if err != nil {
			return nil, fmt.Errorf("decode index %s: %w", key, err)
		}
		for _, existing := range ids {
			if existing == id {
				return nil, kv.ErrSkip
			}
		}
		return json.Marshal(append(ids, id))
	})
}

func readIndex(ctx context.Context, store kv.Store, key string) ([]string, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return decodeIndex(data)
}

func decodeIndex(data []byte) ([]string, error) {
	ids := []string{}
	if len(data) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
