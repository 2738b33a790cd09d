package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/kv"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	AppendVenueReview(ctx context.Context, venueID, reviewID string) error
	VenueReviewIDs(ctx context.Context, venueID string) ([]string, error)
}

type KVReviewRepository struct {
	store kv.Store
}

func NewReviewRepository(store kv.Store) ReviewRepository {
	return &KVReviewRepository{store: store}
}

func (r *KVReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	payload, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("encode review: %w", err)
	}
	if err := r.store.Set(ctx, reviewKey(review.ID), payload); err != nil {
		return domain.StorageError("write review", err)
	}
	return nil
}

func (r *KVReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	data, err := r.store.Get(ctx, reviewKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.StorageError("read review", err)
	}
	var review domain.Review
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, domain.StorageError("decode review", err)
	}
	return &review, nil
}

func (r *KVReviewRepository) AppendVenueReview(ctx context.Context, venueID, reviewID string) error {
	if err := appendToIndex(ctx, r.store, venueReviewsKey(venueID), reviewID); err != nil {
		return domain.StorageError("append venue index", err)
	}
	return nil
}

func (r *KVReviewRepository) VenueReviewIDs(ctx context.Context, venueID string) ([]string, error) {
	ids, err := readIndex(ctx, r.store, venueReviewsKey(venueID))
	if err != nil {
		return nil, domain.StorageError("read venue index", err)
	}
	return ids, nil
}

var _ ReviewRepository = (*KVReviewRepository)(nil)
