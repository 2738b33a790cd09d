package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/kv"
	"github.com/sirupsen/logrus"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)

	AppendUserBooking(ctx context.Context, userID, bookingID string) error
	UserBookingIDs(ctx context.Context, userID string) ([]string, error)

	ClaimSlot(ctx context.Context, slot domain.SlotKey, claim SlotClaim) (bool, error)
	SlotHolder(ctx context.Context, slot domain.SlotKey) (*SlotClaim, error)
	ReplaceSlotClaim(ctx context.Context, slot domain.SlotKey, expectedBookingID string, claim SlotClaim) (bool, error)
	ReleaseSlot(ctx context.Context, slot domain.SlotKey, bookingID string) error
}

// SlotClaim marks a venue slot as held by one booking. A released claim is
// stored as JSON null.
type SlotClaim struct {
	BookingID string    `json:"bookingId"`
	ClaimedAt time.Time `json:"claimedAt"`
}

type KVBookingRepository struct {
	store kv.Store
}

func NewBookingRepository(store kv.Store) BookingRepository {
	return &KVBookingRepository{store: store}
}

func (r *KVBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("encode booking: %w", err)
	}
	if err := r.store.Set(ctx, bookingKey(booking.ID), payload); err != nil {
		return domain.StorageError("write booking", err)
	}
	return nil
}

func (r *KVBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	data, err := r.store.Get(ctx, bookingKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.StorageError("read booking", err)
	}
	var b domain.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, domain.StorageError("decode booking", err)
	}
	return &b, nil
}

// UpdateStatus rewrites the status and updatedAt of a stored booking in one
// atomic step. Every other field is left as stored.
func (r *KVBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	var updated domain.Booking
	err := r.store.Update(ctx, bookingKey(id), func(current []byte) ([]byte, error) {
		updated = domain.Booking{}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		if err := json.Unmarshal(current, &updated); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		updated.Status = status
		updated.UpdatedAt = at
		return json.Marshal(&updated)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.StorageError("update booking", err)
	}
	return &updated, nil
}

// List scans the whole booking keyspace. Records that fail to decode are
// logged and skipped.
func (r *KVBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	entries, err := r.store.ScanPrefix(ctx, bookingKeyPrefix)
	if err != nil {
		return nil, domain.StorageError("scan bookings", err)
	}
	bookings := make([]domain.Booking, 0, len(entries))
	for _, e := range entries {
		var b domain.Booking
		if err := json.Unmarshal(e.Value, &b); err != nil {
			logrus.WithError(err).WithField("key", e.Key).Warn("skipping undecodable booking")
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *KVBookingRepository) AppendUserBooking(ctx context.Context, userID, bookingID string) error {
	if err := appendToIndex(ctx, r.store, userBookingsKey(userID), bookingID); err != nil {
		return domain.StorageError("append user index", err)
	}
	return nil
}

func (r *KVBookingRepository) UserBookingIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := readIndex(ctx, r.store, userBookingsKey(userID))
	if err != nil {
		return nil, domain.StorageError("read user index", err)
	}
	return ids, nil
}

func (r *KVBookingRepository) ClaimSlot(ctx context.Context, slot domain.SlotKey, claim SlotClaim) (bool, error) {
	payload, err := json.Marshal(claim)
	if err != nil {
		return false, fmt.Errorf("encode slot claim: %w", err)
	}
	ok, err := r.store.SetNX(ctx, slotKey(slot), payload)
	if err != nil {
		return false, domain.StorageError("claim slot", err)
	}
	return ok, nil
}

func (r *KVBookingRepository) SlotHolder(ctx context.Context, slot domain.SlotKey) (*SlotClaim, error) {
	data, err := r.store.Get(ctx, slotKey(slot))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.StorageError("read slot claim", err)
	}
	claim, err := decodeClaim(data)
	if err != nil {
		return nil, domain.StorageError("decode slot claim", err)
	}
	return claim, nil
}

// ReplaceSlotClaim swaps in claim only while the slot is still held by
// expectedBookingID; an empty expectation matches a free slot.
func (r *KVBookingRepository) ReplaceSlotClaim(ctx context.Context, slot domain.SlotKey, expectedBookingID string, claim SlotClaim) (bool, error) {
	var swapped bool
	err := r.store.Update(ctx, slotKey(slot), func(current []byte) ([]byte, error) {
		swapped = false
		held, err := decodeClaim(current)
		if err != nil {
			return nil, err
		}
		if holderID(held) != expectedBookingID {
			return nil, kv.ErrSkip
		}
		swapped = true
		return json.Marshal(claim)
	})
	if err != nil {
		return false, domain.StorageError("replace slot claim", err)
	}
	return swapped, nil
}

func (r *KVBookingRepository) ReleaseSlot(ctx context.Context, slot domain.SlotKey, bookingID string) error {
	err := r.store.Update(ctx, slotKey(slot), func(current []byte) ([]byte, error) {
		held, err := decodeClaim(current)
		if err != nil {
			return nil, err
		}
		if holderID(held) != bookingID {
			return nil, kv.ErrSkip
		}
		return []byte("null"), nil
	})
	if err != nil {
		return domain.StorageError("release slot", err)
	}
	return nil
}

func decodeClaim(data []byte) (*SlotClaim, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var claim *SlotClaim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func holderID(c *SlotClaim) string {
	if c == nil {
		return ""
	}
	return c.BookingID
}

var _ BookingRepository = (*KVBookingRepository)(nil)
