package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking(id string) *domain.Booking {
	at := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:        id,
		Sport:     "basketball",
		VenueID:   "v1",
		VenueName: "Downtown Sports Complex",
		Date:      "2025-12-01",
		TimeSlot:  "6:00 PM",
		Price:     decimal.RequireFromString("24.3"),
		Owner:     domain.RegisteredUser("u1"),
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestBookingRepository_CreateAndGet(t *testing.T) {
	repo := NewBookingRepository(kv.NewMemoryStore())
	ctx := context.Background()

	b := sampleBooking("booking_1")
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, "booking_1")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = repo.GetByID(ctx, "booking_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	repo := NewBookingRepository(kv.NewMemoryStore())
	ctx := context.Background()

	b := sampleBooking("booking_1")
	require.NoError(t, repo.Create(ctx, b))

	later := b.CreatedAt.Add(time.Hour)
	updated, err := repo.UpdateStatus(ctx, b.ID, domain.BookingStatusCancelled, later)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)
	assert.Equal(t, b.VenueName, updated.VenueName)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, stored.Status)

	_, err = repo.UpdateStatus(ctx, "booking_missing", domain.BookingStatusCancelled, later)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)
}

func TestBookingRepository_ListSkipsGarbage(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewBookingRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleBooking("booking_1")))
	require.NoError(t, repo.Create(ctx, sampleBooking("booking_2")))
	require.NoError(t, store.Set(ctx, "booking:broken", []byte("not json")))
	require.NoError(t, store.Set(ctx, "user_bookings:u1", []byte(`["booking_1"]`)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "booking_1", list[0].ID)
	assert.Equal(t, "booking_2", list[1].ID)
}

func TestBookingRepository_UserIndex(t *testing.T) {
	repo := NewBookingRepository(kv.NewMemoryStore())
	ctx := context.Background()

	ids, err := repo.UserBookingIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)

	for _, id := range []string{"b3", "b1", "b2", "b1"} {
		require.NoError(t, repo.AppendUserBooking(ctx, "u1", id))
	}

	ids, err = repo.UserBookingIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b3", "b1", "b2"}, ids)
}

func TestBookingRepository_SlotClaims(t *testing.T) {
	repo := NewBookingRepository(kv.NewMemoryStore())
	ctx := context.Background()
	slot := domain.SlotKey{VenueID: "v1", Date: "2025-12-01", TimeSlot: "6:00 PM"}
	at := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	holder, err := repo.SlotHolder(ctx, slot)
	require.NoError(t, err)
	assert.Nil(t, holder)

	ok, err := repo.ClaimSlot(ctx, slot, SlotClaim{BookingID: "b1", ClaimedAt: at})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ClaimSlot(ctx, slot, SlotClaim{BookingID: "b2", ClaimedAt: at})
	require.NoError(t, err)
	assert.False(t, ok)

	holder, err = repo.SlotHolder(ctx, slot)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, "b1", holder.BookingID)

	// a stale expectation must not swap
	swapped, err := repo.ReplaceSlotClaim(ctx, slot, "b9", SlotClaim{BookingID: "b2", ClaimedAt: at})
	require.NoError(t, err)
	assert.False(t, swapped)

	swapped, err = repo.ReplaceSlotClaim(ctx, slot, "b1", SlotClaim{BookingID: "b2", ClaimedAt: at})
	require.NoError(t, err)
	assert.True(t, swapped)

	// releasing with the wrong holder is a no-op
	require.NoError(t, repo.ReleaseSlot(ctx, slot, "b1"))
	holder, err = repo.SlotHolder(ctx, slot)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, "b2", holder.BookingID)

	require.NoError(t, repo.ReleaseSlot(ctx, slot, "b2"))
	holder, err = repo.SlotHolder(ctx, slot)
	require.NoError(t, err)
	assert.Nil(t, holder)

	// a released slot is claimed by swapping against the empty holder
	swapped, err = repo.ReplaceSlotClaim(ctx, slot, "", SlotClaim{BookingID: "b3", ClaimedAt: at})
	require.NoError(t, err)
	assert.True(t, swapped)
}

func TestBookingRepository_SlotKeysEscapeSeparator(t *testing.T) {
	repo := NewBookingRepository(kv.NewMemoryStore())
	ctx := context.Background()
	at := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	// both triples join to "v1:2025-12-01:6:00 PM" without escaping
	a := domain.SlotKey{VenueID: "v1", Date: "2025-12-01:6", TimeSlot: "00 PM"}
	b := domain.SlotKey{VenueID: "v1", Date: "2025-12-01", TimeSlot: "6:00 PM"}
	assert.NotEqual(t, slotKey(a), slotKey(b))

	ok, err := repo.ClaimSlot(ctx, a, SlotClaim{BookingID: "b1", ClaimedAt: at})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ClaimSlot(ctx, b, SlotClaim{BookingID: "b2", ClaimedAt: at})
	require.NoError(t, err)
	assert.True(t, ok)

	holder, err := repo.SlotHolder(ctx, b)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, "b2", holder.BookingID)
}
