package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/kafka"
	"github.com/Domenick1991/sporthub/internal/kv"
	"github.com/Domenick1991/sporthub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func rating(n int) *int { return &n }

func newService(opts ...ReviewServiceOption) *ReviewService {
	clock := func() time.Time { return time.Date(2025, 12, 1, 18, 30, 0, 0, time.UTC) }
	opts = append([]ReviewServiceOption{WithClock(clock)}, opts...)
	return NewReviewService(repository.NewReviewRepository(kv.NewMemoryStore()), opts...)
}

func TestReviewService_RatingBounds(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, tt := range []struct {
		rating  int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{3, false},
		{5, false},
		{6, true},
	} {
		_, err := svc.CreateReview(ctx, CreateReviewInput{VenueID: "v1", Rating: rating(tt.rating), Comment: "ok"})
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", tt.rating)
		} else {
			assert.NoError(t, err, "rating %d", tt.rating)
		}
	}
}

func TestReviewService_RequiredFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, CreateReviewInput{Rating: rating(4), Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateReview(ctx, CreateReviewInput{VenueID: "v1", Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateReview(ctx, CreateReviewInput{VenueID: "v1", Rating: rating(4)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewService_Defaults(t *testing.T) {
	svc := newService()

	created, err := svc.CreateReview(context.Background(), CreateReviewInput{VenueID: "v1", Rating: rating(5), Comment: "Great courts"})
	require.NoError(t, err)

	assert.Regexp(t, `^review_\d+_[0-9a-f]{16}$`, created.ID)
	assert.True(t, created.Author.IsGuest())
	assert.Equal(t, domain.AnonymousName, created.UserName)
	assert.Equal(t, "2025-12-01", created.Date)
	assert.Equal(t, time.Date(2025, 12, 1, 18, 30, 0, 0, time.UTC), created.CreatedAt)
}

func TestReviewService_ListReviewsForVenue(t *testing.T) {
	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	svc := newService(WithProducer(producer, "booking-events"))
	ctx := context.Background()

	var ids []string
	for i, comment := range []string{"first", "second", "third"} {
		created, err := svc.CreateReview(ctx, CreateReviewInput{
			VenueID:  "v2",
			Owner:    domain.RegisteredUser("u1"),
			UserName: "Sam",
			Rating:   rating(i + 2),
			Comment:  comment,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	list, err := svc.ListReviewsForVenue(ctx, "v2")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, r := range list {
		assert.Equal(t, ids[i], r.ID)
		assert.Equal(t, "u1", r.Author.String())
	}

	empty, err := svc.ListReviewsForVenue(ctx, "v5")
	require.NoError(t, err)
	assert.Empty(t, empty)

	producer.AssertNumberOfCalls(t, "Publish", 3)
	event := producer.Calls[0].Arguments.Get(3).(kafka.Event)
	assert.Equal(t, kafka.EventReviewCreated, event.Type)
	assert.Equal(t, ids[0], event.ReviewID)
}
