package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/Domenick1991/sporthub/internal/id"
	"github.com/Domenick1991/sporthub/internal/kafka"
	"github.com/Domenick1991/sporthub/internal/repository"
	"github.com/sirupsen/logrus"
)

type ReviewUseCase interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	ListReviewsForVenue(ctx context.Context, venueID string) ([]domain.Review, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateReviewInput struct {
	VenueID  string       `json:"venueId"`
	Owner    domain.Owner `json:"userId"`
	UserName string       `json:"userName"`
	Rating   *int         `json:"rating"`
	Comment  string       `json:"comment"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	producer Producer
	topic    string
	now      func() time.Time
	newID    id.Generator
	log      logrus.FieldLogger
}

type ReviewServiceOption func(*ReviewService)

func WithProducer(producer Producer, topic string) ReviewServiceOption {
	return func(s *ReviewService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithClock(now func() time.Time) ReviewServiceOption {
	return func(s *ReviewService) {
		s.now = now
	}
}

func WithLogger(log logrus.FieldLogger) ReviewServiceOption {
	return func(s *ReviewService) {
		s.log = log
	}
}

func NewReviewService(reviews repository.ReviewRepository, opts ...ReviewServiceOption) *ReviewService {
	s := &ReviewService{
		reviews: reviews,
		now:     func() time.Time { return time.Now().UTC() },
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.newID = id.NewGenerator(id.ReviewPrefix, s.now)
	return s
}

func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	if strings.TrimSpace(input.VenueID) == "" || input.Rating == nil || strings.TrimSpace(input.Comment) == "" {
		return nil, domain.ValidationError("missing required fields: venueId, rating and comment are required")
	}
	if *input.Rating < domain.MinRating || *input.Rating > domain.MaxRating {
		return nil, domain.ValidationError(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	name := strings.TrimSpace(input.UserName)
	if name == "" {
		name = domain.AnonymousName
	}

	now := s.now()
	review := &domain.Review{
		ID:        s.newID(),
		VenueID:   strings.TrimSpace(input.VenueID),
		Author:    input.Owner,
		UserName:  name,
		Rating:    *input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Date:      now.Format(time.DateOnly),
		CreatedAt: now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	if err := s.reviews.AppendVenueReview(ctx, review.VenueID, review.ID); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"review_id": review.ID, "venue_id": review.VenueID}).Info("review created")
	s.publish(ctx, review)
	return review, nil
}

func (s *ReviewService) ListReviewsForVenue(ctx context.Context, venueID string) ([]domain.Review, error) {
	ids, err := s.reviews.VenueReviewIDs(ctx, venueID)
	if err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(ids))
	for _, reviewID := range ids {
		r, err := s.reviews.GetByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		reviews = append(reviews, *r)
	}
	return reviews, nil
}

func (s *ReviewService) publish(ctx context.Context, review *domain.Review) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.Event{
		Type:       kafka.EventReviewCreated,
		ReviewID:   review.ID,
		VenueID:    review.VenueID,
		UserID:     review.Author.String(),
		Rating:     review.Rating,
		OccurredAt: review.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.topic, event.Key(), event); err != nil {
		s.log.WithError(err).WithField("review_id", review.ID).Warn("failed to publish review event")
	}
}

var _ ReviewUseCase = (*ReviewService)(nil)
