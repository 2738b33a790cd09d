package booking

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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Claims whose booking record never appeared are considered abandoned after
// this long and may be taken over.
const defaultClaimGrace = time.Minute

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookingsForUser(ctx context.Context, userID string) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	guardSlots         bool
	claimGrace         time.Duration
	now                func() time.Time
	newID              id.Generator
	log                logrus.FieldLogger
}

type CreateBookingInput struct {
	Sport     string           `json:"sport"`
	VenueID   string           `json:"venueId"`
	VenueName string           `json:"venueName"`
	Date      string           `json:"date"`
	TimeSlot  string           `json:"timeSlot"`
	Price     *decimal.Decimal `json:"price"`
	PromoCode string           `json:"promoCode"`
	Owner     domain.Owner     `json:"userId"`
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithDoubleBooking disables the per-slot claim, so two confirmed bookings
// may hold the same venue slot.
func WithDoubleBooking(allow bool) BookingServiceOption {
	return func(s *BookingService) {
		s.guardSlots = !allow
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(bookings repository.BookingRepository, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:   bookings,
		guardSlots: true,
		claimGrace: defaultClaimGrace,
		now:        func() time.Time { return time.Now().UTC() },
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	service.newID = id.NewGenerator(id.BookingPrefix, service.now)
	return service
}

// CreateBooking validates input, claims the slot and stores a confirmed
// booking. The user index is appended after the record is written; if that
// append fails the booking stays stored and keeps its slot, and the created
// booking is returned together with the storage error. A retry of the same
// request then sees the slot as taken.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	booking := &domain.Booking{
		ID:        s.newID(),
		Sport:     strings.TrimSpace(input.Sport),
		VenueID:   strings.TrimSpace(input.VenueID),
		VenueName: strings.TrimSpace(input.VenueName),
		Date:      strings.TrimSpace(input.Date),
		TimeSlot:  strings.TrimSpace(input.TimeSlot),
		Price:     canonicalPrice(*input.Price),
		PromoCode: normalizePromo(input.PromoCode),
		Owner:     input.Owner,
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if s.guardSlots {
		if err := s.claimSlot(ctx, booking); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if s.guardSlots {
			if relErr := s.bookings.ReleaseSlot(ctx, booking.Slot(), booking.ID); relErr != nil {
				s.log.WithError(relErr).WithField("booking_id", booking.ID).Warn("failed to release slot claim")
			}
		}
		return nil, err
	}

	if userID, ok := booking.Owner.UserID(); ok {
		if err := s.bookings.AppendUserBooking(ctx, userID, booking.ID); err != nil {
			s.log.WithError(err).WithField("booking_id", booking.ID).Error("booking stored but not indexed for user")
			return booking, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"venue_id":   booking.VenueID,
		"date":       booking.Date,
		"time_slot":  booking.TimeSlot,
		"user_id":    booking.Owner.String(),
	}).Info("booking created")

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ValidationError("booking id is required")
	}
	return s.bookings.GetByID(ctx, id)
}

// ListBookingsForUser returns the user's bookings in creation order. Index
// entries pointing at missing records are skipped.
func (s *BookingService) ListBookingsForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	owner := domain.RegisteredUser(userID)
	uid, ok := owner.UserID()
	if !ok {
		return []domain.Booking{}, nil
	}

	ids, err := s.bookings.UserBookingIDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(ids))
	for _, bookingID := range ids {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.WithField("booking_id", bookingID).Warn("user index points at missing booking")
				continue
			}
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

// CancelBooking marks the booking cancelled. Cancelling twice succeeds and
// only refreshes updatedAt.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ValidationError("booking id is required")
	}
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasConfirmed := current.IsConfirmed()

	updated, err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled, s.now())
	if err != nil {
		return nil, err
	}

	if s.guardSlots {
		if err := s.bookings.ReleaseSlot(ctx, updated.Slot(), updated.ID); err != nil {
			// The claim is stale now and will be taken over by the next booking.
			s.log.WithError(err).WithField("booking_id", updated.ID).Warn("failed to release slot claim")
		}
	}

	if wasConfirmed {
		s.log.WithField("booking_id", updated.ID).Info("booking cancelled")
		s.publish(ctx, kafka.EventBookingCancelled, updated)
	}
	return updated, nil
}

func (s *BookingService) claimSlot(ctx context.Context, booking *domain.Booking) error {
	slot := booking.Slot()
	claim := repository.SlotClaim{BookingID: booking.ID, ClaimedAt: booking.CreatedAt}

	ok, err := s.bookings.ClaimSlot(ctx, slot, claim)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	holder, err := s.bookings.SlotHolder(ctx, slot)
	if err != nil {
		return err
	}
	expected := ""
	if holder != nil {
		stale, err := s.isStale(ctx, *holder)
		if err != nil {
			return err
		}
		if !stale {
			return slotTaken(slot)
		}
		expected = holder.BookingID
	}

	swapped, err := s.bookings.ReplaceSlotClaim(ctx, slot, expected, claim)
	if err != nil {
		return err
	}
	if !swapped {
		return slotTaken(slot)
	}
	return nil
}

func (s *BookingService) isStale(ctx context.Context, claim repository.SlotClaim) (bool, error) {
	holder, err := s.bookings.GetByID(ctx, claim.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.now().Sub(claim.ClaimedAt) > s.claimGrace, nil
		}
		return false, err
	}
	return !holder.IsConfirmed(), nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	price := booking.Price
	event := kafka.Event{
		Type:       eventType,
		BookingID:  booking.ID,
		VenueID:    booking.VenueID,
		VenueName:  booking.VenueName,
		Date:       booking.Date,
		TimeSlot:   booking.TimeSlot,
		UserID:     booking.Owner.String(),
		Status:     string(booking.Status),
		Price:      &price,
		OccurredAt: booking.UpdatedAt,
	}
	for _, topic := range []string{s.bookingTopic, s.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, event.Key(), event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"booking_id": booking.ID,
				"topic":      topic,
				"event":      eventType,
			}).Warn("failed to publish booking event")
		}
	}
}

func (in CreateBookingInput) validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"sport", in.Sport},
		{"venueId", in.VenueID},
		{"venueName", in.VenueName},
		{"date", in.Date},
		{"timeSlot", in.TimeSlot},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return domain.ValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if in.Price.IsNegative() {
		return domain.ValidationError("price must not be negative")
	}
	return nil
}

// canonicalPrice drops trailing zeros so the value matches what a read of the
// stored JSON decodes to.
func canonicalPrice(p decimal.Decimal) decimal.Decimal {
	return decimal.RequireFromString(p.String())
}

func normalizePromo(code string) *string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return &code
}

func slotTaken(slot domain.SlotKey) error {
	return fmt.Errorf("%w: %s on %s at %s", domain.ErrSlotTaken, slot.VenueID, slot.Date, slot.TimeSlot)
}

var _ BookingUseCase = (*BookingService)(nil)
