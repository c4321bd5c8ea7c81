package openmarket

import (
	"context"
	"errors"
	"time"

	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/logger"
)

var (
	// ErrBookingNotFound means the referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidTransition means the booking exists but is not Ongoing,
	// so it cannot be pushed. An already released booking lands here too:
	// a second push must not reset the window.
	ErrInvalidTransition = errors.New("only ongoing bookings can be pushed")
)

// BookingStore is the persistence the open-market flow needs.
type BookingStore interface {
	// GetByID returns ErrBookingNotFound when the booking does not exist.
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	// ReleaseToOpenMarket atomically moves an Ongoing booking to
	// OpenMarket and stamps its release metadata. It reports false, with
	// no error, when the booking was not Ongoing or does not exist.
	ReleaseToOpenMarket(ctx context.Context, id uint, pushedAt, whitelistedOnlyUntil time.Time) (bool, error)
	// ListOpenMarket returns bookings whose status is OpenMarket and
	// whose release flag is set.
	ListOpenMarket(ctx context.Context) ([]models.Booking, error)
}

// VendorDirectory resolves vendor whitelist flags. Unknown vendors report
// false rather than an error: a missing record means no early access.
type VendorDirectory interface {
	IsWhitelisted(ctx context.Context, vendorID uint) (bool, error)
}

// Service drives the booking lifecycle around the open market: the push
// transition, and the visibility-filtered pool read.
type Service struct {
	bookings BookingStore
	vendors  VendorDirectory
	notifier services.Notifier
	window   time.Duration
	now      func() time.Time
	log      logger.ILogger
}

type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithWindow overrides the restriction window duration.
func WithWindow(d time.Duration) Option {
	return func(s *Service) { s.window = d }
}

func New(bookings BookingStore, vendors VendorDirectory, notifier services.Notifier, log logger.ILogger, opts ...Option) *Service {
	s := &Service{
		bookings: bookings,
		vendors:  vendors,
		notifier: notifier,
		window:   WhitelistWindow,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push releases an Ongoing booking to the open market. The status check
// and the mutation are a single conditional update, so of two concurrent
// pushes exactly one wins; the loser is told the transition was invalid.
func (s *Service) Push(ctx context.Context, id uint) (*models.Booking, error) {
	pushedAt := s.now()
	released, err := s.bookings.ReleaseToOpenMarket(ctx, id, pushedAt, pushedAt.Add(s.window))
	if err != nil {
		return nil, err
	}
	if !released {
		// Nothing matched: distinguish a missing booking from one that is
		// simply not Ongoing.
		if _, err := s.bookings.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Private before broadcast, and never fail the persisted transition.
	s.notifier.NotifyVendor(booking.VendorID, services.EventBookingUpdate, booking)
	s.notifier.NotifyAllVendors(services.EventBookingOpenMarket, booking)

	return booking, nil
}

// Pool returns the open-market bookings visible to the requesting vendor.
// Admins get the pool unfiltered.
func (s *Service) Pool(ctx context.Context, vendorID uint, admin bool) ([]models.Booking, error) {
	bookings, err := s.bookings.ListOpenMarket(ctx)
	if err != nil {
		return nil, err
	}
	if admin {
		return bookings, nil
	}

	whitelisted, err := s.vendors.IsWhitelisted(ctx, vendorID)
	if err != nil {
		// A failed lookup downgrades to "not whitelisted" instead of
		// failing the read.
		s.log.Warning("vendor whitelist lookup failed", logger.Uint("vendorId", vendorID), logger.Error(err))
		whitelisted = false
	}

	now := s.now()
	visible := make([]models.Booking, 0, len(bookings))
	for i := range bookings {
		if Visible(now, &bookings[i], vendorID, whitelisted) {
			visible = append(visible, bookings[i])
		}
	}
	return visible, nil
}
