package openmarket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/logger"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) ReleaseToOpenMarket(ctx context.Context, id uint, pushedAt, whitelistedOnlyUntil time.Time) (bool, error) {
	args := m.Called(ctx, id, pushedAt, whitelistedOnlyUntil)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingStore) ListOpenMarket(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockVendorDirectory struct {
	mock.Mock
}

func (m *MockVendorDirectory) IsWhitelisted(ctx context.Context, vendorID uint) (bool, error) {
	args := m.Called(ctx, vendorID)
	return args.Bool(0), args.Error(1)
}

// recordedEvent captures one publish, in order, for asserting the
// private-before-broadcast contract.
type recordedEvent struct {
	Broadcast bool
	VendorID  uint
	Event     string
}

type RecordingNotifier struct {
	Events []recordedEvent
}

func (n *RecordingNotifier) NotifyVendor(vendorID uint, event string, payload interface{}) {
	n.Events = append(n.Events, recordedEvent{VendorID: vendorID, Event: event})
}

func (n *RecordingNotifier) NotifyAllVendors(event string, payload interface{}) {
	n.Events = append(n.Events, recordedEvent{Broadcast: true, Event: event})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPushReleasesOngoingBooking(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	until := t0.Add(WhitelistWindow)

	released := releasedBooking(7, t0)
	released.ID = 42

	store := new(MockBookingStore)
	store.On("ReleaseToOpenMarket", mock.Anything, uint(42), t0, until).Return(true, nil)
	store.On("GetByID", mock.Anything, uint(42)).Return(released, nil)

	notifier := &RecordingNotifier{}
	svc := New(store, new(MockVendorDirectory), notifier, logger.New("test"), WithClock(fixedClock(t0)))

	booking, err := svc.Push(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusOpenMarket, booking.Status)
	assert.True(t, booking.OpenMarket.Pushed)
	assert.Equal(t, until, *booking.OpenMarket.WhitelistedOnlyUntil)

	// Private channel first, broadcast second.
	assert.Equal(t, []recordedEvent{
		{VendorID: 7, Event: services.EventBookingUpdate},
		{Broadcast: true, Event: services.EventBookingOpenMarket},
	}, notifier.Events)
	store.AssertExpectations(t)
}

func TestPushMissingBooking(t *testing.T) {
	store := new(MockBookingStore)
	store.On("ReleaseToOpenMarket", mock.Anything, uint(99), mock.Anything, mock.Anything).Return(false, nil)
	store.On("GetByID", mock.Anything, uint(99)).Return(nil, ErrBookingNotFound)

	notifier := &RecordingNotifier{}
	svc := New(store, new(MockVendorDirectory), notifier, logger.New("test"))

	_, err := svc.Push(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, notifier.Events)
}

func TestPushNonOngoingBooking(t *testing.T) {
	completed := &models.Booking{Status: models.BookingStatusCompleted, VendorID: 1}

	store := new(MockBookingStore)
	store.On("ReleaseToOpenMarket", mock.Anything, uint(5), mock.Anything, mock.Anything).Return(false, nil)
	store.On("GetByID", mock.Anything, uint(5)).Return(completed, nil)

	notifier := &RecordingNotifier{}
	svc := New(store, new(MockVendorDirectory), notifier, logger.New("test"))

	_, err := svc.Push(context.Background(), 5)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, notifier.Events)
}

// A second push must be rejected rather than resetting the window: the
// conditional update matches nothing once the booking left Ongoing.
func TestPushTwiceSecondRejected(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	released := releasedBooking(3, t0)
	released.ID = 8

	store := new(MockBookingStore)
	store.On("ReleaseToOpenMarket", mock.Anything, uint(8), mock.Anything, mock.Anything).Return(true, nil).Once()
	store.On("ReleaseToOpenMarket", mock.Anything, uint(8), mock.Anything, mock.Anything).Return(false, nil)
	store.On("GetByID", mock.Anything, uint(8)).Return(released, nil)

	svc := New(store, new(MockVendorDirectory), &RecordingNotifier{}, logger.New("test"), WithClock(fixedClock(t0)))

	_, err := svc.Push(context.Background(), 8)
	assert.NoError(t, err)

	_, err = svc.Push(context.Background(), 8)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPoolHidesFreshReleaseFromOtherVendors(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	pool := []models.Booking{*releasedBooking(1, t0)}

	store := new(MockBookingStore)
	store.On("ListOpenMarket", mock.Anything).Return(pool, nil)

	vendors := new(MockVendorDirectory)
	vendors.On("IsWhitelisted", mock.Anything, uint(2)).Return(false, nil)

	svc := New(store, vendors, &RecordingNotifier{}, logger.New("test"), WithClock(fixedClock(t0.Add(10*time.Minute))))

	visible, err := svc.Pool(context.Background(), 2, false)
	assert.NoError(t, err)
	assert.Empty(t, visible)
}

func TestPoolOpensToAllAfterWindow(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	pool := []models.Booking{*releasedBooking(1, t0)}

	store := new(MockBookingStore)
	store.On("ListOpenMarket", mock.Anything).Return(pool, nil)

	vendors := new(MockVendorDirectory)
	vendors.On("IsWhitelisted", mock.Anything, uint(2)).Return(false, nil)

	svc := New(store, vendors, &RecordingNotifier{}, logger.New("test"), WithClock(fixedClock(t0.Add(31*time.Minute))))

	visible, err := svc.Pool(context.Background(), 2, false)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, pool[0].BookingID, visible[0].BookingID)
}

func TestPoolOwnerSeesOwnReleaseImmediately(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	pool := []models.Booking{*releasedBooking(3, t0)}

	store := new(MockBookingStore)
	store.On("ListOpenMarket", mock.Anything).Return(pool, nil)

	vendors := new(MockVendorDirectory)
	vendors.On("IsWhitelisted", mock.Anything, uint(3)).Return(true, nil)

	svc := New(store, vendors, &RecordingNotifier{}, logger.New("test"), WithClock(fixedClock(t0.Add(5*time.Minute))))

	visible, err := svc.Pool(context.Background(), 3, false)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestPoolAdminUnfiltered(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	pool := []models.Booking{*releasedBooking(1, t0), *releasedBooking(2, t0)}

	store := new(MockBookingStore)
	store.On("ListOpenMarket", mock.Anything).Return(pool, nil)

	vendors := new(MockVendorDirectory)

	svc := New(store, vendors, &RecordingNotifier{}, logger.New("test"), WithClock(fixedClock(t0)))

	visible, err := svc.Pool(context.Background(), 0, true)
	assert.NoError(t, err)
	assert.Len(t, visible, 2)
	vendors.AssertNotCalled(t, "IsWhitelisted", mock.Anything, mock.Anything)
}

func TestPoolWhitelistLookupFailureDefaultsToNotWhitelisted(t *testing.T) {
	t0 := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	pool := []models.Booking{*releasedBooking(1, t0)}

	store := new(MockBookingStore)
	store.On("ListOpenMarket", mock.Anything).Return(pool, nil)

	vendors := new(MockVendorDirectory)
	vendors.On("IsWhitelisted", mock.Anything, uint(2)).Return(false, errors.New("directory down"))

	svc := New(store, vendors, &RecordingNotifier{}, logger.New("test"), WithClock(fixedClock(t0.Add(10*time.Minute))))

	visible, err := svc.Pool(context.Background(), 2, false)
	assert.NoError(t, err)
	assert.Empty(t, visible)
}
