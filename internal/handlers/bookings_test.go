package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
)

type publishRecord struct {
	Broadcast bool
	VendorID  uint
	Event     string
}

type recordingNotifier struct {
	records []publishRecord
}

func (n *recordingNotifier) NotifyVendor(vendorID uint, event string, payload interface{}) {
	n.records = append(n.records, publishRecord{VendorID: vendorID, Event: event})
}

func (n *recordingNotifier) NotifyAllVendors(event string, payload interface{}) {
	n.records = append(n.records, publishRecord{Broadcast: true, Event: event})
}

func TestPublishBookingMutation_ongoingStaysPrivate(t *testing.T) {
	notifier := &recordingNotifier{}
	booking := &models.Booking{VendorID: 4, Status: models.BookingStatusOngoing}

	publishBookingMutation(notifier, services.EventBookingUpdate, booking)

	assert.Equal(t, []publishRecord{
		{VendorID: 4, Event: services.EventBookingUpdate},
	}, notifier.records)
}

func TestPublishBookingMutation_completedStaysPrivate(t *testing.T) {
	notifier := &recordingNotifier{}
	booking := &models.Booking{VendorID: 4, Status: models.BookingStatusCompleted}

	publishBookingMutation(notifier, services.EventBookingUpdate, booking)

	assert.Len(t, notifier.records, 1)
	assert.False(t, notifier.records[0].Broadcast)
}

// A generic update that lands a booking in OpenMarket broadcasts too,
// even though it bypassed the dedicated push endpoint.
func TestPublishBookingMutation_openMarketBroadcasts(t *testing.T) {
	notifier := &recordingNotifier{}
	booking := &models.Booking{VendorID: 4, Status: models.BookingStatusOpenMarket}

	publishBookingMutation(notifier, services.EventBookingUpdate, booking)

	assert.Equal(t, []publishRecord{
		{VendorID: 4, Event: services.EventBookingUpdate},
		{Broadcast: true, Event: services.EventBookingOpenMarket},
	}, notifier.records)
}

func TestPublishBookingMutation_createdInOpenMarketBroadcasts(t *testing.T) {
	notifier := &recordingNotifier{}
	booking := &models.Booking{VendorID: 9, Status: models.BookingStatusOpenMarket}

	publishBookingMutation(notifier, services.EventBookingNew, booking)

	assert.Equal(t, []publishRecord{
		{VendorID: 9, Event: services.EventBookingNew},
		{Broadcast: true, Event: services.EventBookingOpenMarket},
	}, notifier.records)
}
