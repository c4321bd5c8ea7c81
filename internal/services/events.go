package services

import "github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"

// Server-to-client event names. The open-market event is the only one
// published on the shared broadcast channel; everything else goes to the
// owning vendor's private channel.
const (
	EventBookingNew        = "booking:new"
	EventBookingUpdate     = "booking:update"
	EventBookingDelete     = "booking:delete"
	EventBookingOpenMarket = "booking:openMarket"

	EventDriverNew     = "driver:new"
	EventDriverUpdate  = "driver:update"
	EventVehicleNew    = "vehicle:new"
	EventVehicleUpdate = "vehicle:update"
	EventInvoiceNew    = "invoice:new"
	EventInvoiceUpdate = "invoice:update"
)

// Envelope is the wire format for every fan-out message.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// BookingDeleted is the payload for booking:delete. Deletions carry only
// the external identifier; clients drop the booking by identity.
type BookingDeleted struct {
	ID        uint   `json:"id"`
	BookingID string `json:"bookingId"`
}

// Payloads for the remaining events are the entity records themselves.
// Clients treat every event as a hint to re-sync by identity, so the
// full record is sent rather than a field delta.
type (
	BookingPayload = *models.Booking
	DriverPayload  = *models.Driver
	VehiclePayload = *models.Vehicle
	InvoicePayload = *models.Invoice
)

// Notifier is the publish port of the fan-out layer. Both methods are
// best-effort: delivery problems are logged by the implementation and
// never returned to the caller, so a failed publish can never fail the
// state mutation that triggered it.
type Notifier interface {
	NotifyVendor(vendorID uint, event string, payload interface{})
	NotifyAllVendors(event string, payload interface{})
}
