package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusOngoing    BookingStatus = "Ongoing"
	BookingStatusCompleted  BookingStatus = "Completed"
	BookingStatusCancelled  BookingStatus = "Cancelled"
	BookingStatusOpenMarket BookingStatus = "OpenMarket"
)

// OpenMarketInfo records a booking's release to the open market. Pushed,
// PushedAt and WhitelistedOnlyUntil are set exactly once, at release time,
// and are never cleared by later status changes.
type OpenMarketInfo struct {
	Pushed               bool       `json:"pushed" gorm:"column:pushed;not null;default:false"`
	PushedAt             *time.Time `json:"pushedAt" gorm:"column:pushed_at"`
	WhitelistedOnlyUntil *time.Time `json:"whitelistedOnlyUntil" gorm:"column:whitelisted_only_until"`
}

// Booking is a trip booking. BookingID is the externally visible
// identifier; the gorm primary key stays internal.
type Booking struct {
	gorm.Model
	BookingID      string         `json:"bookingId" gorm:"column:booking_id;unique;not null"`
	Company        string         `json:"company" gorm:"column:company"`
	GuestName      string         `json:"guestName" gorm:"column:guest_name"`
	GuestPhone     string         `json:"guestPhone" gorm:"column:guest_phone"`
	GuestEmail     string         `json:"guestEmail" gorm:"column:guest_email"`
	VendorID       uint           `json:"vendorId" gorm:"column:vendor_id;not null"`
	Vendor         *Vendor        `json:"vendor,omitempty"`
	VehicleID      *uint          `json:"vehicleId" gorm:"column:vehicle_id"`
	Vehicle        *Vehicle       `json:"vehicle,omitempty"`
	DriverID       *uint          `json:"driverId" gorm:"column:driver_id"`
	Driver         *Driver        `json:"driver,omitempty"`
	InvoiceID      *uint          `json:"invoiceId" gorm:"column:invoice_id"`
	Invoice        *Invoice       `json:"invoice,omitempty"`
	Status         BookingStatus  `json:"status" gorm:"column:status;not null;default:'Ongoing'"`
	PickupTime     *time.Time     `json:"pickupTime" gorm:"column:pickup_time"`
	DropTime       *time.Time     `json:"dropTime" gorm:"column:drop_time"`
	PickupLocation string         `json:"pickupLocation" gorm:"column:pickup_location"`
	DropLocation   string         `json:"dropLocation" gorm:"column:drop_location"`
	Expenses       float64        `json:"expenses" gorm:"column:expenses"`
	OpenMarket     OpenMarketInfo `json:"openMarket" gorm:"embedded;embeddedPrefix:open_market_"`
}
