package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"gorm.io/gorm"
)

type BookingInput struct {
	BookingID      string     `json:"bookingId"`
	Company        string     `json:"company"`
	GuestName      string     `json:"guestName"`
	GuestPhone     string     `json:"guestPhone"`
	GuestEmail     string     `json:"guestEmail"`
	VendorID       *uint      `json:"vendorId"`
	VehicleID      *uint      `json:"vehicleId"`
	DriverID       *uint      `json:"driverId"`
	InvoiceID      *uint      `json:"invoiceId"`
	Status         string     `json:"status" binding:"omitempty,oneof=Ongoing Completed Cancelled OpenMarket"`
	PickupTime     *time.Time `json:"pickupTime"`
	DropTime       *time.Time `json:"dropTime"`
	PickupLocation string     `json:"pickupLocation"`
	DropLocation   string     `json:"dropLocation"`
	Expenses       *float64   `json:"expenses"`
}

// publishBookingMutation applies the event-to-channel mapping for booking
// creates and updates: the owning vendor always hears about it privately,
// and a booking that is (or just became) OpenMarket is additionally
// announced on the broadcast channel. Private goes out first.
func publishBookingMutation(notifier services.Notifier, event string, booking *models.Booking) {
	notifier.NotifyVendor(booking.VendorID, event, booking)
	if booking.Status == models.BookingStatusOpenMarket {
		notifier.NotifyAllVendors(services.EventBookingOpenMarket, booking)
	}
}

// CreateBooking creates a booking owned by the caller's vendor (admins
// may create on behalf of any vendor). The owning vendor is notified on
// its private channel; a booking born directly in OpenMarket is also
// announced on the broadcast channel.
func CreateBooking(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		vendorID := c.GetUint("vendorId")
		if input.VendorID != nil && c.GetString("role") == "admin" {
			vendorID = *input.VendorID
		}
		if vendorID == 0 {
			c.JSON(400, gin.H{"error": "Booking requires an owning vendor"})
			return
		}

		booking := models.Booking{
			BookingID:      input.BookingID,
			Company:        input.Company,
			GuestName:      input.GuestName,
			GuestPhone:     input.GuestPhone,
			GuestEmail:     input.GuestEmail,
			VendorID:       vendorID,
			VehicleID:      input.VehicleID,
			DriverID:       input.DriverID,
			InvoiceID:      input.InvoiceID,
			Status:         models.BookingStatusOngoing,
			PickupTime:     input.PickupTime,
			DropTime:       input.DropTime,
			PickupLocation: input.PickupLocation,
			DropLocation:   input.DropLocation,
		}
		if input.Status != "" {
			booking.Status = models.BookingStatus(input.Status)
		}
		if input.Expenses != nil {
			booking.Expenses = *input.Expenses
		}
		if booking.BookingID == "" {
			booking.BookingID = uuid.NewString()
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		publishBookingMutation(notifier, services.EventBookingNew, &booking)

		c.JSON(201, booking)
	}
}

// GetBookings lists bookings, optionally filtered by status and vendor.
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Vehicle").Preload("Driver").Preload("Vendor").Preload("Invoice")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if vendorID := c.Query("vendorId"); vendorID != "" {
			query = query.Where("vendor_id = ?", vendorID)
		}

		var bookings []models.Booking
		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetBooking retrieves a single booking with its associations.
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.Booking
		if err := db.Preload("Vehicle").Preload("Driver").Preload("Vendor").Preload("Invoice").
			First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		c.JSON(200, booking)
	}
}

// UpdateBooking applies a partial update. Transitions to Completed or
// Cancelled are applied as plain field writes; only the open-market push
// has dedicated lifecycle rules, on its own endpoint. The owning vendor
// is always notified, and an update that lands the booking in OpenMarket
// is additionally broadcast to every vendor.
func UpdateBooking(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		updates := map[string]interface{}{}
		if input.Company != "" {
			updates["company"] = input.Company
		}
		if input.GuestName != "" {
			updates["guest_name"] = input.GuestName
		}
		if input.GuestPhone != "" {
			updates["guest_phone"] = input.GuestPhone
		}
		if input.GuestEmail != "" {
			updates["guest_email"] = input.GuestEmail
		}
		if input.VehicleID != nil {
			updates["vehicle_id"] = *input.VehicleID
		}
		if input.DriverID != nil {
			updates["driver_id"] = *input.DriverID
		}
		if input.InvoiceID != nil {
			updates["invoice_id"] = *input.InvoiceID
		}
		if input.Status != "" {
			updates["status"] = input.Status
		}
		if input.PickupTime != nil {
			updates["pickup_time"] = *input.PickupTime
		}
		if input.DropTime != nil {
			updates["drop_time"] = *input.DropTime
		}
		if input.PickupLocation != "" {
			updates["pickup_location"] = input.PickupLocation
		}
		if input.DropLocation != "" {
			updates["drop_location"] = input.DropLocation
		}
		if input.Expenses != nil {
			updates["expenses"] = *input.Expenses
		}

		if len(updates) > 0 {
			if err := db.Model(&booking).Updates(updates).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update booking"})
				return
			}
		}

		if err := db.Preload("Vehicle").Preload("Driver").Preload("Vendor").Preload("Invoice").
			First(&booking, booking.ID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to reload booking"})
			return
		}

		publishBookingMutation(notifier, services.EventBookingUpdate, &booking)

		c.JSON(200, booking)
	}
}

// DeleteBooking removes a booking. Only the former owner hears about it;
// deletions are never broadcast.
func DeleteBooking(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if err := db.Delete(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete booking"})
			return
		}

		notifier.NotifyVendor(booking.VendorID, services.EventBookingDelete, services.BookingDeleted{
			ID:        booking.ID,
			BookingID: booking.BookingID,
		})

		c.JSON(200, gin.H{"message": "Booking deleted"})
	}
}
