package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/openmarket"
)

// OpenMarketService is the slice of the open-market service the REST
// layer needs.
type OpenMarketService interface {
	Push(ctx context.Context, id uint) (*models.Booking, error)
	Pool(ctx context.Context, vendorID uint, admin bool) ([]models.Booking, error)
}

// PushToOpenMarket releases an Ongoing booking to the open market.
// A missing booking and a booking in the wrong state are distinct
// failures, so clients can tell "nothing to push" from "already pushed".
func PushToOpenMarket(svc OpenMarketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking id"})
			return
		}

		booking, err := svc.Push(c.Request.Context(), uint(id))
		if err != nil {
			switch {
			case errors.Is(err, openmarket.ErrBookingNotFound):
				c.JSON(404, gin.H{"error": "Booking not found"})
			case errors.Is(err, openmarket.ErrInvalidTransition):
				c.JSON(400, gin.H{"error": "Only ongoing bookings can be pushed"})
			default:
				c.JSON(500, gin.H{"error": "Failed to push booking"})
			}
			return
		}

		c.JSON(200, booking)
	}
}

// GetOpenMarketBookings returns the pool as seen by the caller: filtered
// through the visibility rule for vendors, unfiltered for admins.
func GetOpenMarketBookings(svc OpenMarketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := c.GetString("role") == "admin"
		vendorID := c.GetUint("vendorId")

		bookings, err := svc.Pool(c.Request.Context(), vendorID, admin)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch open market bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}
