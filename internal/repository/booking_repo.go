package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/openmarket"
	"gorm.io/gorm"
)

// BookingRepo is the gorm-backed booking store.
type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Vehicle").Preload("Driver").Preload("Vendor").Preload("Invoice").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, openmarket.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ReleaseToOpenMarket runs the push transition as one conditional UPDATE.
// The status guard lives in the WHERE clause, so two concurrent releases
// of the same booking cannot both report success.
func (r *BookingRepo) ReleaseToOpenMarket(ctx context.Context, id uint, pushedAt, whitelistedOnlyUntil time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingStatusOngoing).
		Updates(map[string]interface{}{
			"status":                             models.BookingStatusOpenMarket,
			"open_market_pushed":                 true,
			"open_market_pushed_at":              pushedAt,
			"open_market_whitelisted_only_until": whitelistedOnlyUntil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListOpenMarket re-checks status, not just the pushed flag: release
// metadata survives later status changes, so pushed alone says nothing
// about whether a booking is still in the pool.
func (r *BookingRepo) ListOpenMarket(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND open_market_pushed = ?", models.BookingStatusOpenMarket, true).
		Preload("Vehicle").Preload("Driver").Preload("Vendor").
		Find(&bookings).Error
	return bookings, err
}
