package database

import (
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"gorm.io/gorm"
)

// RunMigrations applies the constraints AutoMigrate does not cover.
func RunMigrations(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.Booking{}) {
		// Status is compared in conditional updates, so keep the value set closed.
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('Ongoing', 'Completed', 'Cancelled', 'OpenMarket'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Invoice{}) {
		db.Exec(`ALTER TABLE invoices DROP CONSTRAINT IF EXISTS invoices_status_check`)
		if err := db.Exec(`ALTER TABLE invoices ADD CONSTRAINT invoices_status_check CHECK (status IN ('Pending', 'Paid'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('vendor', 'admin'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
