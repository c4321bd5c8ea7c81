package repository

import (
	"context"
	"errors"

	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"gorm.io/gorm"
)

// VendorRepo resolves vendor whitelist flags, consulting the Redis cache
// before the vendors table. The cache is optional.
type VendorRepo struct {
	db    *gorm.DB
	cache *services.VendorCache
}

func NewVendorRepo(db *gorm.DB, cache *services.VendorCache) *VendorRepo {
	return &VendorRepo{db: db, cache: cache}
}

// IsWhitelisted reports false for unknown vendors: a vendor without a
// record gets no early access rather than an error.
func (r *VendorRepo) IsWhitelisted(ctx context.Context, vendorID uint) (bool, error) {
	if r.cache != nil {
		if flag, found, err := r.cache.GetWhitelisted(ctx, vendorID); err == nil && found {
			return flag, nil
		}
	}

	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if r.cache != nil {
		// Cache write failures only cost the next lookup a table read.
		_ = r.cache.SetWhitelisted(ctx, vendorID, vendor.Whitelisted)
	}
	return vendor.Whitelisted, nil
}
