package openmarket

import (
	"time"

	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
)

// WhitelistWindow is how long a freshly released booking stays restricted
// before every vendor can see it.
const WhitelistWindow = 30 * time.Minute

// Visible reports whether an open-market booking may be shown to the
// requesting vendor at the given instant. It is pure and total: now is an
// explicit input, nil bookings and unset windows are handled, and no
// lookup happens inside.
//
// Precedence:
//  1. only bookings currently in OpenMarket that have actually been
//     released qualify; a booking that moved on after release stays out
//     even though its pushed flag is preserved
//  2. the owning vendor always sees its own release
//  3. once the window has elapsed (now at or past whitelistedOnlyUntil)
//     every vendor sees it
//  4. inside the window, visibility requires both the whitelist flag and
//     ownership. A non-owning vendor gets no early access, whitelisted or
//     not. TODO(product): confirm whether whitelisted non-owners should be
//     admitted during the window; the current rule never admits one.
func Visible(now time.Time, b *models.Booking, vendorID uint, whitelisted bool) bool {
	if b == nil {
		return false
	}
	if b.Status != models.BookingStatusOpenMarket || !b.OpenMarket.Pushed {
		return false
	}
	if b.VendorID == vendorID {
		return true
	}
	until := b.OpenMarket.WhitelistedOnlyUntil
	if until == nil || !now.Before(*until) {
		return true
	}
	return whitelisted && b.VendorID == vendorID
}
