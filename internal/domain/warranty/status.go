package warranty

import (
	"math"
	"time"
)

// Status labels
const (
	StatusExpired      = "Expired"
	StatusExpiringSoon = "Expiring Soon"
	StatusActive       = "Active"
)

// ExpiringSoonDays is the window within which a warranty counts as
// "Expiring Soon".
const ExpiringSoonDays = 30

// DaysUntilExpiry returns the whole number of days until the expiration
// date, rounding partial days up. Past dates yield zero or negative values.
func DaysUntilExpiry(expirationDate, now time.Time) int {
	return int(math.Ceil(expirationDate.Sub(now).Hours() / 24))
}

// Classify derives the warranty status from its expiration date relative
// to now. Pure; no persistence side effects.
func Classify(expirationDate, now time.Time) string {
	days := DaysUntilExpiry(expirationDate, now)
	switch {
	case days <= 0:
		return StatusExpired
	case days <= ExpiringSoonDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}
