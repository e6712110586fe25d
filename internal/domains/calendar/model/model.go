package model

import (
	"time"
)

const (
	TableName  = "property_calendars"
	EntityName = "calendar_day"

	FieldID            = "id"
	FieldPropertyID    = "property_id"
	FieldDate          = "date"
	FieldPricePerNight = "price_per_night"
	FieldIsAvailable   = "is_available"
	FieldReasonBlocked = "reason_blocked"
	FieldLockStatus    = "lock_status"
	FieldLockBookingID = "lock_booking_id"
	FieldLockExpiresAt = "lock_expires_at"
	FieldUpdatedAt     = "updated_at"
)

type LockStatus string

const (
	LockStatusNone      LockStatus = "NONE"
	LockStatusSoftHold  LockStatus = "SOFT_HOLD"
	LockStatusConfirmed LockStatus = "CONFIRMED"
)

// CalendarDay is one property-date cell of the availability calendar.
// Rows are created lazily the first time a date is held or blocked and are
// never deleted, only reset to LockStatusNone.
type CalendarDay struct {
	ID            string     `db:"id"`
	PropertyID    string     `db:"property_id"`
	Date          time.Time  `db:"date"`
	PricePerNight *float64   `db:"price_per_night"`
	IsAvailable   bool       `db:"is_available"`
	ReasonBlocked *string    `db:"reason_blocked"`
	LockStatus    LockStatus `db:"lock_status"`
	LockBookingID *string    `db:"lock_booking_id"`
	LockExpiresAt *time.Time `db:"lock_expires_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Unavailable reports whether the day cannot be booked at the given instant.
// A day is unavailable when it is administratively blocked, or when it
// carries a lock that has not lapsed. A lock without an expiry never lapses
// on its own.
func (d *CalendarDay) Unavailable(now time.Time) bool {
	if !d.IsAvailable {
		return true
	}

	if d.LockStatus == LockStatusNone {
		return false
	}

	return d.LockExpiresAt == nil || d.LockExpiresAt.After(now)
}

// HoldExpired reports whether a SOFT_HOLD day has passed its expiry.
func (d *CalendarDay) HoldExpired(now time.Time) bool {
	return d.LockStatus == LockStatusSoftHold && d.LockExpiresAt != nil && !d.LockExpiresAt.After(now)
}

// Normalize truncates a timestamp to its calendar date at UTC midnight.
func Normalize(t time.Time) time.Time {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateRange expands [checkIn, checkOut) into the calendar dates a stay
// occupies. The check-out date itself is excluded.
func DateRange(checkIn, checkOut time.Time) []time.Time {
	dates := []time.Time{}

	for current := Normalize(checkIn); current.Before(Normalize(checkOut)); current = current.AddDate(0, 0, 1) {
		dates = append(dates, current)
	}

	return dates
}
