package dto

import (
	"time"

	"homestay/internal/domains/calendar/model"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/timezone"
	"homestay/shared/validator"
)

type CalendarDayResponse struct {
	PropertyID    string   `json:"property_id"`
	Date          string   `json:"date"`
	PricePerNight *float64 `json:"price_per_night,omitempty"`
	IsAvailable   bool     `json:"is_available"`
	ReasonBlocked *string  `json:"reason_blocked,omitempty"`
	LockStatus    string   `json:"lock_status"`
	LockBookingID *string  `json:"lock_booking_id,omitempty"`
	LockExpiresAt *string  `json:"lock_expires_at,omitempty"`
}

func (r *CalendarDayResponse) FromModel(day model.CalendarDay) {
	r.PropertyID = day.PropertyID
	r.Date = day.Date.Format(constant.CalendarDateFormat)
	r.PricePerNight = day.PricePerNight
	r.IsAvailable = day.IsAvailable
	r.ReasonBlocked = day.ReasonBlocked
	r.LockStatus = string(day.LockStatus)
	r.LockBookingID = day.LockBookingID

	if day.LockExpiresAt != nil {
		expiresAt := timezone.Format(*day.LockExpiresAt, constant.DateFormat)
		r.LockExpiresAt = &expiresAt
	}
}

type GetCalendarResponse struct {
	Days []CalendarDayResponse `json:"days"`
}

func (r *GetCalendarResponse) FromModels(days []model.CalendarDay) {
	r.Days = make([]CalendarDayResponse, len(days))

	for i, day := range days {
		r.Days[i].FromModel(day)
	}
}

type CheckAvailabilityResponse struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Available  bool   `json:"available"`
}

type BlockDatesRequest struct {
	Dates  []string `json:"dates"  validate:"required,min=1,dive,calendardate"`
	Reason string   `json:"reason" validate:"required"`
}

type UnblockDatesRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,calendardate"`
}

// ParseDates converts the request's date strings into calendar dates.
func ParseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))

	for _, value := range raw {
		parsed, err := validator.ParseCalendarDate(value)
		if err != nil {
			return nil, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
		}

		dates = append(dates, model.Normalize(parsed))
	}

	return dates, nil
}
