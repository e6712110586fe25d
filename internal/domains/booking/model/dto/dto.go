package dto

import (
	"time"

	"github.com/google/uuid"

	"homestay/internal/domains/booking/model"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"
	"homestay/shared/validator"
)

type CreateBookingRequest struct {
	PropertyID      string  `json:"property_id"      validate:"required"`
	GuestID         string  `json:"guest_id"         validate:"required"`
	HostID          string  `json:"host_id"          validate:"required"`
	CheckIn         string  `json:"check_in"         validate:"required,calendardate"`
	CheckOut        string  `json:"check_out"        validate:"required,calendardate"`
	InstantBook     bool    `json:"instant_book"`
	Guests          int     `json:"guests"           validate:"omitempty,min=1"`
	NightlyRate     float64 `json:"nightly_rate"     validate:"omitempty,min=0"`
	Subtotal        float64 `json:"subtotal"         validate:"omitempty,min=0"`
	CleaningFee     float64 `json:"cleaning_fee"     validate:"omitempty,min=0"`
	ServiceFee      float64 `json:"service_fee"      validate:"omitempty,min=0"`
	TaxAmount       float64 `json:"tax_amount"       validate:"omitempty,min=0"`
	TotalPrice      float64 `json:"total_price"      validate:"omitempty,min=0"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := validator.ParseCalendarDate(c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := validator.ParseCalendarDate(c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:              uuid.NewString(),
		PropertyID:      c.PropertyID,
		GuestID:         c.GuestID,
		HostID:          c.HostID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Nights:          int(checkOut.Sub(checkIn).Hours() / 24),
		Guests:          c.Guests,
		NightlyRate:     c.NightlyRate,
		Subtotal:        c.Subtotal,
		CleaningFee:     c.CleaningFee,
		ServiceFee:      c.ServiceFee,
		TaxAmount:       c.TaxAmount,
		TotalPrice:      c.TotalPrice,
		PaymentStatus:   model.PaymentStatusPending,
		SpecialRequests: c.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	PropertyID         string  `json:"property_id"`
	GuestID            string  `json:"guest_id"`
	HostID             string  `json:"host_id"`
	CheckIn            string  `json:"check_in"`
	CheckOut           string  `json:"check_out"`
	Nights             int     `json:"nights"`
	Guests             int     `json:"guests"`
	NightlyRate        float64 `json:"nightly_rate"`
	Subtotal           float64 `json:"subtotal"`
	CleaningFee        float64 `json:"cleaning_fee"`
	ServiceFee         float64 `json:"service_fee"`
	TaxAmount          float64 `json:"tax_amount"`
	TotalPrice         float64 `json:"total_price"`
	Status             string  `json:"status"`
	PaymentStatus      string  `json:"payment_status"`
	HoldExpiresAt      *string `json:"hold_expires_at,omitempty"`
	ApprovedAt         *string `json:"approved_at,omitempty"`
	ConfirmedAt        *string `json:"confirmed_at,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	CancelledBy        *string `json:"cancelled_by,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	SpecialRequests    *string `json:"special_requests,omitempty"`
	gDto.Metadata
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.PropertyID = booking.PropertyID
	r.GuestID = booking.GuestID
	r.HostID = booking.HostID
	r.CheckIn = booking.CheckIn.Format(constant.CalendarDateFormat)
	r.CheckOut = booking.CheckOut.Format(constant.CalendarDateFormat)
	r.Nights = booking.Nights
	r.Guests = booking.Guests
	r.NightlyRate = booking.NightlyRate
	r.Subtotal = booking.Subtotal
	r.CleaningFee = booking.CleaningFee
	r.ServiceFee = booking.ServiceFee
	r.TaxAmount = booking.TaxAmount
	r.TotalPrice = booking.TotalPrice
	r.Status = string(booking.Status)
	r.PaymentStatus = string(booking.PaymentStatus)
	r.HoldExpiresAt = formatTimePtr(booking.HoldExpiresAt)
	r.ApprovedAt = formatTimePtr(booking.ApprovedAt)
	r.ConfirmedAt = formatTimePtr(booking.ConfirmedAt)
	r.CancelledAt = formatTimePtr(booking.CancelledAt)
	r.CancelledBy = booking.CancelledBy
	r.CancellationReason = booking.CancellationReason
	r.SpecialRequests = booking.SpecialRequests
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the booking events topic on every
// lifecycle transition.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	PropertyID string `json:"property_id"`
	GuestID    string `json:"guest_id"`
	HostID     string `json:"host_id"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
