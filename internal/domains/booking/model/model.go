package model

import (
	"homestay/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldPropertyID         = "property_id"
	FieldGuestID            = "guest_id"
	FieldHostID             = "host_id"
	FieldCheckIn            = "check_in"
	FieldCheckOut           = "check_out"
	FieldNights             = "nights"
	FieldStatus             = "status"
	FieldPaymentStatus      = "payment_status"
	FieldHoldExpiresAt      = "hold_expires_at"
	FieldApprovedAt         = "approved_at"
	FieldConfirmedAt        = "confirmed_at"
	FieldCancelledAt        = "cancelled_at"
	FieldCancelledBy        = "cancelled_by"
	FieldCancellationReason = "cancellation_reason"
)

type Status string

const (
	StatusRequested       Status = "REQUESTED"
	StatusPending         Status = "PENDING"
	StatusApproved        Status = "APPROVED"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusConfirmed       Status = "CONFIRMED"
	StatusRejected        Status = "REJECTED"
	StatusCancelled       Status = "CANCELLED"
	StatusCompleted       Status = "COMPLETED"
	StatusExpired         Status = "EXPIRED"
	StatusCheckedIn       Status = "CHECKED_IN"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusPaid              PaymentStatus = "PAID"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

type Booking struct {
	ID                 string        `db:"id"`
	PropertyID         string        `db:"property_id"`
	GuestID            string        `db:"guest_id"`
	HostID             string        `db:"host_id"`
	CheckIn            time.Time     `db:"check_in"`
	CheckOut           time.Time     `db:"check_out"`
	Nights             int           `db:"nights"`
	Guests             int           `db:"guests"`
	NightlyRate        float64       `db:"nightly_rate"`
	Subtotal           float64       `db:"subtotal"`
	CleaningFee        float64       `db:"cleaning_fee"`
	ServiceFee         float64       `db:"service_fee"`
	TaxAmount          float64       `db:"tax_amount"`
	TotalPrice         float64       `db:"total_price"`
	Status             Status        `db:"status"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	HoldExpiresAt      *time.Time    `db:"hold_expires_at"`
	ApprovedAt         *time.Time    `db:"approved_at"`
	ConfirmedAt        *time.Time    `db:"confirmed_at"`
	CancelledAt        *time.Time    `db:"cancelled_at"`
	CancelledBy        *string       `db:"cancelled_by"`
	CancellationReason *string       `db:"cancellation_reason"`
	SpecialRequests    *string       `db:"special_requests"`
	model.Metadata
}
