package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"homestay/infras/otel"
	"homestay/internal/domains/calendar/model"
	"homestay/internal/domains/calendar/model/dto"
	"homestay/internal/domains/calendar/repository"
	"homestay/shared/clock"
	"homestay/shared/constant"
	"homestay/shared/failure"
)

// Availability owns the calendar locking protocol. Conflict checks and the
// matching writes always run in one transaction with the touched rows
// locked, so two overlapping holds cannot both pass the check.
type Availability interface {
	CheckAvailability(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error)
	GetCalendar(ctx context.Context, propertyID string, startDate, endDate time.Time) (dto.GetCalendarResponse, error)
	CreateSoftHold(ctx context.Context, propertyID, bookingID string, checkIn, checkOut time.Time, holdMinutes int) error
	ConfirmHold(ctx context.Context, propertyID, bookingID string, checkIn, checkOut time.Time) error
	ExtendHold(ctx context.Context, propertyID, bookingID string, checkIn, checkOut time.Time, additionalMinutes int) error
	ReleaseLock(ctx context.Context, bookingID string) error
	ReleaseExpiredHolds(ctx context.Context) (int, error)
	BlockDates(ctx context.Context, propertyID string, dates []time.Time, reason string) error
	UnblockDates(ctx context.Context, propertyID string, dates []time.Time) error
}

type serviceImpl struct {
	repo  repository.Calendar
	clock clock.Clock
	otel  otel.Otel
}

func New(repo repository.Calendar, clk clock.Clock, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		clock: clk,
		otel:  otel,
	}
}

func validateRange(checkIn, checkOut time.Time) error {
	if !checkIn.Before(checkOut) {
		return failure.BadRequestFromString("check-in date must be before check-out date") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateRange(checkIn, checkOut); err != nil {
		return false, err
	}

	days, err := s.repo.GetRange(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Str("propertyID", propertyID).Msg("failed to load calendar range")

		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	now := s.clock.Now()

	for _, day := range days {
		if day.Unavailable(now) {
			return false, nil
		}
	}

	return true, nil
}

func (s *serviceImpl) GetCalendar(ctx context.Context, propertyID string, startDate, endDate time.Time) (res dto.GetCalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCalendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateRange(startDate, endDate); err != nil {
		return res, err
	}

	days, err := s.repo.GetRange(ctx, propertyID, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Str("propertyID", propertyID).Msg("failed to load calendar range")

		return res, fmt.Errorf("failed to get calendar: %w", err)
	}

	res.FromModels(days)

	return res, nil
}

func (s *serviceImpl) CreateSoftHold(ctx context.Context, propertyID, bookingID string, checkIn, checkOut time.Time, holdMinutes int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSoftHold")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateRange(checkIn, checkOut); err != nil {
		return err
	}

	dates := model.DateRange(checkIn, checkOut)
	now := s.clock.Now()
	expiresAt := now.Add(time.Duration(holdMinutes) * time.Minute)

	err = s.repo.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		days, err := tx.LockRange(ctx, propertyID, dates)
		if err != nil {
			return fmt.Errorf("failed to lock calendar rows: %w", err)
		}

		conflicts := 0

		for _, day := range days {
			if day.Unavailable(now) {
				conflicts++
			}
		}

		if conflicts > 0 {
			return failure.Conflict(fmt.Sprintf("cannot create hold: %d date(s) are already booked or held", conflicts)) //nolint:wrapcheck
		}

		return tx.UpsertHolds(ctx, propertyID, bookingID, dates, expiresAt, now)
	})
	if err != nil {
		if failure.GetCode(err) >= 500 {
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to create soft hold")
		}

		return err
	}

	log.Info().
		Str("propertyID", propertyID).
		Str("bookingID", bookingID).
		Int("dates", len(dates)).
		Int("holdMinutes", holdMinutes).
		Msg("created soft hold")

	return nil
}

func (s *serviceImpl) ConfirmHold(ctx context.Context, propertyID, bookingID string, checkIn, checkOut time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmHold")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateRange(checkIn, checkOut); err != nil {
		return err
	}

	dates := model.DateRange(checkIn, checkOut)
	now := s.clock.Now()

	// Rows this booking already confirmed on an earlier attempt count toward
	// the required total, so a retry after a partial failure converges
	// instead of tripping the count guard.
	err = s.repo.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		holds, err := tx.LockHolds(ctx, propertyID, bookingID, dates, []model.LockStatus{model.LockStatusSoftHold, model.LockStatusConfirmed})
		if err != nil {
			return fmt.Errorf("failed to lock holds: %w", err)
		}

		if len(holds) != len(dates) {
			return failure.Conflict(fmt.Sprintf("cannot confirm: expected %d held date(s), found %d", len(dates), len(holds))) //nolint:wrapcheck
		}

		for _, hold := range holds {
			if hold.HoldExpired(now) {
				return failure.Conflict("cannot confirm: soft hold has expired") //nolint:wrapcheck
			}
		}

		return tx.ConfirmHolds(ctx, propertyID, bookingID, dates, now)
	})
	if err != nil {
		if failure.GetCode(err) >= 500 {
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to confirm hold")
		}

		return err
	}

	log.Info().Str("propertyID", propertyID).Str("bookingID", bookingID).Msg("confirmed hold")

	return nil
}

func (s *serviceImpl) ExtendHold(ctx context.Context, propertyID, bookingID string, checkIn, checkOut time.Time, additionalMinutes int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtendHold")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateRange(checkIn, checkOut); err != nil {
		return err
	}

	dates := model.DateRange(checkIn, checkOut)
	now := s.clock.Now()
	expiresAt := now.Add(time.Duration(additionalMinutes) * time.Minute)

	err = s.repo.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		holds, err := tx.LockHolds(ctx, propertyID, bookingID, dates, []model.LockStatus{model.LockStatusSoftHold})
		if err != nil {
			return fmt.Errorf("failed to lock holds: %w", err)
		}

		if len(holds) == 0 {
			return failure.NotFound("no soft hold found for this booking") //nolint:wrapcheck
		}

		for _, hold := range holds {
			if hold.HoldExpired(now) {
				return failure.Conflict("cannot extend: soft hold has expired") //nolint:wrapcheck
			}
		}

		return tx.ExtendHolds(ctx, propertyID, bookingID, dates, expiresAt, now)
	})
	if err != nil {
		if failure.GetCode(err) >= 500 {
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to extend hold")
		}

		return err
	}

	log.Info().
		Str("propertyID", propertyID).
		Str("bookingID", bookingID).
		Int("additionalMinutes", additionalMinutes).
		Msg("extended hold")

	return nil
}

// ReleaseLock clears every calendar lock held by the booking, whatever its
// status. Releasing a booking with no locks is a no-op.
func (s *serviceImpl) ReleaseLock(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseLock")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.ReleaseByBooking(ctx, bookingID, s.clock.Now()); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to release lock")

		return fmt.Errorf("failed to release lock: %w", err)
	}

	return nil
}

func (s *serviceImpl) ReleaseExpiredHolds(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseExpiredHolds")
	defer scope.End()
	defer scope.TraceIfError(err)

	count, err = s.repo.ReleaseExpired(ctx, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to release expired holds")

		return 0, fmt.Errorf("failed to release expired holds: %w", err)
	}

	return count, nil
}

// BlockDates marks dates administratively unavailable. It only touches the
// availability flag and reason, never the booking lock fields.
func (s *serviceImpl) BlockDates(ctx context.Context, propertyID string, dates []time.Time, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BlockDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(dates) == 0 {
		return failure.BadRequestFromString("at least one date is required") //nolint:wrapcheck
	}

	now := s.clock.Now()

	err = s.repo.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.UpsertBlocks(ctx, propertyID, normalize(dates), reason, now)
	})
	if err != nil {
		log.Error().Err(err).Str("propertyID", propertyID).Msg("failed to block dates")

		return err
	}

	return nil
}

func (s *serviceImpl) UnblockDates(ctx context.Context, propertyID string, dates []time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnblockDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(dates) == 0 {
		return failure.BadRequestFromString("at least one date is required") //nolint:wrapcheck
	}

	if err = s.repo.Unblock(ctx, propertyID, normalize(dates), s.clock.Now()); err != nil {
		log.Error().Err(err).Str("propertyID", propertyID).Msg("failed to unblock dates")

		return fmt.Errorf("failed to unblock dates: %w", err)
	}

	return nil
}

func normalize(dates []time.Time) []time.Time {
	normalized := make([]time.Time, len(dates))

	for i, date := range dates {
		normalized[i] = model.Normalize(date)
	}

	return normalized
}
