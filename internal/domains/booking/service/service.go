package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"homestay/config"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/repository"
	calendarService "homestay/internal/domains/calendar/service"
	propertyModel "homestay/internal/domains/property/model"
	propertyRepo "homestay/internal/domains/property/repository"
	userModel "homestay/internal/domains/user/model"
	userRepo "homestay/internal/domains/user/repository"
	"homestay/shared"
	"homestay/shared/cache"
	"homestay/shared/clock"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	eventCreated   = "booking.created"
	eventApproved  = "booking.approved"
	eventRejected  = "booking.rejected"
	eventConfirmed = "booking.confirmed"
	eventCancelled = "booking.cancelled"
)

// transitions maps a lifecycle event to the statuses it may start from.
// Idempotent re-entries (confirm on CONFIRMED, cancel on CANCELLED) are
// short-circuited before this table is consulted.
var transitions = map[string][]model.Status{
	eventApproved: {model.StatusRequested},
	eventRejected: {model.StatusRequested},
	eventConfirmed: {
		model.StatusRequested, model.StatusPending, model.StatusApproved,
		model.StatusAwaitingPayment, model.StatusCompleted, model.StatusExpired, model.StatusCheckedIn,
	},
	eventCancelled: {
		model.StatusRequested, model.StatusPending, model.StatusApproved,
		model.StatusAwaitingPayment, model.StatusConfirmed, model.StatusRejected,
		model.StatusExpired, model.StatusCheckedIn,
	},
}

func transitionAllowed(event string, from model.Status) bool {
	for _, status := range transitions[event] {
		if status == from {
			return true
		}
	}

	return false
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Approve(ctx context.Context, bookingID, hostID string) (dto.BookingResponse, error)
	Reject(ctx context.Context, bookingID, hostID, reason string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, bookingID string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, bookingID, actorID, reason string) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	propertyRepo propertyRepo.Property
	userRepo     userRepo.User
	availability calendarService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	propertyRepo propertyRepo.Property,
	userRepo userRepo.User,
	availability calendarService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	clk clock.Clock,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafkaClient,
		clock:        clk,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	now := s.clock.Now()

	if !booking.CheckIn.After(now) {
		return res, failure.BadRequestFromString("check-in date must be in the future") //nolint:wrapcheck
	}

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(booking.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") //nolint:wrapcheck
	}

	guestExists, err := s.userRepo.Exist(ctx, shared.FilterByID(booking.GuestID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return res, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return res, failure.NotFound("guest not found") //nolint:wrapcheck
	}

	available, err := s.availability.CheckAvailability(ctx, booking.PropertyID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return res, err
	}

	if !available {
		return res, failure.Conflict("selected dates are not available") //nolint:wrapcheck
	}

	instant := req.InstantBook || property.InstantBook

	holdMinutes := s.cfg.Booking.RequestHoldMinutes
	booking.Status = model.StatusRequested

	if instant {
		holdMinutes = s.cfg.Booking.InstantHoldMinutes
		booking.Status = model.StatusPending
	}

	holdExpiresAt := now.Add(time.Duration(holdMinutes) * time.Minute)
	booking.HoldExpiresAt = &holdExpiresAt

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	err = s.availability.CreateSoftHold(ctx, booking.PropertyID, booking.ID, booking.CheckIn, booking.CheckOut, holdMinutes)
	if err != nil {
		// Compensate so a booking row never outlives a failed hold.
		if deleteErr := s.repo.Delete(ctx, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); deleteErr != nil {
			log.Error().Err(deleteErr).Str("bookingID", booking.ID).Msg("failed to roll back booking after hold failure")
		}

		return res, err
	}

	log.Info().
		Str("bookingID", booking.ID).
		Str("propertyID", booking.PropertyID).
		Str("status", string(booking.Status)).
		Int("holdMinutes", holdMinutes).
		Msg("created booking with soft hold")

	s.afterTransition(ctx, booking, eventCreated)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, bookingID, hostID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.HostID != hostID {
		return res, failure.Conflict("only the host can approve this booking") //nolint:wrapcheck
	}

	if !transitionAllowed(eventApproved, booking.Status) {
		return res, failure.Conflict("booking is not awaiting approval") //nolint:wrapcheck
	}

	now := s.clock.Now()
	holdExpiresAt := now.Add(time.Duration(s.cfg.Booking.ApprovalWindowHours) * time.Hour)

	booking.Status = model.StatusApproved
	booking.ApprovedAt = &now
	booking.HoldExpiresAt = &holdExpiresAt

	err = s.update(ctx, bookingID, map[string]any{
		model.FieldStatus:        booking.Status,
		model.FieldApprovedAt:    booking.ApprovedAt,
		model.FieldHoldExpiresAt: booking.HoldExpiresAt,
	})
	if err != nil {
		return res, err
	}

	// The approval stands even when the extension fails. The hold keeps its
	// original expiry and the sweeper surfaces the gap later.
	err = s.availability.ExtendHold(ctx, booking.PropertyID, booking.ID, booking.CheckIn, booking.CheckOut, s.cfg.Booking.RequestHoldMinutes)
	if err != nil {
		log.Warn().Err(err).Str("bookingID", booking.ID).Msg("failed to extend hold after approval")

		err = nil
	}

	s.afterTransition(ctx, booking, eventApproved)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, bookingID, hostID, reason string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.HostID != hostID {
		return res, failure.Conflict("only the host can reject this booking") //nolint:wrapcheck
	}

	if !transitionAllowed(eventRejected, booking.Status) {
		return res, failure.Conflict("booking is not awaiting approval") //nolint:wrapcheck
	}

	if err := s.availability.ReleaseLock(ctx, booking.ID); err != nil {
		log.Warn().Err(err).Str("bookingID", booking.ID).Msg("failed to release lock for rejected booking")
	}

	if reason == constant.Empty {
		reason = "Rejected by host"
	}

	booking.Status = model.StatusRejected
	booking.CancellationReason = &reason

	err = s.update(ctx, bookingID, map[string]any{
		model.FieldStatus:             booking.Status,
		model.FieldCancellationReason: booking.CancellationReason,
	})
	if err != nil {
		return res, err
	}

	s.afterTransition(ctx, booking, eventRejected)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.Status == model.StatusConfirmed {
		res.FromModel(booking)

		return res, nil
	}

	if !transitionAllowed(eventConfirmed, booking.Status) {
		return res, failure.Conflict("cannot confirm a cancelled or rejected booking") //nolint:wrapcheck
	}

	err = s.availability.ConfirmHold(ctx, booking.PropertyID, booking.ID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return res, err
	}

	now := s.clock.Now()

	booking.Status = model.StatusConfirmed
	booking.ConfirmedAt = &now
	booking.HoldExpiresAt = nil

	err = s.update(ctx, bookingID, map[string]any{
		model.FieldStatus:        booking.Status,
		model.FieldConfirmedAt:   booking.ConfirmedAt,
		model.FieldHoldExpiresAt: nil,
	})
	if err != nil {
		return res, err
	}

	s.afterTransition(ctx, booking, eventConfirmed)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, bookingID, actorID, reason string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.GuestID != actorID && booking.HostID != actorID {
		return res, failure.Conflict("only the guest or host can cancel this booking") //nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		res.FromModel(booking)

		return res, nil
	}

	if !transitionAllowed(eventCancelled, booking.Status) {
		return res, failure.Conflict("cannot cancel a completed booking") //nolint:wrapcheck
	}

	if err := s.availability.ReleaseLock(ctx, booking.ID); err != nil {
		log.Warn().Err(err).Str("bookingID", booking.ID).Msg("failed to release lock for cancelled booking")
	}

	now := s.clock.Now()

	booking.Status = model.StatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = &actorID

	if reason != constant.Empty {
		booking.CancellationReason = &reason
	}

	err = s.update(ctx, bookingID, map[string]any{
		model.FieldStatus:             booking.Status,
		model.FieldCancelledAt:        booking.CancelledAt,
		model.FieldCancelledBy:        booking.CancelledBy,
		model.FieldCancellationReason: booking.CancellationReason,
	})
	if err != nil {
		return res, err
	}

	s.afterTransition(ctx, booking, eventCancelled)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getModel(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields[constant.FieldModifiedAt] = s.clock.Now()
	fields[constant.FieldModifiedBy] = user

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// afterTransition fans out the side effects every successful lifecycle change
// shares: cache invalidation and the event on the booking topic.
func (s *serviceImpl) afterTransition(ctx context.Context, booking model.Booking, event string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		message := kafka.Message{
			Key: booking.ID,
			Value: dto.BookingEvent{
				Type:       event,
				BookingID:  booking.ID,
				PropertyID: booking.PropertyID,
				GuestID:    booking.GuestID,
				HostID:     booking.HostID,
				Status:     string(booking.Status),
				OccurredAt: s.clock.Now().Format(time.RFC3339),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}
