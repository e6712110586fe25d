package booking

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/validator"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/approve", handler.ApproveBooking)
		routerGroup.Post("/{id}/reject", handler.RejectBooking)
		routerGroup.Post("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
	})
}

func actorFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor, ok := r.Context().Value(constant.ContextKeyUserID).(string)
	if !ok || actor == "" {
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return "", false
	}

	return actor, true
}

// CreateBooking creates a booking and places a soft hold on its dates.
// @Summary Create a new booking
// @Description Create a booking for a property and date range. Instant-book properties start PENDING; others start REQUESTED and await host approval.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves bookings with optional filtering.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param property_id query string false "Filter by property ID"
// @Param guest_id query string false "Filter by guest ID"
// @Param host_id query string false "Filter by host ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldPropertyID, model.FieldGuestID, model.FieldHostID, model.FieldStatus} {
		value := r.URL.Query().Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// ApproveBooking approves a requested booking as the host.
// @Summary Approve a booking
// @Description Approve a REQUESTED booking. The guest then has the approval window to complete payment.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Approved booking"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Approve(ctx, id, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking approved by host " + actor)

	response.WithJSON(w, http.StatusOK, booking)
}

// RejectBooking rejects a requested booking as the host.
// @Summary Reject a booking
// @Description Reject a REQUESTED booking and release its calendar hold.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RejectBookingRequest false "Reject Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Rejected booking"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectBookingRequest{}
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	booking, err := handler.service.Reject(ctx, id, actor, req.Reason)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking rejected by host " + actor)

	response.WithJSON(w, http.StatusOK, booking)
}

// ConfirmBooking confirms a booking after successful payment.
// @Summary Confirm a booking
// @Description Convert the booking's soft hold into a permanent confirmed lock. Idempotent for already confirmed bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Confirmed booking"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Confirm(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking confirmed successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a booking as the guest or host.
// @Summary Cancel a booking
// @Description Cancel a booking and release its calendar locks. Idempotent for already cancelled bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Cancel Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Cancelled booking"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CancelBookingRequest{}
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	booking, err := handler.service.Cancel(ctx, id, actor, req.Reason)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled by " + actor)

	response.WithJSON(w, http.StatusOK, booking)
}
