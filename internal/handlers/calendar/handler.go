package calendar

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/calendar/model/dto"
	"homestay/internal/domains/calendar/service"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/validator"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties/{propertyId}", func(routerGroup chi.Router) {
		routerGroup.Get("/calendar", handler.GetCalendar)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Post("/calendar/block", handler.BlockDates)
		routerGroup.Post("/calendar/unblock", handler.UnblockDates)
	})
}

// GetCalendar returns the calendar days for a property over a date range.
// @Summary Get a property's calendar
// @Description Retrieve per-day availability and lock state for a property between two dates.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param propertyId path string true "Property ID"
// @Param start_date query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param end_date query string true "Range end (YYYY-MM-DD, exclusive)"
// @Success 200 {object} response.Data[dto.GetCalendarResponse] "Calendar days"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{propertyId}/calendar [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	propertyID := chi.URLParam(r, constant.RequestParamPropertyID)

	startDate, err := validator.ParseCalendarDate(r.URL.Query().Get(constant.RequestParamStartDate))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("start_date must be a valid date (YYYY-MM-DD)"))

		return
	}

	endDate, err := validator.ParseCalendarDate(r.URL.Query().Get(constant.RequestParamEndDate))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("end_date must be a valid date (YYYY-MM-DD)"))

		return
	}

	calendar, err := handler.service.GetCalendar(ctx, propertyID, startDate, endDate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Calendar retrieved successfully")

	response.WithJSON(w, http.StatusOK, calendar)
}

// CheckAvailability reports whether a property is free for a stay.
// @Summary Check availability
// @Description Check whether every night in [check_in, check_out) is available for the property.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param propertyId path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD, exclusive)"
// @Success 200 {object} response.Data[dto.CheckAvailabilityResponse] "Availability result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{propertyId}/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	propertyID := chi.URLParam(r, constant.RequestParamPropertyID)

	checkIn, err := validator.ParseCalendarDate(r.URL.Query().Get(constant.RequestParamCheckIn))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("check_in must be a valid date (YYYY-MM-DD)"))

		return
	}

	checkOut, err := validator.ParseCalendarDate(r.URL.Query().Get(constant.RequestParamCheckOut))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("check_out must be a valid date (YYYY-MM-DD)"))

		return
	}

	available, err := handler.service.CheckAvailability(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(w, http.StatusOK, dto.CheckAvailabilityResponse{
		PropertyID: propertyID,
		CheckIn:    checkIn.Format(constant.CalendarDateFormat),
		CheckOut:   checkOut.Format(constant.CalendarDateFormat),
		Available:  available,
	})
}

// BlockDates marks dates as administratively unavailable.
// @Summary Block calendar dates
// @Description Mark one or more dates unavailable with a reason, e.g. for maintenance.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param propertyId path string true "Property ID"
// @Param request body dto.BlockDatesRequest true "Block Dates Request"
// @Success 200 {object} response.Message "Dates blocked successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{propertyId}/calendar/block [post]
// @Security BearerAuth
func (handler *Handler) BlockDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BlockDates")
	defer scope.End()

	propertyID := chi.URLParam(r, constant.RequestParamPropertyID)

	req := dto.BlockDatesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	dates, err := dto.ParseDates(req.Dates)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.BlockDates(ctx, propertyID, dates, req.Reason); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to block dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dates blocked successfully")

	response.WithMessage(w, http.StatusOK, "Dates blocked successfully")
}

// UnblockDates clears administrative blocks from dates.
// @Summary Unblock calendar dates
// @Description Make previously blocked dates available again. Booking locks are not affected.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param propertyId path string true "Property ID"
// @Param request body dto.UnblockDatesRequest true "Unblock Dates Request"
// @Success 200 {object} response.Message "Dates unblocked successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{propertyId}/calendar/unblock [post]
// @Security BearerAuth
func (handler *Handler) UnblockDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnblockDates")
	defer scope.End()

	propertyID := chi.URLParam(r, constant.RequestParamPropertyID)

	req := dto.UnblockDatesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	dates, err := dto.ParseDates(req.Dates)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.UnblockDates(ctx, propertyID, dates); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unblock dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dates unblocked successfully")

	response.WithMessage(w, http.StatusOK, "Dates unblocked successfully")
}
