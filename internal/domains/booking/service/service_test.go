package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	kafkaMocks "homestay/infras/kafka/mocks"
	otelMocks "homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service"
	calendarMocks "homestay/internal/domains/calendar/mocks"
	propertyModel "homestay/internal/domains/property/model"
	propertyMocks "homestay/internal/domains/property/mocks"
	userMocks "homestay/internal/domains/user/mocks"
	cacheMocks "homestay/shared/cache/mocks"
	clockMocks "homestay/shared/clock/mocks"
	"homestay/shared/constant"
	"homestay/shared/failure"
	gModel "homestay/shared/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	repo         *bookingMocks.MockBooking
	propertyRepo *propertyMocks.MockProperty
	userRepo     *userMocks.MockUser
	availability *calendarMocks.MockAvailability
	cache        *cacheMocks.MockRedisCache
	kafka        *kafkaMocks.MockClient
	clock        clockMocks.Fake
	svc          service.Booking
}

func newTestDeps(t *testing.T, ctrl *gomock.Controller) *testDeps {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.InstantHoldMinutes = 15
	cfg.Booking.RequestHoldMinutes = 1440
	cfg.Booking.ApprovalWindowHours = 24
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	deps := &testDeps{
		repo:         bookingMocks.NewMockBooking(ctrl),
		propertyRepo: propertyMocks.NewMockProperty(ctrl),
		userRepo:     userMocks.NewMockUser(ctrl),
		availability: calendarMocks.NewMockAvailability(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
		clock:        clockMocks.NewClock(testNow),
	}

	deps.svc = service.New(
		deps.repo,
		deps.propertyRepo,
		deps.userRepo,
		deps.availability,
		cfg,
		deps.cache,
		deps.kafka,
		deps.clock,
		otelMocks.NewOtel(),
	)

	deps.allowAsyncSideEffects()

	return deps
}

// Cache invalidation and event publishing run on detached goroutines, so they
// may or may not land before a test finishes.
func (d *testDeps) allowAsyncSideEffects() {
	d.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func requestedBooking(id string) model.Booking {
	return model.Booking{
		ID:         id,
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		HostID:     "host-1",
		CheckIn:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Nights:     2,
		Status:     model.StatusRequested,
		Metadata: gModel.Metadata{
			CreatedAt:  testNow,
			ModifiedAt: testNow,
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	req := dto.CreateBookingRequest{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		HostID:     "host-1",
		CheckIn:    "2024-06-10",
		CheckOut:   "2024-06-12",
	}

	property := propertyModel.Property{ID: "prop-1", HostID: "host-1"}

	tests := []struct {
		name       string
		req        dto.CreateBookingRequest
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name: "request flow creates REQUESTED booking with 24h hold",
			req:  req,
			setupMock: func() {
				deps.propertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(property, nil)

				deps.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.availability.EXPECT().
					CheckAvailability(gomock.Any(), "prop-1", gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				deps.availability.EXPECT().
					CreateSoftHold(gomock.Any(), "prop-1", gomock.Any(), gomock.Any(), gomock.Any(), 1440).
					Return(nil)
			},
			wantStatus: string(model.StatusRequested),
		},
		{
			name: "instant book property creates PENDING booking with 15m hold",
			req:  req,
			setupMock: func() {
				instant := property
				instant.InstantBook = true

				deps.propertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(instant, nil)

				deps.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.availability.EXPECT().
					CheckAvailability(gomock.Any(), "prop-1", gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				deps.availability.EXPECT().
					CreateSoftHold(gomock.Any(), "prop-1", gomock.Any(), gomock.Any(), gomock.Any(), 15).
					Return(nil)
			},
			wantStatus: string(model.StatusPending),
		},
		{
			name: "dates not available",
			req:  req,
			setupMock: func() {
				deps.propertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(property, nil)

				deps.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.availability.EXPECT().
					CheckAvailability(gomock.Any(), "prop-1", gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "hold failure rolls back the booking row",
			req:  req,
			setupMock: func() {
				deps.propertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(property, nil)

				deps.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.availability.EXPECT().
					CheckAvailability(gomock.Any(), "prop-1", gomock.Any(), gomock.Any()).
					Return(true, nil)

				deps.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				deps.availability.EXPECT().
					CreateSoftHold(gomock.Any(), "prop-1", gomock.Any(), gomock.Any(), gomock.Any(), 1440).
					Return(failure.Conflict("cannot create hold: 1 date(s) are already booked or held"))

				deps.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "property not found",
			req:  req,
			setupMock: func() {
				deps.propertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyModel.Property{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "guest not found",
			req:  req,
			setupMock: func() {
				deps.propertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(property, nil)

				deps.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "check-in in the past",
			req: dto.CreateBookingRequest{
				PropertyID: "prop-1",
				GuestID:    "guest-1",
				HostID:     "host-1",
				CheckIn:    "2024-05-01",
				CheckOut:   "2024-05-03",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "guest-1")
			res, err := deps.svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)
				assert.NotNil(t, res.HoldExpiresAt)
			}
		})
	}
}

func TestBookingService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	tests := []struct {
		name      string
		hostID    string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "successful approval extends the hold",
			hostID: "host-1",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(requestedBooking("booking-1"), nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.availability.EXPECT().
					ExtendHold(gomock.Any(), "prop-1", "booking-1", gomock.Any(), gomock.Any(), 1440).
					Return(nil)
			},
		},
		{
			name:   "extension failure does not roll back the approval",
			hostID: "host-1",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(requestedBooking("booking-1"), nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.availability.EXPECT().
					ExtendHold(gomock.Any(), "prop-1", "booking-1", gomock.Any(), gomock.Any(), 1440).
					Return(failure.Conflict("cannot extend: soft hold has expired"))
			},
		},
		{
			name:   "wrong actor",
			hostID: "someone-else",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(requestedBooking("booking-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "booking not awaiting approval",
			hostID: "host-1",
			setupMock: func() {
				booking := requestedBooking("booking-1")
				booking.Status = model.StatusConfirmed

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "booking not found",
			hostID: "host-1",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := deps.svc.Approve(context.Background(), "booking-1", tt.hostID)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, string(model.StatusApproved), res.Status)
				assert.NotNil(t, res.ApprovedAt)
				assert.NotNil(t, res.HoldExpiresAt)
			}
		})
	}
}

func TestBookingService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	t.Run("successful rejection releases the lock", func(t *testing.T) {
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(requestedBooking("booking-1"), nil)

		deps.availability.EXPECT().
			ReleaseLock(gomock.Any(), "booking-1").
			Return(nil)

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := deps.svc.Reject(context.Background(), "booking-1", "host-1", "dates no longer offered")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusRejected), res.Status)
		assert.Equal(t, "dates no longer offered", *res.CancellationReason)
	})

	t.Run("release failure does not block the rejection", func(t *testing.T) {
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(requestedBooking("booking-1"), nil)

		deps.availability.EXPECT().
			ReleaseLock(gomock.Any(), "booking-1").
			Return(errors.New("database error"))

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := deps.svc.Reject(context.Background(), "booking-1", "host-1", "")

		assert.NoError(t, err)
		assert.Equal(t, "Rejected by host", *res.CancellationReason)
	})

	t.Run("wrong actor", func(t *testing.T) {
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(requestedBooking("booking-1"), nil)

		_, err := deps.svc.Reject(context.Background(), "booking-1", "guest-1", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	t.Run("successful confirmation converts the hold", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusApproved

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		deps.availability.EXPECT().
			ConfirmHold(gomock.Any(), "prop-1", "booking-1", booking.CheckIn, booking.CheckOut).
			Return(nil)

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := deps.svc.Confirm(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
		assert.NotNil(t, res.ConfirmedAt)
		assert.Nil(t, res.HoldExpiresAt)
	})

	t.Run("already confirmed is a no-op success", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusConfirmed

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := deps.svc.Confirm(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
	})

	t.Run("cancelled booking cannot be confirmed", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusCancelled

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := deps.svc.Confirm(context.Background(), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("hold conflict propagates", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusApproved

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		deps.availability.EXPECT().
			ConfirmHold(gomock.Any(), "prop-1", "booking-1", booking.CheckIn, booking.CheckOut).
			Return(failure.Conflict("cannot confirm: soft hold has expired"))

		_, err := deps.svc.Confirm(context.Background(), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps := newTestDeps(t, ctrl)

	t.Run("guest cancels a confirmed booking", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusConfirmed

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		deps.availability.EXPECT().
			ReleaseLock(gomock.Any(), "booking-1").
			Return(nil)

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := deps.svc.Cancel(context.Background(), "booking-1", "guest-1", "change of plans")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
		assert.Equal(t, "guest-1", *res.CancelledBy)
		assert.Equal(t, "change of plans", *res.CancellationReason)
	})

	t.Run("already cancelled is a no-op success", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusCancelled

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := deps.svc.Cancel(context.Background(), "booking-1", "guest-1", "")

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		booking := requestedBooking("booking-1")
		booking.Status = model.StatusCompleted

		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := deps.svc.Cancel(context.Background(), "booking-1", "guest-1", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("wrong actor", func(t *testing.T) {
		deps.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(requestedBooking("booking-1"), nil)

		_, err := deps.svc.Cancel(context.Background(), "booking-1", "stranger", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	repo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(
		repo,
		propertyMocks.NewMockProperty(ctrl),
		userMocks.NewMockUser(ctrl),
		calendarMocks.NewMockAvailability(ctrl),
		cfg,
		mockCache,
		kafkaMocks.NewMockClient(ctrl),
		clockMocks.NewClock(testNow),
		otelMocks.NewOtel(),
	)

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(requestedBooking("booking-1"), nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("booking not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
