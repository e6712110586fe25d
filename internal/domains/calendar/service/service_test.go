package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "homestay/infras/otel/mocks"
	calendarMocks "homestay/internal/domains/calendar/mocks"
	"homestay/internal/domains/calendar/model"
	"homestay/internal/domains/calendar/repository"
	"homestay/internal/domains/calendar/service"
	clockMocks "homestay/shared/clock/mocks"
	"homestay/shared/failure"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(propertyID string, date time.Time, opts ...func(*model.CalendarDay)) model.CalendarDay {
	d := model.CalendarDay{
		ID:          "day-" + date.Format("2006-01-02"),
		PropertyID:  propertyID,
		Date:        model.Normalize(date),
		IsAvailable: true,
		LockStatus:  model.LockStatusNone,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func withSoftHold(bookingID string, expiresAt time.Time) func(*model.CalendarDay) {
	return func(d *model.CalendarDay) {
		d.LockStatus = model.LockStatusSoftHold
		d.LockBookingID = &bookingID
		d.LockExpiresAt = &expiresAt
	}
}

func withConfirmed(bookingID string) func(*model.CalendarDay) {
	return func(d *model.CalendarDay) {
		d.LockStatus = model.LockStatusConfirmed
		d.LockBookingID = &bookingID
	}
}

func withBlocked(reason string) func(*model.CalendarDay) {
	return func(d *model.CalendarDay) {
		d.IsAvailable = false
		d.ReasonBlocked = &reason
	}
}

func inTxWith(mockTx *calendarMocks.MockTx) func(context.Context, func(context.Context, repository.Tx) error) error {
	return func(ctx context.Context, fn func(context.Context, repository.Tx) error) error {
		return fn(ctx, mockTx)
	}
}

func TestAvailabilityService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	propertyID := "prop-1"
	checkIn := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		setupMock func()
		wantErr   bool
		want      bool
	}{
		{
			name:     "all dates free",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{
						day(propertyID, checkIn),
						day(propertyID, checkIn.AddDate(0, 0, 1)),
					}, nil)
			},
			want: true,
		},
		{
			name:     "missing calendar rows count as available",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{}, nil)
			},
			want: true,
		},
		{
			name:     "confirmed lock blocks the range",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{
						day(propertyID, checkIn, withConfirmed("other-booking")),
					}, nil)
			},
			want: false,
		},
		{
			name:     "active soft hold blocks the range",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{
						day(propertyID, checkIn, withSoftHold("other-booking", testNow.Add(10*time.Minute))),
					}, nil)
			},
			want: false,
		},
		{
			name:     "expired soft hold does not block",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{
						day(propertyID, checkIn, withSoftHold("other-booking", testNow.Add(-time.Minute))),
					}, nil)
			},
			want: true,
		},
		{
			name:     "hold expiring exactly now does not block",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{
						day(propertyID, checkIn, withSoftHold("other-booking", testNow)),
					}, nil)
			},
			want: true,
		},
		{
			name:     "blocked date is unavailable",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return([]model.CalendarDay{
						day(propertyID, checkIn, withBlocked("maintenance")),
					}, nil)
			},
			want: false,
		},
		{
			name:      "check-in equals check-out",
			checkIn:   checkIn,
			checkOut:  checkIn,
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:     "repository error",
			checkIn:  checkIn,
			checkOut: checkOut,
			setupMock: func() {
				mockRepo.EXPECT().
					GetRange(gomock.Any(), propertyID, checkIn, checkOut).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := svc.CheckAvailability(context.Background(), propertyID, tt.checkIn, tt.checkOut)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAvailabilityService_CreateSoftHold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockTx := calendarMocks.NewMockTx(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	propertyID := "prop-1"
	bookingID := "booking-1"
	checkIn := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	dates := model.DateRange(checkIn, checkOut)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful hold over empty calendar",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockRange(gomock.Any(), propertyID, dates).
					Return([]model.CalendarDay{}, nil)

				mockTx.EXPECT().
					UpsertHolds(gomock.Any(), propertyID, bookingID, dates, testNow.Add(15*time.Minute), testNow).
					Return(nil)
			},
		},
		{
			name: "expired hold on a date is reclaimed",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockRange(gomock.Any(), propertyID, dates).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold("stale-booking", testNow.Add(-time.Hour))),
					}, nil)

				mockTx.EXPECT().
					UpsertHolds(gomock.Any(), propertyID, bookingID, dates, testNow.Add(15*time.Minute), testNow).
					Return(nil)
			},
		},
		{
			name: "conflict on date inserted by concurrent hold",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockRange(gomock.Any(), propertyID, dates).
					Return([]model.CalendarDay{}, nil)

				mockTx.EXPECT().
					UpsertHolds(gomock.Any(), propertyID, bookingID, dates, testNow.Add(15*time.Minute), testNow).
					Return(failure.Conflict("cannot create hold: 2024-06-10 was taken by another request"))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "conflict with active hold",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockRange(gomock.Any(), propertyID, dates).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold("other-booking", testNow.Add(10*time.Minute))),
						day(propertyID, dates[1], withConfirmed("other-booking")),
					}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "conflict with blocked date",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockRange(gomock.Any(), propertyID, dates).
					Return([]model.CalendarDay{
						day(propertyID, dates[2], withBlocked("maintenance")),
					}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "lock error",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockRange(gomock.Any(), propertyID, dates).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.CreateSoftHold(context.Background(), propertyID, bookingID, checkIn, checkOut, 15)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityService_CreateSoftHold_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	checkIn := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	err := svc.CreateSoftHold(context.Background(), "prop-1", "booking-1", checkIn, checkIn.AddDate(0, 0, -1), 15)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestAvailabilityService_ConfirmHold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockTx := calendarMocks.NewMockTx(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	propertyID := "prop-1"
	bookingID := "booking-1"
	checkIn := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	dates := model.DateRange(checkIn, checkOut)
	statuses := []model.LockStatus{model.LockStatusSoftHold, model.LockStatusConfirmed}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful confirm",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold(bookingID, testNow.Add(10*time.Minute))),
						day(propertyID, dates[1], withSoftHold(bookingID, testNow.Add(10*time.Minute))),
					}, nil)

				mockTx.EXPECT().
					ConfirmHolds(gomock.Any(), propertyID, bookingID, dates, testNow).
					Return(nil)
			},
		},
		{
			name: "retry after partial confirm",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withConfirmed(bookingID)),
						day(propertyID, dates[1], withSoftHold(bookingID, testNow.Add(10*time.Minute))),
					}, nil)

				mockTx.EXPECT().
					ConfirmHolds(gomock.Any(), propertyID, bookingID, dates, testNow).
					Return(nil)
			},
		},
		{
			name: "hold count mismatch",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold(bookingID, testNow.Add(10*time.Minute))),
					}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "hold already expired",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold(bookingID, testNow.Add(10*time.Minute))),
						day(propertyID, dates[1], withSoftHold(bookingID, testNow.Add(-time.Minute))),
					}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "lock error",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ConfirmHold(context.Background(), propertyID, bookingID, checkIn, checkOut)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityService_ExtendHold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockTx := calendarMocks.NewMockTx(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	propertyID := "prop-1"
	bookingID := "booking-1"
	checkIn := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	dates := model.DateRange(checkIn, checkOut)
	statuses := []model.LockStatus{model.LockStatusSoftHold}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful extension",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold(bookingID, testNow.Add(5*time.Minute))),
					}, nil)

				mockTx.EXPECT().
					ExtendHolds(gomock.Any(), propertyID, bookingID, dates, testNow.Add(24*time.Hour), testNow).
					Return(nil)
			},
		},
		{
			name: "no holds found",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "hold already expired",
			setupMock: func() {
				mockRepo.EXPECT().
					InTx(gomock.Any(), gomock.Any()).
					DoAndReturn(inTxWith(mockTx))

				mockTx.EXPECT().
					LockHolds(gomock.Any(), propertyID, bookingID, dates, statuses).
					Return([]model.CalendarDay{
						day(propertyID, dates[0], withSoftHold(bookingID, testNow.Add(-time.Second))),
					}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ExtendHold(context.Background(), propertyID, bookingID, checkIn, checkOut, 1440)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityService_ReleaseLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	t.Run("successful release", func(t *testing.T) {
		mockRepo.EXPECT().
			ReleaseByBooking(gomock.Any(), "booking-1", testNow).
			Return(nil)

		assert.NoError(t, svc.ReleaseLock(context.Background(), "booking-1"))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			ReleaseByBooking(gomock.Any(), "booking-1", testNow).
			Return(errors.New("database error"))

		assert.Error(t, svc.ReleaseLock(context.Background(), "booking-1"))
	})
}

func TestAvailabilityService_ReleaseExpiredHolds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	t.Run("releases with advancing clock", func(t *testing.T) {
		mockRepo.EXPECT().
			ReleaseExpired(gomock.Any(), testNow).
			Return(3, nil)

		count, err := svc.ReleaseExpiredHolds(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 3, count)

		fakeClock.Advance(time.Hour)

		mockRepo.EXPECT().
			ReleaseExpired(gomock.Any(), testNow.Add(time.Hour)).
			Return(0, nil)

		count, err = svc.ReleaseExpiredHolds(context.Background())

		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("repository error", func(t *testing.T) {
		fakeClock.Set(testNow)

		mockRepo.EXPECT().
			ReleaseExpired(gomock.Any(), testNow).
			Return(0, errors.New("database error"))

		_, err := svc.ReleaseExpiredHolds(context.Background())

		assert.Error(t, err)
	})
}

func TestAvailabilityService_BlockDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := calendarMocks.NewMockCalendar(ctrl)
	mockTx := calendarMocks.NewMockTx(ctrl)
	mockOtel := otelMocks.NewOtel()
	fakeClock := clockMocks.NewClock(testNow)

	svc := service.New(mockRepo, fakeClock, mockOtel)

	propertyID := "prop-1"
	dates := []time.Time{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}

	t.Run("successful block", func(t *testing.T) {
		mockRepo.EXPECT().
			InTx(gomock.Any(), gomock.Any()).
			DoAndReturn(inTxWith(mockTx))

		mockTx.EXPECT().
			UpsertBlocks(gomock.Any(), propertyID, dates, "maintenance", testNow).
			Return(nil)

		assert.NoError(t, svc.BlockDates(context.Background(), propertyID, dates, "maintenance"))
	})

	t.Run("empty dates", func(t *testing.T) {
		err := svc.BlockDates(context.Background(), propertyID, nil, "maintenance")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("successful unblock", func(t *testing.T) {
		mockRepo.EXPECT().
			Unblock(gomock.Any(), propertyID, dates, testNow).
			Return(nil)

		assert.NoError(t, svc.UnblockDates(context.Background(), propertyID, dates))
	})

	t.Run("unblock empty dates", func(t *testing.T) {
		err := svc.UnblockDates(context.Background(), propertyID, nil)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
