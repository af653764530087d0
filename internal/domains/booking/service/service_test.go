package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"manta/config"
	kafkaMocks "manta/infras/kafka/mocks"
	"manta/infras/otel/mocks"
	bookingMocks "manta/internal/domains/booking/mocks"
	"manta/internal/domains/booking/model"
	"manta/internal/domains/booking/model/dto"
	"manta/internal/domains/booking/service"
	courseMocks "manta/internal/domains/course/mocks"
	courseModel "manta/internal/domains/course/model"
	tripMocks "manta/internal/domains/trip/mocks"
	tripModel "manta/internal/domains/trip/model"
	cacheMocks "manta/shared/cache/mocks"
	"manta/shared/constant"
	"manta/shared/failure"
)

const (
	testCourseID = "33333333-3333-4333-8333-333333333333"
	testTripID   = "44444444-4444-4444-8444-444444444444"
	testUserID   = "55555555-5555-4555-8555-555555555555"
)

type bookingMockSet struct {
	repo   *bookingMocks.MockBooking
	course *courseMocks.MockCourse
	trip   *tripMocks.MockTrip
	cache  *cacheMocks.MockRedisCache
	events *kafkaMocks.MockClient
}

func newBookingService(t *testing.T) (service.Booking, bookingMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := bookingMockSet{
		repo:   bookingMocks.NewMockBooking(ctrl),
		course: courseMocks.NewMockCourse(ctrl),
		trip:   tripMocks.NewMockTrip(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		events: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	svc := service.New(set.repo, set.course, set.trip, cfg, set.cache, mocks.NewOtel(), set.events)

	return svc, set
}

func floatPtr(v float64) *float64 {
	return &v
}

func allowBackground(set bookingMockSet) {
	set.events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(set bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "course booking uses course price when amount omitted",
			req:  dto.CreateBookingRequest{UserID: testUserID, CourseID: testCourseID},
			setupMock: func(set bookingMockSet) {
				set.course.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courseModel.Course{ID: testCourseID, Title: "Open Water", Price: 350}, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, float64(350), booking.Amount)
						assert.NotNil(t, booking.CourseID)
						assert.Nil(t, booking.TripID)

						return nil
					})

				allowBackground(set)
			},
		},
		{
			name: "trip booking",
			req:  dto.CreateBookingRequest{UserID: testUserID, TripID: testTripID, Amount: floatPtr(120)},
			setupMock: func(set bookingMockSet) {
				set.trip.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tripModel.Trip{ID: testTripID, Title: "Night Dive", Price: 95}, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, float64(120), booking.Amount)

						return nil
					})

				allowBackground(set)
			},
		},
		{
			name: "explicit zero amount kept for comped booking",
			req:  dto.CreateBookingRequest{UserID: testUserID, CourseID: testCourseID, Amount: floatPtr(0)},
			setupMock: func(set bookingMockSet) {
				set.course.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courseModel.Course{ID: testCourseID, Title: "Open Water", Price: 350}, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, float64(0), booking.Amount)

						return nil
					})

				allowBackground(set)
			},
		},
		{
			name:      "both targets rejected",
			req:       dto.CreateBookingRequest{UserID: testUserID, CourseID: testCourseID, TripID: testTripID},
			setupMock: func(_ bookingMockSet) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "no target rejected",
			req:       dto.CreateBookingRequest{UserID: testUserID},
			setupMock: func(_ bookingMockSet) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown course rejected",
			req:  dto.CreateBookingRequest{UserID: testUserID, CourseID: testCourseID},
			setupMock: func(set bookingMockSet) {
				set.course.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courseModel.Course{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown trip rejected",
			req:  dto.CreateBookingRequest{UserID: testUserID, TripID: testTripID},
			setupMock: func(set bookingMockSet) {
				set.trip.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tripModel.Trip{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "malformed booking date rejected",
			req:  dto.CreateBookingRequest{UserID: testUserID, CourseID: testCourseID, BookingDate: "31-12-2026"},
			setupMock: func(set bookingMockSet) {
				set.course.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courseModel.Course{ID: testCourseID, Price: 350}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newBookingService(t)
			tt.setupMock(set)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
			res, err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusPending, res.Status)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	pending := model.Booking{ID: "booking-id", UserID: testUserID, Status: model.StatusPending}

	tests := []struct {
		name      string
		status    string
		setupMock func(set bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "pending to completed",
			status: model.StatusCompleted,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.repo.EXPECT().
					UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				allowBackground(set)
			},
		},
		{
			name:      "unknown status rejected",
			status:    "archived",
			setupMock: func(_ bookingMockSet) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "booking not found",
			status: model.StatusCompleted,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "completed booking cannot be cancelled",
			status: model.StatusCancelled,
			setupMock: func(set bookingMockSet) {
				done := pending
				done.Status = model.StatusCompleted

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(done, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "cancelled booking cannot be completed",
			status: model.StatusCompleted,
			setupMock: func(set bookingMockSet) {
				gone := pending
				gone.Status = model.StatusCancelled

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(gone, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "concurrent flip loses cleanly",
			status: model.StatusCompleted,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.repo.EXPECT().
					UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newBookingService(t)
			tt.setupMock(set)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
			err := svc.UpdateStatus(ctx, "booking-id", tt.status)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	svc, set := newBookingService(t)

	set.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{ID: "booking-id", UserID: testUserID, Status: model.StatusPending}, nil)

	set.repo.EXPECT().
		UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(1), nil)

	allowBackground(set)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
	err := svc.Cancel(ctx, "booking-id")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(set bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(set bookingMockSet) {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", Status: model.StatusPending, BookingDate: time.Now()}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func(set bookingMockSet) {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newBookingService(t)
			tt.setupMock(set)

			res, err := svc.Get(context.Background(), "booking-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", res.ID)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	svc, set := newBookingService(t)

	set.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	err := svc.Delete(context.Background(), "booking-id")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
