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
	"manta/infras/stripe"
	stripeMocks "manta/infras/stripe/mocks"
	rentalMocks "manta/internal/domains/rental/mocks"
	"manta/internal/domains/rental/model"
	"manta/internal/domains/rental/model/dto"
	"manta/internal/domains/rental/service"
	cacheMocks "manta/shared/cache/mocks"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"
	gModel "manta/shared/model"
	"manta/shared/timezone"
)

func newRentalService(t *testing.T) (service.Rental, *rentalMocks.MockRental, *cacheMocks.MockRedisCache, *stripeMocks.MockGateway, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := rentalMocks.NewMockRental(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockGateway := stripeMocks.NewMockGateway(ctrl)
	mockEvents := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking.events"
	cfg.Kafka.Topics.PaymentEvents = "payment.events"

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockGateway, mockEvents)

	return svc, mockRepo, mockCache, mockGateway, mockEvents
}

func availableRental() model.Rental {
	return model.Rental{
		ID:            "11111111-1111-4111-8111-111111111111",
		Title:         "Full Scuba Set",
		Price:         45.50,
		DurationHours: 24,
		Location:      "Main Shop",
		Status:        model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestRentalService_CreateBooking(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache, gateway *stripeMocks.MockGateway, events *kafkaMocks.MockClient)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful booking",
			setupMock: func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache, gateway *stripeMocks.MockGateway, events *kafkaMocks.MockClient) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRental(), nil)

				gateway.EXPECT().
					CreatePaymentIntent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req stripe.PaymentIntentRequest) (stripe.PaymentIntent, error) {
						assert.Equal(t, 45.50, req.Amount)
						assert.NotEmpty(t, req.Metadata["booking_id"])
						assert.Equal(t, "11111111-1111-4111-8111-111111111111", req.Metadata["rental_id"])

						return stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil
					})

				repo.EXPECT().
					ReserveBooking(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.RentalBooking) error {
						assert.Equal(t, "pi_123", booking.PaymentIntentID)
						assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
						assert.Equal(t, model.BookingStatusActive, booking.Status)

						return nil
					})

				events.EXPECT().
					SendMessages(gomock.Any(), "booking.events", gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "rental not found",
			setupMock: func(repo *rentalMocks.MockRental, _ *cacheMocks.MockRedisCache, _ *stripeMocks.MockGateway, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Rental{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "rental already rented",
			setupMock: func(repo *rentalMocks.MockRental, _ *cacheMocks.MockRedisCache, _ *stripeMocks.MockGateway, _ *kafkaMocks.MockClient) {
				rented := availableRental()
				rented.Status = model.StatusRented

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rented, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "payment processor down writes nothing",
			setupMock: func(repo *rentalMocks.MockRental, _ *cacheMocks.MockRedisCache, gateway *stripeMocks.MockGateway, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRental(), nil)

				gateway.EXPECT().
					CreatePaymentIntent(gomock.Any(), gomock.Any()).
					Return(stripe.PaymentIntent{}, failure.BadGateway("payment processor unavailable"))
			},
			wantErr:  true,
			wantCode: http.StatusBadGateway,
		},
		{
			name: "reservation lost to concurrent booking",
			setupMock: func(repo *rentalMocks.MockRental, _ *cacheMocks.MockRedisCache, gateway *stripeMocks.MockGateway, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRental(), nil)

				gateway.EXPECT().
					CreatePaymentIntent(gomock.Any(), gomock.Any()).
					Return(stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil)

				repo.EXPECT().
					ReserveBooking(gomock.Any(), gomock.Any()).
					Return(failure.Conflict(model.Unavailable("11111111-1111-4111-8111-111111111111")))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache, gateway, events := newRentalService(t)
			tt.setupMock(repo, cache, gateway, events)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.CreateBooking(ctx, dto.CreateRentalBookingRequest{RentalID: "11111111-1111-4111-8111-111111111111"})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.BookingID)
				assert.Equal(t, "pi_123_secret", res.ClientSecret)
			}
		})
	}
}

func TestRentalService_CompleteBooking(t *testing.T) {
	booking := model.RentalBooking{
		ID:            "22222222-2222-4222-8222-222222222222",
		RentalID:      "11111111-1111-4111-8111-111111111111",
		UserID:        "test-user-id",
		PaymentStatus: model.PaymentStatusPaid,
		Status:        model.BookingStatusActive,
	}

	tests := []struct {
		name      string
		setupMock func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache, events *kafkaMocks.MockClient)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful completion",
			setupMock: func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache, events *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				repo.EXPECT().
					CompleteBooking(gomock.Any(), booking, "test-user-id").
					Return(nil)

				events.EXPECT().
					SendMessages(gomock.Any(), "booking.events", gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "booking not found",
			setupMock: func(repo *rentalMocks.MockRental, _ *cacheMocks.MockRedisCache, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(model.RentalBooking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking already completed",
			setupMock: func(repo *rentalMocks.MockRental, _ *cacheMocks.MockRedisCache, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				repo.EXPECT().
					CompleteBooking(gomock.Any(), booking, "test-user-id").
					Return(failure.Conflict("rental booking is already completed"))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache, _, events := newRentalService(t)
			tt.setupMock(repo, cache, events)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.CompleteBooking(ctx, booking.ID)

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

func TestRentalService_ReconcilePaymentEvent(t *testing.T) {
	booking := model.RentalBooking{
		ID:              "22222222-2222-4222-8222-222222222222",
		RentalID:        "11111111-1111-4111-8111-111111111111",
		UserID:          "test-user-id",
		PaymentIntentID: "pi_123",
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.BookingStatusActive,
	}

	tests := []struct {
		name      string
		eventType string
		bookingID string
		setupMock func(repo *rentalMocks.MockRental, events *kafkaMocks.MockClient)
		wantErr   bool
	}{
		{
			name:      "succeeded event marks booking paid and publishes once",
			eventType: "payment_intent.succeeded",
			bookingID: booking.ID,
			setupMock: func(repo *rentalMocks.MockRental, events *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				repo.EXPECT().
					MarkBookingPaid(gomock.Any(), booking.ID, "payment-webhook").
					Return(true, nil)

				events.EXPECT().
					SendMessages(gomock.Any(), "payment.events", gomock.Any()).
					Return(nil).
					Times(1)
			},
		},
		{
			name:      "replayed event is a no-op",
			eventType: "payment_intent.succeeded",
			bookingID: booking.ID,
			setupMock: func(repo *rentalMocks.MockRental, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				repo.EXPECT().
					MarkBookingPaid(gomock.Any(), booking.ID, "payment-webhook").
					Return(false, nil)
			},
		},
		{
			name:      "unhandled event type is ignored",
			eventType: "payment_intent.created",
			bookingID: booking.ID,
			setupMock: func(_ *rentalMocks.MockRental, _ *kafkaMocks.MockClient) {},
		},
		{
			name:      "event without booking id is ignored",
			eventType: "payment_intent.succeeded",
			bookingID: "",
			setupMock: func(_ *rentalMocks.MockRental, _ *kafkaMocks.MockClient) {},
		},
		{
			name:      "unknown booking is ignored",
			eventType: "payment_intent.succeeded",
			bookingID: booking.ID,
			setupMock: func(repo *rentalMocks.MockRental, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(model.RentalBooking{}, nil)
			},
		},
		{
			name:      "repository error surfaces",
			eventType: "payment_intent.succeeded",
			bookingID: booking.ID,
			setupMock: func(repo *rentalMocks.MockRental, _ *kafkaMocks.MockClient) {
				repo.EXPECT().
					GetBooking(gomock.Any(), gomock.Any()).
					Return(model.RentalBooking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _, events := newRentalService(t)
			tt.setupMock(repo, events)

			err := svc.ReconcilePaymentEvent(context.Background(), tt.eventType, "pi_123", tt.bookingID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRentalService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found on cache miss",
			setupMock: func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRental(), nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func(repo *rentalMocks.MockRental, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Rental{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache, _, _ := newRentalService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(context.Background(), "11111111-1111-4111-8111-111111111111")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Full Scuba Set", res.Title)
			}
		})
	}
}

func TestRentalService_GetBookingsByUser(t *testing.T) {
	svc, repo, cache, _, _ := newRentalService(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	repo.EXPECT().
		CountBookings(gomock.Any(), gomock.Any()).
		Return(1, nil)

	repo.EXPECT().
		GetAllBookings(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.RentalBooking, error) {
			assert.Len(t, filter.Filters, 1)

			return []model.RentalBooking{{
				ID:          "22222222-2222-4222-8222-222222222222",
				RentalID:    "11111111-1111-4111-8111-111111111111",
				UserID:      "test-user-id",
				BookingDate: timezone.Now(),
			}}, nil
		})

	cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetBookingsByUser(context.Background(), "test-user-id", gDto.QueryParams{Limit: 10, Page: 1})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}
