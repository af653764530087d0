package service

import (
	"context"
	"fmt"

	"manta/config"
	"manta/infras/kafka"
	"manta/infras/otel"
	"manta/infras/stripe"
	"manta/internal/domains/rental/model"
	"manta/internal/domains/rental/model/dto"
	"manta/internal/domains/rental/repository"
	"manta/shared"
	"manta/shared/cache"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/event"
	"manta/shared/failure"
	gModel "manta/shared/model"
	"manta/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRental     = "rental:get"
	cacheGetAllRental  = "rental:gets"
	cacheCountRental   = "rental:count"
	cacheGetAllBooking = "rentalBooking:gets"
	cacheCountBooking  = "rentalBooking:count"

	// Webhook-driven writes have no authenticated user on the context.
	actorPaymentWebhook = "payment-webhook"

	metadataBookingID = "booking_id"
	metadataUserID    = "user_id"
	metadataRentalID  = "rental_id"
)

type Rental interface {
	Create(ctx context.Context, req dto.CreateRentalRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRentalsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RentalResponse, error)
	Update(ctx context.Context, req dto.UpdateRentalRequest, id string) error
	Delete(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, req dto.CreateRentalBookingRequest) (dto.CreateRentalBookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string) error
	GetBookings(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRentalBookingsResponse, error)
	GetBookingsByUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetRentalBookingsResponse, error)
	ReconcilePaymentEvent(ctx context.Context, eventType, paymentIntentID, bookingID string) error
}

type serviceImpl struct {
	repo    repository.Rental
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	gateway stripe.Gateway
	events  kafka.Client
}

func New(
	repo repository.Rental,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	gateway stripe.Gateway,
	events kafka.Client,
) Rental {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		gateway: gateway,
		events:  events,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRentalRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create rental")

		return fmt.Errorf("failed to create rental: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRental)
		shared.InvalidateCaches(c, s.cache, cacheCountRental)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRentalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRental, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count rentals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rentals")

		return res, fmt.Errorf("failed to get rentals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rentals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRental, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rentals")

		return res, fmt.Errorf("failed to count rentals: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRental, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	rental, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return res, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == constant.Empty {
		return res, failure.NotFound("rental not found") //nolint:wrapcheck
	}

	res.FromModel(rental)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRentalRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Update")
	defer scope.End()

	if req == (dto.UpdateRentalRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rental exists")

		return fmt.Errorf("failed to check if rental exists: %w", err)
	}

	if !exist {
		return failure.NotFound("rental not found") //nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update rental")

		return fmt.Errorf("failed to update rental: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rental exists")

		return fmt.Errorf("failed to check if rental exists: %w", err)
	}

	if !exist {
		return failure.NotFound("rental not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete rental")

		return fmt.Errorf("failed to delete rental: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// CreateBooking reserves a rental for payment. The payment intent is created
// before anything is written locally: if the processor is down the caller
// gets a bad gateway and no booking row ever exists. The local reserve then
// runs as one transaction so the booking insert and the availability flip
// commit or roll back together.
func (s *serviceImpl) CreateBooking(ctx context.Context, req dto.CreateRentalBookingRequest) (res dto.CreateRentalBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	rental, err := s.repo.Get(ctx, shared.FilterByID(req.RentalID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return res, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == constant.Empty {
		return res, failure.NotFound("rental not found") //nolint:wrapcheck
	}

	if rental.Status != model.StatusAvailable {
		return res, failure.Conflict(model.Unavailable(rental.ID)) //nolint:wrapcheck
	}

	bookingID := uuid.NewString()

	intent, err := s.gateway.CreatePaymentIntent(ctx, stripe.PaymentIntentRequest{
		Amount: rental.Price,
		Metadata: map[string]string{
			metadataBookingID: bookingID,
			metadataUserID:    user,
			metadataRentalID:  rental.ID,
		},
	})
	if err != nil {
		return res, err
	}

	booking := model.RentalBooking{
		ID:              bookingID,
		RentalID:        rental.ID,
		UserID:          user,
		PaymentIntentID: intent.ID,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.BookingStatusActive,
		BookingDate:     timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.ReserveBooking(ctx, booking); err != nil {
		// The intent already exists at the processor. It is never confirmed
		// client-side because no client secret is returned, but flag it for
		// reconciliation.
		log.Warn().Err(err).
			Str("paymentIntentId", intent.ID).
			Str("rentalId", rental.ID).
			Msg("rental reservation failed after payment intent creation")

		return res, err
	}

	s.publish(ctx, s.cfg.Kafka.Topics.BookingEvents, bookingID, event.New(event.RentalBooked, map[string]any{
		"booking_id": bookingID,
		"rental_id":  rental.ID,
		"user_id":    user,
		"amount":     rental.Price,
	}))

	s.invalidate(ctx, rental.ID)

	return dto.CreateRentalBookingResponse{
		BookingID:    bookingID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// CompleteBooking marks the rental returned. Closing the booking and
// releasing the asset happen in the same transaction; completing an already
// completed booking is a conflict and leaves the rental untouched.
func (s *serviceImpl) CompleteBooking(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.CompleteBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.GetBooking(ctx, bookingFilterByID(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental booking")

		return fmt.Errorf("failed to get rental booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("rental booking not found") //nolint:wrapcheck
	}

	if err = s.repo.CompleteBooking(ctx, booking, user); err != nil {
		return err //nolint:wrapcheck
	}

	s.publish(ctx, s.cfg.Kafka.Topics.BookingEvents, bookingID, event.New(event.RentalCompleted, map[string]any{
		"booking_id": bookingID,
		"rental_id":  booking.RentalID,
		"user_id":    booking.UserID,
	}))

	s.invalidate(ctx, booking.RentalID)

	return nil
}

func (s *serviceImpl) GetBookings(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRentalBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.GetBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.CountBookings(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rental bookings")

		return res, fmt.Errorf("failed to count rental bookings: %w", err)
	}

	models, err := s.repo.GetAllBookings(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental bookings")

		return res, fmt.Errorf("failed to get rental bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBookingsByUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetRentalBookingsResponse, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.BookingTableName,
			},
		},
	}

	return s.GetBookings(ctx, req, filter)
}

// ReconcilePaymentEvent applies a verified processor event to local state.
// Only payment_intent.succeeded mutates anything, and the flip is
// conditional on payment_status still being pending: webhook replays find
// nothing to do and the paid event is published exactly once. Unknown
// bookings are logged as anomalies but not surfaced as errors, so the
// processor never retries what we cannot act on.
func (s *serviceImpl) ReconcilePaymentEvent(ctx context.Context, eventType, paymentIntentID, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rental.ReconcilePaymentEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if eventType != "payment_intent.succeeded" {
		log.Debug().Str("eventType", eventType).Msg("ignoring unhandled payment event type")

		return nil
	}

	if bookingID == constant.Empty {
		log.Warn().Str("paymentIntentId", paymentIntentID).Msg("payment event carries no booking id")

		return nil
	}

	booking, err := s.repo.GetBooking(ctx, bookingFilterByID(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental booking")

		return fmt.Errorf("failed to get rental booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Warn().
			Str("bookingId", bookingID).
			Str("paymentIntentId", paymentIntentID).
			Msg("payment event references unknown rental booking")

		return nil
	}

	flipped, err := s.repo.MarkBookingPaid(ctx, bookingID, actorPaymentWebhook)
	if err != nil {
		log.Error().Err(err).Msg("failed to mark rental booking paid")

		return fmt.Errorf("failed to mark rental booking paid: %w", err)
	}

	if !flipped {
		log.Info().Str("bookingId", bookingID).Msg("payment event replayed, booking already paid")

		return nil
	}

	s.publish(ctx, s.cfg.Kafka.Topics.PaymentEvents, bookingID, event.New(event.PaymentPaid, map[string]any{
		"booking_id":        bookingID,
		"rental_id":         booking.RentalID,
		"user_id":           booking.UserID,
		"payment_intent_id": paymentIntentID,
	}))

	return nil
}

func bookingFilterByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.BookingTableName,
			},
		},
	}
}

func (s *serviceImpl) publish(ctx context.Context, topic, key string, envelope event.Envelope) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.events.SendMessages(c, topic, kafka.Message{Key: key, Value: envelope}); err != nil {
			log.Error().Err(err).Str("event", envelope.Event).Msg("failed to publish rental event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, rentalID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRental, rentalID)); err != nil {
			log.Error().Err(err).Msg("failed to delete rental from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRental)
		shared.InvalidateCaches(c, s.cache, cacheCountRental)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
