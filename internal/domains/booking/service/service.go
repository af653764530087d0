package service

import (
	"context"
	"fmt"

	"manta/config"
	"manta/infras/kafka"
	"manta/infras/otel"
	"manta/internal/domains/booking/model"
	"manta/internal/domains/booking/model/dto"
	"manta/internal/domains/booking/repository"
	courseModel "manta/internal/domains/course/model"
	courseRepo "manta/internal/domains/course/repository"
	tripModel "manta/internal/domains/trip/model"
	tripRepo "manta/internal/domains/trip/repository"
	"manta/shared"
	"manta/shared/cache"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/event"
	"manta/shared/failure"
	"manta/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	courseRepo courseRepo.Course
	tripRepo   tripRepo.Trip
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	events     kafka.Client
}

func New(
	repo repository.Booking,
	courseRepo courseRepo.Course,
	tripRepo tripRepo.Trip,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	events kafka.Client,
) Booking {
	return &serviceImpl{
		repo:       repo,
		courseRepo: courseRepo,
		tripRepo:   tripRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		events:     events,
	}
}

// Create reserves a course seat or trip spot. Exactly one target must be
// given and it must exist; the booking starts in pending. Course and trip
// capacity is treated as unlimited here, so no inventory lock is taken.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if (req.CourseID == "") == (req.TripID == "") {
		return res, failure.BadRequestFromString("exactly one of course_id or trip_id must be provided") //nolint:wrapcheck
	}

	targetPrice, err := s.resolveTarget(ctx, req.CourseID, req.TripID)
	if err != nil {
		return res, err
	}

	amount := targetPrice
	if req.Amount != nil {
		amount = *req.Amount
	}

	booking, err := req.ToModel(user, amount)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking date: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.publish(ctx, booking.ID, event.New(event.BookingCreated, map[string]any{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
		"course_id":  booking.CourseID,
		"trip_id":    booking.TripID,
		"amount":     booking.Amount,
	}))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) resolveTarget(ctx context.Context, courseID, tripID string) (float64, error) {
	if courseID != "" {
		course, err := s.courseRepo.Get(ctx, shared.FilterByID(courseID, courseModel.FieldID, courseModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to load booking course")

			return 0, fmt.Errorf("failed to load booking course: %w", err)
		}

		if course.ID == constant.Empty {
			return 0, failure.NotFound("course not found") //nolint:wrapcheck
		}

		return course.Price, nil
	}

	trip, err := s.tripRepo.Get(ctx, shared.FilterByID(tripID, tripModel.FieldID, tripModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load booking trip")

		return 0, fmt.Errorf("failed to load booking trip: %w", err)
	}

	if trip.ID == constant.Empty {
		return 0, failure.NotFound("trip not found") //nolint:wrapcheck
	}

	return trip.Price, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
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

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
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

func (s *serviceImpl) GetByUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

// UpdateStatus applies one edge of the booking state machine. Terminal states
// have no outgoing edges: moving a completed or cancelled booking fails with
// a conflict rather than silently succeeding. The write itself is
// conditional on the status observed here, so a concurrent flip loses
// cleanly instead of overwriting.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !model.IsValidStatus(status) {
		return failure.BadRequestFromString(fmt.Sprintf("invalid booking status: %s", status)) //nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, status) {
		return failure.Conflict(model.InvalidTransition(booking.Status, status)) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	mod := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	affected, err := s.repo.UpdateCount(ctx, mod, filterByIDAndStatus(id, booking.Status))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("booking was modified concurrently, retry") //nolint:wrapcheck
	}

	eventName := event.BookingCompleted
	if status == model.StatusCancelled {
		eventName = event.BookingCancelled
	}

	s.publish(ctx, id, event.New(eventName, map[string]any{
		"booking_id": id,
		"user_id":    booking.UserID,
		"status":     status,
	}))

	s.invalidate(ctx, id)

	return nil
}

// Cancel is the staff shortcut for the pending -> cancelled edge.
func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, model.StatusCancelled)
}

// Delete hard-deletes a booking, bypassing the state machine. Administrative
// cleanup only.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func filterByIDAndStatus(id, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) publish(ctx context.Context, key string, envelope event.Envelope) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{Key: key, Value: envelope}); err != nil {
			log.Error().Err(err).Str("event", envelope.Event).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
