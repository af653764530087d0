package service

import (
	"context"
	"fmt"

	"manta/config"
	"manta/infras/otel"
	courseModel "manta/internal/domains/course/model"
	courseRepo "manta/internal/domains/course/repository"
	"manta/internal/domains/enrollment/model"
	"manta/internal/domains/enrollment/model/dto"
	"manta/internal/domains/enrollment/repository"
	"manta/shared"
	"manta/shared/cache"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllEnrollment = "enrollment:gets"
	cacheCountEnrollment  = "enrollment:count"
)

type Enrollment interface {
	Create(ctx context.Context, req dto.CreateEnrollmentRequest) (dto.EnrollmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEnrollmentsResponse, error)
	GetByUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetEnrollmentsResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Enrollment
	courseRepo courseRepo.Course
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Enrollment,
	courseRepo courseRepo.Course,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Enrollment {
	return &serviceImpl{
		repo:       repo,
		courseRepo: courseRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create registers a paid enrollment. The duplicate check here is a fast
// path for a friendly error; the database unique constraint is the real
// guard, and its violation surfaces as the same conflict.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEnrollmentRequest) (res dto.EnrollmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".enrollment.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	courseExists, err := s.courseRepo.Exist(ctx, shared.FilterByID(req.CourseID, courseModel.FieldID, courseModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if course exists")

		return res, fmt.Errorf("failed to check if course exists: %w", err)
	}

	if !courseExists {
		return res, failure.NotFound("course not found") //nolint:wrapcheck
	}

	enrolled, err := s.repo.Exist(ctx, filterByUserAndCourse(user, req.CourseID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing enrollment")

		return res, fmt.Errorf("failed to check existing enrollment: %w", err)
	}

	if enrolled {
		return res, failure.Conflict("user is already enrolled in this course") //nolint:wrapcheck
	}

	enrollment := req.ToModel(user)

	if err = s.repo.Insert(ctx, enrollment); err != nil {
		log.Error().Err(err).Msg("failed to create enrollment")

		return res, err //nolint:wrapcheck
	}

	res.FromModel(enrollment)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEnrollment)
		shared.InvalidateCaches(c, s.cache, cacheCountEnrollment)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEnrollmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".enrollment.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEnrollment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count enrollments")

		return res, fmt.Errorf("failed to count enrollments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get enrollments")

		return res, fmt.Errorf("failed to get enrollments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save enrollments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetEnrollmentsResponse, error) {
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

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".enrollment.Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if enrollment exists")

		return fmt.Errorf("failed to check if enrollment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("enrollment not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete enrollment")

		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEnrollment)
		shared.InvalidateCaches(c, s.cache, cacheCountEnrollment)
	}()

	return nil
}

func filterByUserAndCourse(userID, courseID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCourseID,
				Operator: gDto.FilterOperatorEq,
				Value:    courseID,
				Table:    model.TableName,
			},
		},
	}
}
