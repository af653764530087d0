package service

import (
	"context"
	"fmt"
	"strings"

	"manta/config"
	"manta/infras/otel"
	"manta/internal/domains/course/model"
	"manta/internal/domains/course/model/dto"
	"manta/internal/domains/course/repository"
	"manta/shared"
	"manta/shared/cache"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCourse    = "course:get"
	cacheGetAllCourse = "course:gets"
	cacheCountCourse  = "course:count"
)

type Course interface {
	Create(ctx context.Context, req dto.CreateCourseRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCoursesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CourseResponse, error)
	Update(ctx context.Context, req dto.UpdateCourseRequest, id string) error
	Delete(ctx context.Context, id string) error
	ReplaceOrder(ctx context.Context, req dto.ReplaceOrderRequest) (dto.ReplaceOrderResponse, error)
}

type serviceImpl struct {
	repo  repository.Course
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Course, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Course {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCourseRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	orderIndex, err := s.repo.NextOrderIndex(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute course order index")

		return fmt.Errorf("failed to compute course order index: %w", err)
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, orderIndex)); err != nil {
		log.Error().Err(err).Msg("failed to create course")

		return fmt.Errorf("failed to create course: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCourse)
		shared.InvalidateCaches(c, s.cache, cacheCountCourse)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCoursesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCourse, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for courses")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count courses")

		return res, fmt.Errorf("failed to count courses: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get courses")

		return res, fmt.Errorf("failed to get courses: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save courses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCourse, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count courses")

		return res, fmt.Errorf("failed to count courses: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save course count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CourseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCourse, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	course, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get course")

		return res, fmt.Errorf("failed to get course: %w", err)
	}

	if course.ID == constant.Empty {
		return res, failure.NotFound("course not found") //nolint:wrapcheck
	}

	res.FromModel(course)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save course to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCourseRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.Update")
	defer scope.End()

	if req == (dto.UpdateCourseRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if course exists")

		return fmt.Errorf("failed to check if course exists: %w", err)
	}

	if !exist {
		return failure.NotFound("course not found") //nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update course")

		return fmt.Errorf("failed to update course: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if course exists")

		return fmt.Errorf("failed to check if course exists: %w", err)
	}

	if !exist {
		return failure.NotFound("course not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete course")

		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// ReplaceOrder validates and applies a full catalog resequencing, then
// returns the courses re-read in their authoritative new order so an
// optimistic client-side reorder can reconcile against it.
func (s *serviceImpl) ReplaceOrder(ctx context.Context, req dto.ReplaceOrderRequest) (res dto.ReplaceOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".course.ReplaceOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ids, err := normalizeOrderIDs(req.Courses)
	if err != nil {
		return res, err
	}

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filterByIDs(ids))
	if err != nil {
		log.Error().Err(err).Msg("failed to load courses for reorder")

		return res, fmt.Errorf("failed to load courses for reorder: %w", err)
	}

	if len(existing) != len(ids) {
		missing := missingIDs(ids, existing)

		return res, failure.NotFound(fmt.Sprintf("courses not found: %s", strings.Join(missing, ", "))) //nolint:wrapcheck
	}

	if err = s.repo.ReplaceOrder(ctx, ids, user); err != nil {
		log.Error().Err(err).Msg("failed to replace course order")

		return res, err
	}

	reordered, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldOrderIndex, SortDir: gDto.SortDirAsc}, filterByIDs(ids))
	if err != nil {
		log.Error().Err(err).Msg("failed to reload courses after reorder")

		return res, fmt.Errorf("failed to reload courses after reorder: %w", err)
	}

	res.FromModels(reordered)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetCourse)
		shared.InvalidateCaches(c, s.cache, cacheGetAllCourse)
	}()

	return res, nil
}

// normalizeOrderIDs rejects malformed ids and drops duplicates, preserving
// first-occurrence order. Duplicates are an anomaly worth logging, not a hard
// failure.
func normalizeOrderIDs(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))

	for _, id := range raw {
		if _, err := uuid.Parse(id); err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("invalid course id: %s", id)) //nolint:wrapcheck
		}

		if _, ok := seen[id]; ok {
			log.Warn().Str("course_id", id).Msg("duplicate course id in reorder request, ignoring")

			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

func filterByIDs(ids []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    model.TableName,
			},
		},
	}
}

func missingIDs(wanted []string, found []model.Course) []string {
	present := make(map[string]struct{}, len(found))
	for _, course := range found {
		present[course.ID] = struct{}{}
	}

	missing := []string{}

	for _, id := range wanted {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCourse, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete course from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCourse)
		shared.InvalidateCaches(c, s.cache, cacheCountCourse)
	}()
}
