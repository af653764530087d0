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
	"manta/infras/otel/mocks"
	courseMocks "manta/internal/domains/course/mocks"
	"manta/internal/domains/course/model"
	"manta/internal/domains/course/model/dto"
	"manta/internal/domains/course/service"
	cacheMocks "manta/shared/cache/mocks"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"
)

const (
	courseIDOne = "11111111-1111-4111-8111-111111111111"
	courseIDTwo = "22222222-2222-4222-8222-222222222222"
)

func newCourseService(t *testing.T) (service.Course, *courseMocks.MockCourse, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := courseMocks.NewMockCourse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestCourseService_Create(t *testing.T) {
	svc, repo, cache := newCourseService(t)

	repo.EXPECT().
		NextOrderIndex(gomock.Any()).
		Return(3, nil)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, course model.Course) error {
			assert.Equal(t, 3, course.OrderIndex)
			assert.Equal(t, model.StatusActive, course.Status)

			return nil
		})

	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	err := svc.Create(ctx, dto.CreateCourseRequest{
		Title:        "Open Water",
		Description:  "Entry level certification",
		Price:        350,
		DurationDays: 4,
		Level:        model.LevelBeginner,
	})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestCourseService_ReplaceOrder(t *testing.T) {
	twoCourses := []model.Course{
		{ID: courseIDOne, Title: "Open Water", OrderIndex: 1},
		{ID: courseIDTwo, Title: "Advanced", OrderIndex: 2},
	}

	tests := []struct {
		name      string
		req       dto.ReplaceOrderRequest
		setupMock func(repo *courseMocks.MockCourse, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "full resequence",
			req:  dto.ReplaceOrderRequest{Courses: []string{courseIDTwo, courseIDOne}},
			setupMock: func(repo *courseMocks.MockCourse, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(twoCourses, nil)

				repo.EXPECT().
					ReplaceOrder(gomock.Any(), []string{courseIDTwo, courseIDOne}, "test-user-id").
					Return(nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Course{
						{ID: courseIDTwo, Title: "Advanced", OrderIndex: 1},
						{ID: courseIDOne, Title: "Open Water", OrderIndex: 2},
					}, nil)

				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate ids collapse to first occurrence",
			req:  dto.ReplaceOrderRequest{Courses: []string{courseIDTwo, courseIDOne, courseIDTwo}},
			setupMock: func(repo *courseMocks.MockCourse, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(twoCourses, nil)

				repo.EXPECT().
					ReplaceOrder(gomock.Any(), []string{courseIDTwo, courseIDOne}, "test-user-id").
					Return(nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(twoCourses, nil)

				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "malformed id rejected",
			req:       dto.ReplaceOrderRequest{Courses: []string{"not-a-uuid"}},
			setupMock: func(_ *courseMocks.MockCourse, _ *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown id fails the whole request",
			req:  dto.ReplaceOrderRequest{Courses: []string{courseIDOne, courseIDTwo}},
			setupMock: func(repo *courseMocks.MockCourse, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(twoCourses[:1], nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository failure surfaces",
			req:  dto.ReplaceOrderRequest{Courses: []string{courseIDOne, courseIDTwo}},
			setupMock: func(repo *courseMocks.MockCourse, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(twoCourses, nil)

				repo.EXPECT().
					ReplaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newCourseService(t)
			tt.setupMock(repo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.ReplaceOrder(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Courses, 2)
		})
	}
}

func TestCourseService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *courseMocks.MockCourse, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found on cache miss",
			setupMock: func(repo *courseMocks.MockCourse, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Course{ID: courseIDOne, Title: "Open Water"}, nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func(repo *courseMocks.MockCourse, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Course{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newCourseService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(context.Background(), courseIDOne)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Open Water", res.Title)
			}
		})
	}
}

func TestCourseService_GetAll(t *testing.T) {
	svc, repo, cache := newCourseService(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Course{
			{ID: courseIDOne, Title: "Open Water", OrderIndex: 1},
			{ID: courseIDTwo, Title: "Advanced", OrderIndex: 2},
		}, nil)

	cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Courses, 2)
}
