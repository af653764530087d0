package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"manta/infras/otel"
	"manta/infras/postgres"
	"manta/internal/domains/enrollment/model"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"
	gRepo "manta/shared/repository"

	"github.com/lib/pq"
)

type Enrollment interface {
	Insert(ctx context.Context, model model.Enrollment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Enrollment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Enrollment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Enrollment]
}

func New(db *postgres.Connection, otel otel.Otel) Enrollment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Enrollment](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Insert maps the unique (user_id, course_id) violation to a conflict. The
// existence check in the service is only a fast path: under concurrent
// enrollment attempts the constraint is what actually holds the line.
func (repo *repositoryImpl) Insert(ctx context.Context, mod model.Enrollment) error {
	err := repo.Repository.Insert(ctx, mod)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return failure.Conflict("user is already enrolled in this course") //nolint:wrapcheck
	}

	return err //nolint:wrapcheck
}
