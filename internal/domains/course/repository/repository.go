package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"manta/infras/otel"
	"manta/infras/postgres"
	"manta/internal/domains/course/model"
	"manta/shared"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"
	"manta/shared/logger"
	gRepo "manta/shared/repository"
	"manta/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Course interface {
	Insert(ctx context.Context, model model.Course) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Course, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Course, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	NextOrderIndex(ctx context.Context) (int, error)
	ReplaceOrder(ctx context.Context, orderedIDs []string, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Course]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Course {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Course](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// NextOrderIndex returns the order index a newly created course is appended
// at: one past the current maximum.
func (repo *repositoryImpl) NextOrderIndex(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".course.NextOrderIndex")
	defer scope.End()

	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", model.FieldOrderIndex, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var next int

	if err := repo.db.Read.GetContext(ctx, &next, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get next order index (%s): %w", model.EntityName, err)
	}

	return next, nil
}

// ReplaceOrder relabels order_index to the 1-based position of each id in the
// provided sequence. The whole relabeling is one transaction: a mid-update
// failure leaves the prior ordering intact, and two concurrent reorders
// cannot interleave into a non-permutation.
func (repo *repositoryImpl) ReplaceOrder(ctx context.Context, orderedIDs []string, user string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".course.ReplaceOrder")
	defer scope.End()

	err := repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		for position, id := range orderedIDs {
			mod := map[string]any{
				model.FieldOrderIndex:    position + 1,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			}

			affected, err := repo.UpdateCountTx(ctx, tx, mod, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				return err
			}

			if affected == 0 {
				// Deleted between the existence check and the write; abort so
				// no partial reorder is observable.
				return failure.NotFound(fmt.Sprintf("course %s not found", id)) //nolint:wrapcheck
			}
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}
