package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"manta/infras/otel"
	"manta/infras/postgres"
	"manta/internal/domains/rental/model"
	"manta/shared/constant"
	gDto "manta/shared/dto"
	"manta/shared/failure"
	gRepo "manta/shared/repository"
	"manta/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Rental interface {
	Insert(ctx context.Context, model model.Rental) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rental, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rental, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	GetBooking(ctx context.Context, filter gDto.FilterGroup) (model.RentalBooking, error)
	GetAllBookings(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RentalBooking, error)
	CountBookings(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ReserveBooking(ctx context.Context, booking model.RentalBooking) error
	CompleteBooking(ctx context.Context, booking model.RentalBooking, user string) error
	MarkBookingPaid(ctx context.Context, bookingID, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Rental]
	bookings gRepo.Repository[model.RentalBooking]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rental {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rental](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings:   gRepo.NewRepository[model.RentalBooking](model.BookingEntityName, model.BookingTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetBooking(ctx context.Context, filter gDto.FilterGroup) (model.RentalBooking, error) {
	return repo.bookings.Get(ctx, filter)
}

func (repo *repositoryImpl) GetAllBookings(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RentalBooking, error) {
	return repo.bookings.GetAll(ctx, params, filter)
}

func (repo *repositoryImpl) CountBookings(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.bookings.Count(ctx, filter)
}

// ReserveBooking inserts the booking row and flips the rental to rented in
// one transaction. The flip is conditional on the rental still being
// available, so two concurrent reservations for the same asset cannot both
// commit: the loser sees zero affected rows and the whole transaction rolls
// back with a conflict.
func (repo *repositoryImpl) ReserveBooking(ctx context.Context, booking model.RentalBooking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.ReserveBooking")
	defer scope.End()

	err := repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := repo.bookings.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		mod := map[string]any{
			model.FieldStatus:        model.StatusRented,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: booking.UserID,
		}

		affected, err := repo.UpdateCountTx(ctx, tx, mod, filterByIDAndStatus(booking.RentalID, model.StatusAvailable))
		if err != nil {
			return err
		}

		if affected == 0 {
			return failure.Conflict(model.Unavailable(booking.RentalID)) //nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}

// CompleteBooking closes an active booking and releases the rental back to
// available, in one transaction. Completing twice is a conflict: the second
// call finds no active row and nothing is written.
func (repo *repositoryImpl) CompleteBooking(ctx context.Context, booking model.RentalBooking, user string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.CompleteBooking")
	defer scope.End()

	err := repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		mod := map[string]any{
			model.FieldStatus:        model.BookingStatusCompleted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		affected, err := repo.bookings.UpdateCountTx(ctx, tx, mod, bookingFilterByIDAndStatus(booking.ID, model.BookingStatusActive))
		if err != nil {
			return err
		}

		if affected == 0 {
			return failure.Conflict("rental booking is already completed") //nolint:wrapcheck
		}

		release := map[string]any{
			model.FieldStatus:        model.StatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if _, err := repo.UpdateCountTx(ctx, tx, release, filterByIDAndStatus(booking.RentalID, model.StatusRented)); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}

// MarkBookingPaid flips payment_status pending -> paid. Returns whether this
// call performed the flip: webhook replays find nothing pending and report
// false without error.
func (repo *repositoryImpl) MarkBookingPaid(ctx context.Context, bookingID, user string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.MarkBookingPaid")
	defer scope.End()

	mod := map[string]any{
		model.FieldBookingPaymentStatus: model.PaymentStatusPaid,
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        user,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.BookingTableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingPaymentStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.PaymentStatusPending,
				Table:    model.BookingTableName,
			},
		},
	}

	affected, err := repo.bookings.UpdateCount(ctx, mod, filter)
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
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

func bookingFilterByIDAndStatus(id, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.BookingTableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
				Table:    model.BookingTableName,
			},
		},
	}
}
