package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/booking/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gRepo "stay/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, mod model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	GetDetail(ctx context.Context, id string) (model.BookingDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.BookingDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetDetail returns the zero value when either the booking or its guest is gone.
func (r *repositoryImpl) GetDetail(ctx context.Context, id string) (model.BookingDetail, error) {
	return r.detail.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}
