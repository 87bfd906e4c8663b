package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodging/infras/otel"
	"lodging/infras/postgres"
	"lodging/internal/domains/reservation/model"
	roomModel "lodging/internal/domains/room/model"
	gDto "lodging/shared/dto"
	gRepo "lodging/shared/repository"
)

// Reservation reads load the room and the user alongside each row.
type Reservation interface {
	// InTx runs fn in one transaction that the repository calls made with
	// fn's ctx join.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockRoom holds the room row until the ambient transaction ends, so
	// concurrent bookings of one room serialize across processes.
	LockRoom(ctx context.Context, roomID string) error
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

var lockRoomQuery = fmt.Sprintf("SELECT %[2]s FROM %[1]s WHERE %[1]s.%[2]s = :room_id FOR UPDATE", roomModel.TableName, roomModel.FieldID)

func (r *repositoryImpl) LockRoom(ctx context.Context, roomID string) error {
	return r.Exec(ctx, lockRoomQuery, map[string]any{"room_id": roomID}) //nolint:wrapcheck
}
