package service

import (
	"context"
	"fmt"

	"lodging/config"
	"lodging/infras/otel"
	lodgingModel "lodging/internal/domains/lodging/model"
	lodgingRepo "lodging/internal/domains/lodging/repository"
	reservationModel "lodging/internal/domains/reservation/model"
	reservationRepo "lodging/internal/domains/reservation/repository"
	"lodging/internal/domains/room/model"
	"lodging/internal/domains/room/model/dto"
	"lodging/internal/domains/room/repository"
	"lodging/shared"
	"lodging/shared/cache"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Room
	lodgingRepo     lodgingRepo.Lodging
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.Cache
	otel            otel.Otel
}

func New(
	repo repository.Room,
	lodgingRepo lodgingRepo.Lodging,
	reservationRepo reservationRepo.Reservation,
	cfg *config.Config,
	cache cache.Cache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:            repo,
		lodgingRepo:     lodgingRepo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.ensureLodging(ctx, req.LodgingID); err != nil {
		return res, err
	}

	if err = s.ensureUniqueNumber(ctx, req.LodgingID, req.Number, constant.Empty); err != nil {
		return res, err
	}

	room := req.ToModel(user)
	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, shared.QualifySort(req, model.TableName), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save rooms to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.RoomNotFound
	}

	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

// Update changes a room in place. Rate changes reprice every reservation of
// the room, so cached revenue and reservation views are dropped as well.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.RoomNotFound
	}

	lodgingID, number := current.LodgingID, current.Number
	if req.LodgingID != constant.Empty {
		if err = s.ensureLodging(ctx, req.LodgingID); err != nil {
			return err
		}

		lodgingID = req.LodgingID
	}

	if req.Number != nil {
		number = *req.Number
	}

	if lodgingID != current.LodgingID || number != current.Number {
		if err = s.ensureUniqueNumber(ctx, lodgingID, number, id); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReservationGet)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReservationRange)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyRevenueMonthly)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.RoomNotFound
	}

	booked, err := s.reservationRepo.Exist(ctx, shared.FilterByID(id, reservationModel.FieldRoomID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room reservations")

		return fmt.Errorf("failed to check room reservations: %w", err)
	}

	if booked {
		return failure.Conflict("room still has reservations") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ensureLodging(ctx context.Context, lodgingID string) error {
	exist, err := s.lodgingRepo.Exist(ctx, shared.FilterByID(lodgingID, lodgingModel.FieldID, lodgingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lodging exists")

		return fmt.Errorf("failed to check if lodging exists: %w", err)
	}

	if !exist {
		return failure.LodgingNotFound
	}

	return nil
}

// ensureUniqueNumber rejects a number already used inside the lodging. excludeID skips the room being edited.
func (s *serviceImpl) ensureUniqueNumber(ctx context.Context, lodgingID string, number int, excludeID string) error {
	filters := []any{
		gDto.Filter{Field: model.FieldLodgingID, Value: lodgingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldNumber, Value: number, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters})
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("room number %d already exists in lodging", number)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if _, err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete room from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
}
