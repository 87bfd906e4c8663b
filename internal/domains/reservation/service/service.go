package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lodging/config"
	"lodging/infras/kafka"
	"lodging/infras/otel"
	"lodging/internal/domains/reservation/model"
	"lodging/internal/domains/reservation/model/dto"
	"lodging/internal/domains/reservation/repository"
	roomModel "lodging/internal/domains/room/model"
	roomRepo "lodging/internal/domains/room/repository"
	"lodging/shared"
	"lodging/shared/cache"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"
	"lodging/shared/metrics"
	"lodging/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Reservation interface {
	CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	GetAllByUser(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Reservation
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.Cache
	kafka    kafka.Client
	otel     otel.Otel

	// roomLocks serializes the availability check and insert of one room.
	roomLocks sync.Map
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	cfg *config.Config,
	cache cache.Cache,
	kafka kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafka,
		otel:     otel,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return res, failure.InvalidDateRange
	}

	if _, err = s.getRoom(ctx, roomID); err != nil {
		return res, err
	}

	available, err := s.isAvailable(ctx, roomID, start, end)
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		RoomID:    roomID,
		StartAt:   start.Format(constant.DateFormat),
		EndAt:     end.Format(constant.DateFormat),
		Available: available,
	}, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	room, err := s.getRoom(ctx, reservation.RoomID)
	if err != nil {
		return res, err
	}

	if err = s.insertIfAvailable(ctx, reservation); err != nil {
		return res, err
	}

	s.invalidate(ctx, constant.Empty)
	s.publish(ctx, model.EventCreated, reservation)

	stored, err := s.repo.Get(ctx, shared.FilterByID(reservation.ID, model.FieldID, model.TableName))
	if err != nil || stored.ID == constant.Empty {
		log.Warn().Err(err).Str("id", reservation.ID).Msg("failed to reload created reservation")

		stored = dto.WithRoom(reservation, room)
	}

	res.FromModel(stored)

	return res, nil
}

func (s *serviceImpl) insertIfAvailable(ctx context.Context, reservation model.Reservation) error {
	lock := s.roomLock(reservation.RoomID)
	lock.Lock()
	defer lock.Unlock()

	return s.repo.InTx(ctx, func(ctx context.Context) error { //nolint:wrapcheck
		if err := s.repo.LockRoom(ctx, reservation.RoomID); err != nil {
			log.Error().Err(err).Msg("failed to lock room")

			return fmt.Errorf("failed to lock room: %w", err)
		}

		available, err := s.isAvailable(ctx, reservation.RoomID, reservation.StartAt, reservation.EndAt)
		if err != nil {
			return err
		}

		if !available {
			return failure.RoomUnavailable
		}

		if err = s.repo.Insert(ctx, reservation); err != nil {
			log.Error().Err(err).Msg("failed to create reservation")

			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyReservationGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.ReservationNotFound
	}

	res.FromModel(reservation)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save reservation to cache")
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if params.SortBy == constant.Empty {
		params.SortBy = model.FieldStartAt
	}

	if params.SortDir == constant.Empty {
		params.SortDir = gDto.SortDirAsc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, shared.QualifySort(params, model.TableName), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetAllByUser(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetReservationsResponse, error) {
	return s.GetAll(ctx, params, shared.FilterByID(userID, model.FieldUserID, model.TableName))
}

// GetByDateRange lists reservations touching the closed window [start, end].
// Results are cached per calendar day pair.
func (s *serviceImpl) GetByDateRange(ctx context.Context, start, end time.Time) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByDateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end = start.UTC(), end.UTC()
	if end.Before(start) {
		return nil, failure.InvalidDateRange
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyReservationRange,
		start.Format(constant.CompactDayFormat), end.Format(constant.CompactDayFormat))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation range")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldStartAt, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, model.DateRangeFilter(start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations by date range")

		return nil, fmt.Errorf("failed to get reservations by date range: %w", err)
	}

	res = dto.FromModels(models)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save reservation range to cache")
	}

	return res, nil
}

// Update overwrites the schedule and status. Availability is not re-checked.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation existence")

		return fmt.Errorf("failed to check reservation existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.ReservationNotFound
	}

	fields, err := req.ToFields(user)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	s.invalidate(ctx, id)

	current.StartAt, _ = fields[model.FieldStartAt].(time.Time)
	current.EndAt, _ = fields[model.FieldEndAt].(time.Time)
	current.Status, _ = fields[model.FieldStatus].(model.Status)
	s.publish(ctx, model.EventUpdated, current)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation existence")

		return fmt.Errorf("failed to check reservation existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.ReservationNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, model.EventDeleted, current)

	return nil
}

func (s *serviceImpl) getRoom(ctx context.Context, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.RoomNotFound
	}

	return room, nil
}

func (s *serviceImpl) isAvailable(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(roomID, model.FieldRoomID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room reservations")

		return false, fmt.Errorf("failed to get room reservations: %w", err)
	}

	return model.IsAvailable(start, end, existing), nil
}

func (s *serviceImpl) roomLock(roomID string) *sync.Mutex {
	lock, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})

	return lock.(*sync.Mutex) //nolint:forcetypeassert
}

// invalidate drops the single reservation entry when id is set, then every
// cached date range and monthly revenue.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		if _, err := s.cache.Delete(ctx, shared.BuildCacheKey(constant.CacheKeyReservationGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyReservationRange)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheKeyRevenueMonthly)
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, reservation model.Reservation) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := model.NewEvent(eventType, reservation, timezone.Now())

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{Key: reservation.ID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Str("id", reservation.ID).Msg("failed to publish reservation event")
	}

	metrics.ObserveReservationEvent(eventType, err == nil)
}
