package service

import (
	"context"
	"fmt"
	"lodging/config"
	"lodging/infras/otel"
	"lodging/internal/domains/lodging/model"
	"lodging/internal/domains/lodging/model/dto"
	"lodging/internal/domains/lodging/repository"
	roomModel "lodging/internal/domains/room/model"
	roomRepo "lodging/internal/domains/room/repository"
	"lodging/shared"
	"lodging/shared/cache"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetLodging    = "lodging:get"
	cacheGetAllLodging = "lodging:gets"
)

type Lodging interface {
	Create(ctx context.Context, req dto.CreateLodgingRequest) (dto.LodgingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLodgingsResponse, error)
	Get(ctx context.Context, id string) (dto.LodgingResponse, error)
	Update(ctx context.Context, req dto.UpdateLodgingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Lodging
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.Cache
	otel     otel.Otel
}

func New(repo repository.Lodging, roomRepo roomRepo.Room, cfg *config.Config, cache cache.Cache, otel otel.Otel) Lodging {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLodgingRequest) (res dto.LodgingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lodging := req.ToModel(user)
	if err = s.repo.Insert(ctx, lodging); err != nil {
		log.Error().Err(err).Msg("failed to create lodging")

		return res, fmt.Errorf("failed to create lodging: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllLodging)

	res.FromModel(lodging)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLodgingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLodging, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lodgings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count lodgings")

		return res, fmt.Errorf("failed to count lodgings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodgings")

		return res, fmt.Errorf("failed to get lodgings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save lodgings to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LodgingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetLodging, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lodging")

		return res, nil
	}

	lodging, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodging")

		return res, fmt.Errorf("failed to get lodging: %w", err)
	}

	if lodging.ID == constant.Empty {
		return res, failure.LodgingNotFound
	}

	res.FromModel(lodging)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save lodging to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLodgingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateLodgingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lodging exists")

		return fmt.Errorf("failed to check if lodging exists: %w", err)
	}

	if !exist {
		return failure.LodgingNotFound
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update lodging")

		return fmt.Errorf("failed to update lodging: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lodging exists")

		return fmt.Errorf("failed to check if lodging exists: %w", err)
	}

	if !exist {
		return failure.LodgingNotFound
	}

	hasRooms, err := s.roomRepo.Exist(ctx, shared.FilterByID(id, roomModel.FieldLodgingID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lodging rooms")

		return fmt.Errorf("failed to check lodging rooms: %w", err)
	}

	if hasRooms {
		return failure.Conflict("lodging still has rooms") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete lodging")

		return fmt.Errorf("failed to delete lodging: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if _, err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetLodging, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete lodging from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllLodging)
}
