package service

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/internal/domains/listing/model"
	"stay/internal/domains/listing/model/dto"
	"stay/internal/domains/listing/repository"
	userModel "stay/internal/domains/user/model"
	userRepo "stay/internal/domains/user/repository"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/validator"

	"github.com/rs/zerolog/log"
)

const otelScopeName = constant.OtelServiceScopeName + ".listing"

type Listing interface {
	Create(ctx context.Context, req dto.CreateListingRequest) (dto.ListingResponse, error)
	Get(ctx context.Context, id string) (dto.ListingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ListingFilter) (dto.GetListingsResponse, error)
	Count(ctx context.Context, filter dto.ListingFilter) (int, error)
	Update(ctx context.Context, req dto.UpdateListingRequest, id string) (dto.ListingResponse, error)
	Delete(ctx context.Context, id string) error
	Describe(ctx context.Context, id string) (string, error)
}

type serviceImpl struct {
	repo     repository.Listing
	userRepo userRepo.User
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Listing, userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Listing {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListingRequest) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	hostExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.HostID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("host_id", req.HostID).Msg("failed to check if host exists")

		return res, fmt.Errorf("failed to check if host exists: %w", err)
	}

	if !hostExists {
		return res, failure.Conflict("host does not exist") // nolint:wrapcheck
	}

	listing, err := req.ToModel()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, listing); err != nil {
		log.Error().Err(err).Str("listing_id", listing.ID).Msg("failed to create listing")

		return res, fmt.Errorf("failed to create listing: %w", err)
	}

	log.Info().Str("listing", listing.String()).Str("listing_id", listing.ID).Msg("listing created")

	res.FromModel(listing)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Listing, error) {
	if err := validator.ValidateID(id); err != nil {
		return model.Listing{}, err
	}

	listing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("listing_id", id).Msg("failed to get listing")

		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return listing, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return listing, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(listing)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ListingFilter) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	listings, err := s.repo.GetAll(ctx, req, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	res.FromModels(listings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter dto.ListingFilter) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Count(ctx, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count listings")

		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateListingRequest, id string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return res, err
	}

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, req.ToFields(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("listing_id", id).Msg("failed to update listing")

		return res, fmt.Errorf("failed to update listing: %w", err)
	}

	listing, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(listing)

	return res, nil
}

// Delete removes the listing; its bookings and reviews go with it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("listing_id", id).Msg("failed to delete listing")

		return fmt.Errorf("failed to delete listing: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Describe(ctx context.Context, id string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Describe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	return listing.String(), nil
}
