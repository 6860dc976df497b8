package service

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/repository"
	listingModel "stay/internal/domains/listing/model"
	listingRepo "stay/internal/domains/listing/repository"
	userModel "stay/internal/domains/user/model"
	userRepo "stay/internal/domains/user/repository"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/validator"

	"github.com/rs/zerolog/log"
)

const otelScopeName = constant.OtelServiceScopeName + ".booking"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, filter dto.BookingFilter) (int, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Describe(ctx context.Context, id string) (string, error)
}

type serviceImpl struct {
	repo        repository.Booking
	listingRepo listingRepo.Listing
	userRepo    userRepo.User
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Booking, listingRepo listingRepo.Listing, userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

// Create stores a booking. Dates, guest count against the listing capacity and
// overlapping stays are taken as given.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	listingExists, err := s.listingRepo.Exist(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("listing_id", req.ListingID).Msg("failed to check if listing exists")

		return res, fmt.Errorf("failed to check if listing exists: %w", err)
	}

	if !listingExists {
		return res, failure.Conflict("listing does not exist") // nolint:wrapcheck
	}

	userExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !userExists {
		return res, failure.Conflict("user does not exist") // nolint:wrapcheck
	}

	booking, err := req.ToModel()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	if err := validator.ValidateID(id); err != nil {
		return model.Booking{}, err
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
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

	bookings, err := s.repo.GetAll(ctx, req, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter dto.BookingFilter) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err
	}

	res, err = s.repo.Count(ctx, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	return res, nil
}

// Update rewrites the provided fields. Status may move between any two values.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
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
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}

// Describe renders "Booking {id} by {username}". A booking whose guest row has
// been removed concurrently reads as not found.
func (s *serviceImpl) Describe(ctx context.Context, id string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Describe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return res, err
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking detail")

		return res, fmt.Errorf("failed to get booking detail: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return detail.String(), nil
}
