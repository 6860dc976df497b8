package service

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	listingModel "stay/internal/domains/listing/model"
	listingRepo "stay/internal/domains/listing/repository"
	"stay/internal/domains/review/model"
	"stay/internal/domains/review/model/dto"
	"stay/internal/domains/review/repository"
	userModel "stay/internal/domains/user/model"
	userRepo "stay/internal/domains/user/repository"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/validator"
	"strings"

	"github.com/rs/zerolog/log"
)

const otelScopeName = constant.OtelServiceScopeName + ".review"

var errDuplicateReview = failure.Conflict("review already exists for this listing and user")

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ReviewFilter) (dto.GetReviewsResponse, error)
	Count(ctx context.Context, filter dto.ReviewFilter) (int, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
	Describe(ctx context.Context, id string) (string, error)
}

type serviceImpl struct {
	repo        repository.Review
	listingRepo listingRepo.Listing
	userRepo    userRepo.User
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Review, listingRepo listingRepo.Listing, userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

// Create stores a review. The pre-check gives a clear message in the common
// case; the unique constraint still decides between concurrent writers.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
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

	duplicate, err := s.repo.Exist(ctx, dto.ReviewFilter{ListingID: req.ListingID, UserID: req.UserID}.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to check for an existing review")

		return res, fmt.Errorf("failed to check for an existing review: %w", err)
	}

	if duplicate {
		return res, errDuplicateReview
	}

	review := req.ToModel()

	if err = s.repo.Insert(ctx, review); err != nil {
		if failure.IsConflict(err) && strings.Contains(err.Error(), model.UniqueListingUser) {
			log.Warn().Err(err).Str("listing_id", req.ListingID).Str("user_id", req.UserID).Msg("concurrent duplicate review rejected")

			return res, errDuplicateReview
		}

		log.Error().Err(err).Str("review_id", review.ID).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Review, error) {
	if err := validator.ValidateID(id); err != nil {
		return model.Review{}, err
	}

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("review_id", id).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found") // nolint:wrapcheck
	}

	return review, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ReviewFilter) (res dto.GetReviewsResponse, err error) {
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

	reviews, err := s.repo.GetAll(ctx, req, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(reviews, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter dto.ReviewFilter) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err
	}

	res, err = s.repo.Count(ctx, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (res dto.ReviewResponse, err error) {
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
		log.Error().Err(err).Str("review_id", id).Msg("failed to update review")

		return res, fmt.Errorf("failed to update review: %w", err)
	}

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(review)

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
		log.Error().Err(err).Str("review_id", id).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound("review not found") // nolint:wrapcheck
	}

	return nil
}

// Describe renders "Review by {username} for {title}".
func (s *serviceImpl) Describe(ctx context.Context, id string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Describe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return res, err
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("review_id", id).Msg("failed to get review detail")

		return res, fmt.Errorf("failed to get review detail: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("review not found") // nolint:wrapcheck
	}

	return detail.String(), nil
}
