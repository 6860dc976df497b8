package service

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/internal/domains/user/model"
	"stay/internal/domains/user/model/dto"
	"stay/internal/domains/user/repository"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/password"
	"stay/shared/validator"

	"github.com/rs/zerolog/log"
)

const otelScopeName = constant.OtelServiceScopeName + ".user"

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.UserFilter) (dto.GetUsersResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
	hash func(string) (string, error)
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return NewWithHasher(repo, cfg, otel, password.Hash)
}

// NewWithHasher swaps the password hasher, letting bulk callers use a cheaper cost.
func NewWithHasher(repo repository.User, cfg *config.Config, otel otel.Otel, hash func(string) (string, error)) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		hash: hash,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashed)

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return res, err
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.UserFilter) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := filter.ToFilterGroup()

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, req.Limit)

	return res, nil
}

// Delete removes the user together with their listings, bookings and reviews.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateID(id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	return nil
}
