package service_test

import (
	"context"
	"errors"
	"stay/config"
	mockOtel "stay/infras/otel/mocks"
	"stay/internal/domains/listing/mocks"
	"stay/internal/domains/listing/model"
	"stay/internal/domains/listing/model/dto"
	"stay/internal/domains/listing/service"
	userMocks "stay/internal/domains/user/mocks"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/failure"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	hostID    = "5d0c7d4e-2b7a-4c1e-9d7e-3a4b5c6d7e8f"
	listingID = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
)

func price(value string) *decimal.Decimal {
	amount := decimal.RequireFromString(value)

	return &amount
}

func validRequest() dto.CreateListingRequest {
	return dto.CreateListingRequest{
		HostID:        hostID,
		Title:         "Harbour loft",
		Description:   "Two rooms above the fish market",
		Location:      "Lisbon",
		PricePerNight: price("120.00"),
		MaxGuests:     4,
		AvailableFrom: "2026-11-01",
		AvailableTo:   "2027-10-31",
	}
}

type fixture struct {
	repo     *mocks.MockListing
	userRepo *userMocks.MockUser
	service  service.Listing
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockListing(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)

	return fixture{
		repo:     repo,
		userRepo: userRepo,
		service:  service.New(repo, userRepo, &config.Config{}, mockOtel.NewOtel()),
	}
}

func TestListingService_Create(t *testing.T) {
	t.Run("assigns identifier and timestamps", func(t *testing.T) {
		f := setup(t)

		var inserted model.Listing

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mod model.Listing) error {
			inserted = mod

			return nil
		})

		res, err := f.service.Create(context.Background(), validRequest())
		require.NoError(t, err)

		_, parseErr := uuid.Parse(res.ID)
		require.NoError(t, parseErr)
		assert.Equal(t, inserted.ID, res.ID)
		assert.False(t, inserted.CreatedAt.IsZero())
		assert.Equal(t, inserted.CreatedAt, inserted.UpdatedAt)
		assert.Equal(t, "2026-11-01", res.AvailableFrom)
		assert.True(t, decimal.RequireFromString("120").Equal(res.PricePerNight))
	})

	t.Run("identifiers are unique", func(t *testing.T) {
		f := setup(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		first, err := f.service.Create(context.Background(), validRequest())
		require.NoError(t, err)

		second, err := f.service.Create(context.Background(), validRequest())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("zero price is accepted", func(t *testing.T) {
		f := setup(t)
		req := validRequest()
		req.PricePerNight = price("0")

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	invalid := []struct {
		name   string
		mutate func(r *dto.CreateListingRequest)
	}{
		{name: "negative price", mutate: func(r *dto.CreateListingRequest) { r.PricePerNight = price("-1") }},
		{name: "missing price", mutate: func(r *dto.CreateListingRequest) { r.PricePerNight = nil }},
		{name: "zero guests", mutate: func(r *dto.CreateListingRequest) { r.MaxGuests = 0 }},
		{name: "negative guests", mutate: func(r *dto.CreateListingRequest) { r.MaxGuests = -2 }},
		{name: "guests beyond column range", mutate: func(r *dto.CreateListingRequest) { r.MaxGuests = 3_000_000_000 }},
		{name: "empty title", mutate: func(r *dto.CreateListingRequest) { r.Title = "" }},
		{name: "empty description", mutate: func(r *dto.CreateListingRequest) { r.Description = "" }},
		{name: "empty location", mutate: func(r *dto.CreateListingRequest) { r.Location = "" }},
		{name: "bad date", mutate: func(r *dto.CreateListingRequest) { r.AvailableTo = "next year" }},
		{name: "caller supplied identifier", mutate: func(r *dto.CreateListingRequest) { r.ID = listingID }},
		{name: "caller supplied timestamp", mutate: func(r *dto.CreateListingRequest) { r.CreatedAt = "2026-01-01T00:00:00Z" }},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := f.service.Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, failure.IsBadRequest(err))
		})
	}

	t.Run("unknown host", func(t *testing.T) {
		f := setup(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.service.Create(context.Background(), validRequest())
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("storage conflict is preserved", func(t *testing.T) {
		f := setup(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("listing references a record that does not exist"))

		_, err := f.service.Create(context.Background(), validRequest())
		assert.True(t, failure.IsConflict(err))
	})
}

func TestListingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Listing{ID: listingID, Title: "Loft", Location: "Porto"}, nil)

		res, err := f.service.Get(context.Background(), listingID)
		require.NoError(t, err)
		assert.Equal(t, listingID, res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Listing{}, nil)

		_, err := f.service.Get(context.Background(), listingID)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("malformed identifier", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Get(context.Background(), "listing-1")
		assert.True(t, failure.IsBadRequest(err))
	})
}

func TestListingService_GetAll(t *testing.T) {
	f := setup(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	params := gDto.QueryParams{Page: 1, Limit: 2}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Listing, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(listings.location = :location AND listings.price_per_night <= :max_price)", where)
			assert.Equal(t, "Lisbon", args["location"])

			return []model.Listing{
				{ID: "c", Metadata: metadataAt(now)},
				{ID: "b", Metadata: metadataAt(now.Add(-time.Minute))},
			}, nil
		})

	res, err := f.service.GetAll(context.Background(), params, dto.ListingFilter{Location: "Lisbon", MaxPrice: price("200")})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Listings, 2)
	assert.Equal(t, "c", res.Listings[0].ID)
}

func TestListingService_Update(t *testing.T) {
	t.Run("writes only provided fields", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Riverside loft", fields[model.FieldTitle])
				assert.True(t, decimal.Zero.Equal(fields[model.FieldPricePerNight].(decimal.Decimal)))
				assert.Contains(t, fields, constant.FieldUpdatedAt)
				assert.NotContains(t, fields, model.FieldID)
				assert.NotContains(t, fields, constant.FieldCreatedAt)
				assert.NotContains(t, fields, model.FieldLocation)

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Listing{ID: listingID, Title: "Riverside loft"}, nil)

		res, err := f.service.Update(context.Background(), dto.UpdateListingRequest{Title: "Riverside loft", PricePerNight: price("0")}, listingID)
		require.NoError(t, err)
		assert.Equal(t, "Riverside loft", res.Title)
	})

	t.Run("empty update", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Update(context.Background(), dto.UpdateListingRequest{}, listingID)
		assert.True(t, failure.IsBadRequest(err))
	})

	t.Run("identifier cannot change", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Update(context.Background(), dto.UpdateListingRequest{ID: hostID, Title: "x"}, listingID)
		assert.True(t, failure.IsBadRequest(err))
	})

	t.Run("negative price", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Update(context.Background(), dto.UpdateListingRequest{PricePerNight: price("-0.01")}, listingID)
		assert.True(t, failure.IsBadRequest(err))
	})

	t.Run("missing listing", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("listing not found"))

		_, err := f.service.Update(context.Background(), dto.UpdateListingRequest{Title: "x"}, listingID)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestListingService_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		assert.NoError(t, f.service.Delete(context.Background(), listingID))
	})

	t.Run("missing", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		assert.True(t, failure.IsNotFound(f.service.Delete(context.Background(), listingID)))
	})

	t.Run("storage error", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

		err := f.service.Delete(context.Background(), listingID)
		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestListingService_Describe(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Listing{ID: listingID, Title: "Harbour loft", Location: "Lisbon"}, nil)

	got, err := f.service.Describe(context.Background(), listingID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour loft - Lisbon", got)
}

func metadataAt(at time.Time) gModel.Metadata {
	return gModel.Metadata{CreatedAt: at, UpdatedAt: at}
}
