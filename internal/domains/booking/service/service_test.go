package service_test

import (
	"context"
	"stay/config"
	mockOtel "stay/infras/otel/mocks"
	"stay/internal/domains/booking/mocks"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/service"
	listingMocks "stay/internal/domains/listing/mocks"
	userMocks "stay/internal/domains/user/mocks"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	bookingID = "1f2e3d4c-5b6a-4978-8a9b-0c1d2e3f4a5b"
	listingID = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
	userID    = "5d0c7d4e-2b7a-4c1e-9d7e-3a4b5c6d7e8f"
)

type fixture struct {
	repo        *mocks.MockBooking
	listingRepo *listingMocks.MockListing
	userRepo    *userMocks.MockUser
	service     service.Booking
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:        mocks.NewMockBooking(ctrl),
		listingRepo: listingMocks.NewMockListing(ctrl),
		userRepo:    userMocks.NewMockUser(ctrl),
	}
	f.service = service.New(f.repo, f.listingRepo, f.userRepo, &config.Config{}, mockOtel.NewOtel())

	return f
}

func (f fixture) expectReferences(listing, user bool) {
	f.listingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(listing, nil)

	if listing {
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(user, nil)
	}
}

func amount(value string) *decimal.Decimal {
	a := decimal.RequireFromString(value)

	return &a
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		ListingID:      listingID,
		UserID:         userID,
		CheckInDate:    "2026-12-20",
		CheckOutDate:   "2026-12-27",
		NumberOfGuests: 2,
		TotalPrice:     amount("840.00"),
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("defaults to pending", func(t *testing.T) {
		f := setup(t)
		f.expectReferences(true, true)

		var inserted model.Booking

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mod model.Booking) error {
			inserted = mod

			return nil
		})

		res, err := f.service.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "2026-12-20", res.CheckInDate)
	})

	for _, status := range model.Statuses {
		t.Run("accepts status "+status, func(t *testing.T) {
			f := setup(t)
			f.expectReferences(true, true)
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

			req := validRequest()
			req.Status = status

			res, err := f.service.Create(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, status, res.Status)
		})
	}

	t.Run("dates and capacity are not cross checked", func(t *testing.T) {
		f := setup(t)
		f.expectReferences(true, true)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := validRequest()
		req.CheckOutDate = "2026-12-01"
		req.NumberOfGuests = 40

		_, err := f.service.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	invalid := []struct {
		name   string
		mutate func(r *dto.CreateBookingRequest)
	}{
		{name: "status outside set", mutate: func(r *dto.CreateBookingRequest) { r.Status = "archived" }},
		{name: "zero guests", mutate: func(r *dto.CreateBookingRequest) { r.NumberOfGuests = 0 }},
		{name: "guests beyond column range", mutate: func(r *dto.CreateBookingRequest) { r.NumberOfGuests = 3_000_000_000 }},
		{name: "negative total", mutate: func(r *dto.CreateBookingRequest) { r.TotalPrice = amount("-5") }},
		{name: "missing listing", mutate: func(r *dto.CreateBookingRequest) { r.ListingID = "" }},
		{name: "malformed check in", mutate: func(r *dto.CreateBookingRequest) { r.CheckInDate = "20/12/2026" }},
		{name: "caller supplied identifier", mutate: func(r *dto.CreateBookingRequest) { r.ID = bookingID }},
		{name: "caller supplied updated_at", mutate: func(r *dto.CreateBookingRequest) { r.UpdatedAt = "2026-10-15T10:00:00Z" }},
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

	t.Run("unknown listing", func(t *testing.T) {
		f := setup(t)
		f.expectReferences(false, false)

		_, err := f.service.Create(context.Background(), validRequest())
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := setup(t)
		f.expectReferences(true, false)

		_, err := f.service.Create(context.Background(), validRequest())
		assert.True(t, failure.IsConflict(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("any status may follow any other", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusPending, fields[model.FieldStatus])

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: bookingID, Status: model.StatusPending}, nil)

		res, err := f.service.Update(context.Background(), dto.UpdateBookingRequest{Status: model.StatusPending}, bookingID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Update(context.Background(), dto.UpdateBookingRequest{Status: "done"}, bookingID)
		assert.True(t, failure.IsBadRequest(err))
	})

	t.Run("guests beyond column range", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Update(context.Background(), dto.UpdateBookingRequest{NumberOfGuests: 3_000_000_000}, bookingID)
		require.Error(t, err)
		assert.True(t, failure.IsBadRequest(err))
		assert.Equal(t, "number_of_guests must be less than or equal to 2147483647", err.Error())
	})

	t.Run("empty", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Update(context.Background(), dto.UpdateBookingRequest{}, bookingID)
		assert.True(t, failure.IsBadRequest(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := setup(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(bookings.listing_id = :listing_id AND bookings.status IN (:status_0, :status_1) AND bookings.check_in_date >= :check_in_from)", where)
			assert.Equal(t, "2026-12-01", args["check_in_from"])

			return []model.Booking{{ID: bookingID}}, nil
		})

	res, err := f.service.GetAll(context.Background(), params, dto.BookingFilter{
		ListingID:   listingID,
		Statuses:    []string{model.StatusPending, model.StatusConfirmed},
		CheckInFrom: "2026-12-01",
	})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)

	_, err = f.service.Count(context.Background(), dto.BookingFilter{CheckInTo: "soon"})
	assert.True(t, failure.IsBadRequest(err))
}

func TestBookingService_Describe(t *testing.T) {
	t.Run("joins the guest", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().GetDetail(gomock.Any(), bookingID).Return(model.BookingDetail{
			Booking:  model.Booking{ID: bookingID},
			Username: "maria",
		}, nil)

		got, err := f.service.Describe(context.Background(), bookingID)
		require.NoError(t, err)
		assert.Equal(t, "Booking "+bookingID+" by maria", got)
	})

	t.Run("guest removed concurrently", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().GetDetail(gomock.Any(), bookingID).Return(model.BookingDetail{}, nil)

		_, err := f.service.Describe(context.Background(), bookingID)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	assert.NoError(t, f.service.Delete(context.Background(), bookingID))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.service.Get(context.Background(), bookingID)
	assert.True(t, failure.IsNotFound(err))
}
