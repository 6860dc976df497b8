package seeder_test

import (
	"context"
	"errors"
	"math"
	"stay/config"
	"stay/infras/otel"
	mockOtel "stay/infras/otel/mocks"
	bookingMocks "stay/internal/domains/booking/mocks"
	bookingModel "stay/internal/domains/booking/model"
	bookingService "stay/internal/domains/booking/service"
	listingMocks "stay/internal/domains/listing/mocks"
	listingModel "stay/internal/domains/listing/model"
	listingService "stay/internal/domains/listing/service"
	reviewMocks "stay/internal/domains/review/mocks"
	reviewModel "stay/internal/domains/review/model"
	reviewService "stay/internal/domains/review/service"
	userMocks "stay/internal/domains/user/mocks"
	userModel "stay/internal/domains/user/model"
	userService "stay/internal/domains/user/service"
	"stay/internal/seeder"
	gDto "stay/shared/dto"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	userRepo    *userMocks.MockUser
	listingRepo *listingMocks.MockListing
	bookingRepo *bookingMocks.MockBooking
	reviewRepo  *reviewMocks.MockReview
	seeder      *seeder.Seeder
}

type counts struct {
	users, listings, bookings, reviews int
}

func setup(t *testing.T, n counts) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Seed.Users = n.users
	cfg.Seed.Listings = n.listings
	cfg.Seed.Bookings = n.bookings
	cfg.Seed.Reviews = n.reviews
	otel := mockOtel.NewOtel()

	f := fixture{
		userRepo:    userMocks.NewMockUser(ctrl),
		listingRepo: listingMocks.NewMockListing(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		reviewRepo:  reviewMocks.NewMockReview(ctrl),
	}

	hash := func(password string) (string, error) { return "hashed:" + password, nil }

	f.seeder = seeder.New(
		userService.NewWithHasher(f.userRepo, cfg, otel, hash),
		listingService.New(f.listingRepo, f.userRepo, cfg, otel),
		bookingService.New(f.bookingRepo, f.listingRepo, f.userRepo, cfg, otel),
		reviewService.New(f.reviewRepo, f.listingRepo, f.userRepo, cfg, otel),
		f.userRepo,
		f.listingRepo,
		f.bookingRepo,
		f.reviewRepo,
		cfg,
		otel,
	)

	return f
}

func (f fixture) expectClear(t *testing.T) {
	gomock.InOrder(
		f.reviewRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil),
		f.bookingRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil),
		f.listingRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil),
		f.userRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int64, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "users.is_superuser")
			assert.Equal(t, false, args[userModel.FieldIsSuperuser])

			return 0, nil
		}),
	)
}

func TestSeeder_Run(t *testing.T) {
	f := setup(t, counts{users: 3, listings: 4, bookings: 12, reviews: 15})
	f.expectClear(t)

	var users []userModel.User
	f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(func(_ context.Context, user userModel.User) error {
		assert.True(t, strings.HasPrefix(user.Username, "user"))
		assert.Equal(t, user.Username+"@example.com", user.Email)
		assert.Equal(t, "hashed:password123", user.Password)
		assert.False(t, user.IsSuperuser)

		users = append(users, user)

		return nil
	})
	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	f.listingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()

	listings := map[string]listingModel.Listing{}
	f.listingRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(4).DoAndReturn(func(_ context.Context, listing listingModel.Listing) error {
		assert.Contains(t, listing.Title, " in ")
		assert.True(t, listing.PricePerNight.GreaterThanOrEqual(decimal.NewFromInt(50)))
		assert.True(t, listing.PricePerNight.LessThanOrEqual(decimal.NewFromInt(500)))
		assert.GreaterOrEqual(t, listing.MaxGuests, 1)
		assert.LessOrEqual(t, listing.MaxGuests, 8)
		assert.True(t, listing.AvailableTo.After(listing.AvailableFrom))

		listings[listing.ID] = listing

		return nil
	})

	completed := map[[2]string]bool{}
	f.bookingRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(12).DoAndReturn(func(_ context.Context, booking bookingModel.Booking) error {
		listing, ok := listings[booking.ListingID]
		require.True(t, ok)

		assert.NotEqual(t, listing.HostID, booking.UserID)
		assert.GreaterOrEqual(t, booking.NumberOfGuests, 1)
		assert.LessOrEqual(t, booking.NumberOfGuests, listing.MaxGuests)
		assert.Contains(t, bookingModel.Statuses, booking.Status)

		nights := int64(math.Round(booking.CheckOutDate.Sub(booking.CheckInDate).Hours() / 24))
		assert.True(t, booking.TotalPrice.Equal(listing.PricePerNight.Mul(decimal.NewFromInt(nights))))

		if booking.Status == bookingModel.StatusCompleted {
			completed[[2]string{booking.ListingID, booking.UserID}] = true
		}

		return nil
	})

	reviewed := map[[2]string]bool{}
	f.reviewRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
		_, args := filter.GetWhereClause()
		pair := [2]string{args[reviewModel.FieldListingID].(string), args[reviewModel.FieldUserID].(string)}

		return reviewed[pair], nil
	})
	f.reviewRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(func(_ context.Context, review reviewModel.Review) error {
		assert.GreaterOrEqual(t, review.Rating, 3)
		assert.LessOrEqual(t, review.Rating, 5)
		assert.Equal(t, "Great stay at "+listings[review.ListingID].Title+"! Would definitely recommend.", review.Comment)

		reviewed[[2]string{review.ListingID, review.UserID}] = true

		return nil
	})

	report, err := f.seeder.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seeder.Report{Users: 3, Listings: 4, Bookings: 12, Reviews: len(completed)}, report)
	assert.Len(t, users, 3)
	assert.Len(t, reviewed, len(completed))
}

func TestSeeder_Run_TooFewUsersForBookings(t *testing.T) {
	f := setup(t, counts{users: 1, listings: 1, bookings: 5, reviews: 5})
	f.expectClear(t)

	f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.listingRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	report, err := f.seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seeder.Report{Users: 1, Listings: 1}, report)
}

func TestSeeder_Run_ClearFails(t *testing.T) {
	f := setup(t, counts{users: 1})

	f.reviewRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

	_, err := f.seeder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear reviews")
}

func TestSeeder_Run_UserInsertFails(t *testing.T) {
	f := setup(t, counts{users: 2, listings: 1})
	f.expectClear(t)

	gomock.InOrder(
		f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
	)

	report, err := f.seeder.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, report.Users)
	assert.Contains(t, err.Error(), "failed to seed user 2")
}

func TestSeeder_Run_NegativeCount(t *testing.T) {
	tests := []struct {
		name string
		n    counts
	}{
		{name: "users", n: counts{users: -1}},
		{name: "listings", n: counts{users: 2, listings: -5}},
		{name: "bookings", n: counts{users: 2, listings: 1, bookings: -1}},
		{name: "reviews", n: counts{users: 2, listings: 1, reviews: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no expectations: nothing may be cleared or inserted
			f := setup(t, tt.n)

			report, err := f.seeder.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "seed counts must not be negative")
			assert.Equal(t, seeder.Report{}, report)
		})
	}
}

type shutdownOtel struct {
	otel.Otel

	calls int
	err   error
}

func (o *shutdownOtel) Shutdown(_ context.Context) error {
	o.calls++

	return o.err
}

func TestSeeder_Close(t *testing.T) {
	t.Run("flushes traces", func(t *testing.T) {
		ot := &shutdownOtel{Otel: mockOtel.NewOtel()}
		s := seeder.New(nil, nil, nil, nil, nil, nil, nil, nil, &config.Config{}, ot)

		require.NoError(t, s.Close(context.Background()))
		assert.Equal(t, 1, ot.calls)
	})

	t.Run("flush failure is reported", func(t *testing.T) {
		ot := &shutdownOtel{Otel: mockOtel.NewOtel(), err: errors.New("collector unreachable")}
		s := seeder.New(nil, nil, nil, nil, nil, nil, nil, nil, &config.Config{}, ot)

		err := s.Close(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to flush traces")
	})
}
