// Package seeder fills an empty database with sample hosts, listings, bookings
// and reviews for local development.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"stay/config"
	"stay/infras/otel"
	bookingModel "stay/internal/domains/booking/model"
	bookingDto "stay/internal/domains/booking/model/dto"
	bookingRepo "stay/internal/domains/booking/repository"
	bookingService "stay/internal/domains/booking/service"
	listingModel "stay/internal/domains/listing/model"
	listingDto "stay/internal/domains/listing/model/dto"
	listingRepo "stay/internal/domains/listing/repository"
	listingService "stay/internal/domains/listing/service"
	reviewModel "stay/internal/domains/review/model"
	reviewDto "stay/internal/domains/review/model/dto"
	reviewRepo "stay/internal/domains/review/repository"
	reviewService "stay/internal/domains/review/service"
	userDto "stay/internal/domains/user/model/dto"
	userRepo "stay/internal/domains/user/repository"
	userService "stay/internal/domains/user/service"
	"stay/shared"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	samplePassword = "password123"

	minNightlyPrice = 50
	maxNightlyPrice = 500
	maxSampleGuests = 8
	maxLeadDays     = 90
	maxStayNights   = 14
	availableDays   = 365

	minSampleRating = 3

	otelScopeName = "seeder"
)

var errNegativeCount = errors.New("seed counts must not be negative")

var (
	locations = []string{
		"New York, USA",
		"Paris, France",
		"Tokyo, Japan",
		"London, UK",
		"Sydney, Australia",
		"Barcelona, Spain",
		"Dubai, UAE",
		"Amsterdam, Netherlands",
	}

	propertyTypes = []string{
		"Cozy Studio Apartment",
		"Luxury Penthouse",
		"Beachfront Villa",
		"Mountain Cabin",
		"City Center Loft",
		"Historic Cottage",
		"Modern Condo",
		"Spacious Family Home",
	}
)

// Report counts the rows created by one run.
type Report struct {
	Users    int
	Listings int
	Bookings int
	Reviews  int
}

type Seeder struct {
	users    userService.User
	listings listingService.Listing
	bookings bookingService.Booking
	reviews  reviewService.Review

	userRepo    userRepo.User
	listingRepo listingRepo.Listing
	bookingRepo bookingRepo.Booking
	reviewRepo  reviewRepo.Review

	cfg  *config.Config
	otel otel.Otel
	rand *rand.Rand
}

func New(
	users userService.User,
	listings listingService.Listing,
	bookings bookingService.Booking,
	reviews reviewService.Review,
	userRepo userRepo.User,
	listingRepo listingRepo.Listing,
	bookingRepo bookingRepo.Booking,
	reviewRepo reviewRepo.Review,
	cfg *config.Config,
	otel otel.Otel,
) *Seeder {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec

	return &Seeder{
		users:       users,
		listings:    listings,
		bookings:    bookings,
		reviews:     reviews,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		cfg:         cfg,
		otel:        otel,
		rand:        rand.New(rand.NewPCG(seed, seed>>1)), //nolint:gosec
	}
}

// Run wipes sample data and recreates it. Superusers survive the wipe.
func (s *Seeder) Run(ctx context.Context) (report Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, otelScopeName+".Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts := s.cfg.Seed
	if counts.Users < 0 || counts.Listings < 0 || counts.Bookings < 0 || counts.Reviews < 0 {
		return report, fmt.Errorf("%w: users=%d listings=%d bookings=%d reviews=%d",
			errNegativeCount, counts.Users, counts.Listings, counts.Bookings, counts.Reviews)
	}

	log.Info().Msg("Seeding database")

	if err = s.clear(ctx); err != nil {
		return report, err
	}

	users, err := s.seedUsers(ctx)
	report.Users = len(users)

	if err != nil {
		return report, err
	}

	listings, err := s.seedListings(ctx, users)
	report.Listings = len(listings)

	if err != nil {
		return report, err
	}

	bookings, err := s.seedBookings(ctx, users, listings)
	report.Bookings = len(bookings)

	if err != nil {
		return report, err
	}

	report.Reviews, err = s.seedReviews(ctx, bookings, listings)
	if err != nil {
		return report, err
	}

	scope.SetAttributes(map[string]any{
		"seed.users":    report.Users,
		"seed.listings": report.Listings,
		"seed.bookings": report.Bookings,
		"seed.reviews":  report.Reviews,
	})

	log.Info().
		Int("users", report.Users).
		Int("listings", report.Listings).
		Int("bookings", report.Bookings).
		Int("reviews", report.Reviews).
		Msg("Database seeding completed")

	return report, nil
}

// Close flushes the spans recorded while seeding.
func (s *Seeder) Close(ctx context.Context) error {
	if err := s.otel.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to flush traces: %w", err)
	}

	return nil
}

func (s *Seeder) clear(ctx context.Context) error {
	log.Info().Msg("Clearing existing data")

	if _, err := s.reviewRepo.Delete(ctx, shared.FilterAll(reviewModel.FieldID, reviewModel.TableName)); err != nil {
		return fmt.Errorf("failed to clear reviews: %w", err)
	}

	if _, err := s.bookingRepo.Delete(ctx, shared.FilterAll(bookingModel.FieldID, bookingModel.TableName)); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}

	if _, err := s.listingRepo.Delete(ctx, shared.FilterAll(listingModel.FieldID, listingModel.TableName)); err != nil {
		return fmt.Errorf("failed to clear listings: %w", err)
	}

	superuser := false
	if _, err := s.userRepo.Delete(ctx, userDto.UserFilter{IsSuperuser: &superuser}.ToFilterGroup()); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) ([]userDto.UserResponse, error) {
	users := make([]userDto.UserResponse, 0, s.cfg.Seed.Users)

	for i := 1; i <= s.cfg.Seed.Users; i++ {
		user, err := s.users.Create(ctx, userDto.CreateUserRequest{
			Username:  fmt.Sprintf("user%d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			FirstName: fmt.Sprintf("FirstName%d", i),
			LastName:  fmt.Sprintf("LastName%d", i),
			Password:  samplePassword,
		})
		if err != nil {
			return users, fmt.Errorf("failed to seed user %d: %w", i, err)
		}

		users = append(users, user)
	}

	log.Info().Int("count", len(users)).Msg("Created users")

	return users, nil
}

func (s *Seeder) seedListings(ctx context.Context, users []userDto.UserResponse) ([]listingDto.ListingResponse, error) {
	listings := make([]listingDto.ListingResponse, 0, s.cfg.Seed.Listings)

	if len(users) == 0 {
		return listings, nil
	}

	today := timezone.Now()

	for i := 1; i <= s.cfg.Seed.Listings; i++ {
		city, _, _ := strings.Cut(pick(s.rand, locations), ",")
		price := decimal.NewFromInt(int64(between(s.rand, minNightlyPrice, maxNightlyPrice)))

		listing, err := s.listings.Create(ctx, listingDto.CreateListingRequest{
			HostID:        pick(s.rand, users).ID,
			Title:         fmt.Sprintf("%s in %s", pick(s.rand, propertyTypes), city),
			Description:   fmt.Sprintf("Beautiful property with amazing amenities. Perfect for your next vacation. Property %d offers comfort and style.", i),
			Location:      pick(s.rand, locations),
			PricePerNight: &price,
			MaxGuests:     between(s.rand, 1, maxSampleGuests),
			AvailableFrom: timezone.FormatDay(today),
			AvailableTo:   timezone.FormatDay(today.AddDate(0, 0, availableDays)),
		})
		if err != nil {
			return listings, fmt.Errorf("failed to seed listing %d: %w", i, err)
		}

		listings = append(listings, listing)
	}

	log.Info().Int("count", len(listings)).Msg("Created listings")

	return listings, nil
}

func (s *Seeder) seedBookings(ctx context.Context, users []userDto.UserResponse, listings []listingDto.ListingResponse) ([]bookingDto.BookingResponse, error) {
	bookings := make([]bookingDto.BookingResponse, 0, s.cfg.Seed.Bookings)

	if len(users) < 2 || len(listings) == 0 {
		log.Warn().Msg("Bookings need a listing and at least two users, skipping")

		return bookings, nil
	}

	today := timezone.Now()

	for i := 1; i <= s.cfg.Seed.Bookings; i++ {
		listing := pick(s.rand, listings)

		guests := make([]userDto.UserResponse, 0, len(users)-1)
		for _, user := range users {
			if user.ID != listing.HostID {
				guests = append(guests, user)
			}
		}

		checkIn := today.AddDate(0, 0, between(s.rand, 1, maxLeadDays))
		nights := between(s.rand, 1, maxStayNights)
		total := listing.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

		booking, err := s.bookings.Create(ctx, bookingDto.CreateBookingRequest{
			ListingID:      listing.ID,
			UserID:         pick(s.rand, guests).ID,
			CheckInDate:    timezone.FormatDay(checkIn),
			CheckOutDate:   timezone.FormatDay(checkIn.AddDate(0, 0, nights)),
			NumberOfGuests: between(s.rand, 1, listing.MaxGuests),
			TotalPrice:     &total,
			Status:         pick(s.rand, bookingModel.Statuses),
		})
		if err != nil {
			return bookings, fmt.Errorf("failed to seed booking %d: %w", i, err)
		}

		bookings = append(bookings, booking)
	}

	log.Info().Int("count", len(bookings)).Msg("Created bookings")

	return bookings, nil
}

// seedReviews reviews completed stays, skipping guests who already reviewed
// the same listing.
func (s *Seeder) seedReviews(ctx context.Context, bookings []bookingDto.BookingResponse, listings []listingDto.ListingResponse) (int, error) {
	titles := make(map[string]string, len(listings))
	for _, listing := range listings {
		titles[listing.ID] = listing.Title
	}

	created := 0
	considered := 0

	for _, booking := range bookings {
		if booking.Status != bookingModel.StatusCompleted {
			continue
		}

		if considered == s.cfg.Seed.Reviews {
			break
		}

		considered++

		_, err := s.reviews.Create(ctx, reviewDto.CreateReviewRequest{
			ListingID: booking.ListingID,
			UserID:    booking.UserID,
			Rating:    between(s.rand, minSampleRating, reviewModel.MaxRating),
			Comment:   fmt.Sprintf("Great stay at %s! Would definitely recommend.", titles[booking.ListingID]),
		})
		if failure.IsConflict(err) {
			log.Debug().Str("listing_id", booking.ListingID).Str("user_id", booking.UserID).Msg("Review exists, skipping")

			continue
		}

		if err != nil {
			return created, fmt.Errorf("failed to seed review for booking %s: %w", booking.ID, err)
		}

		created++
	}

	log.Info().Int("count", created).Msg("Created reviews")

	return created, nil
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// between returns a random int in [low, high].
func between(r *rand.Rand, low, high int) int {
	return low + r.IntN(high-low+1)
}
