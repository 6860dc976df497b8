package model

import (
	"fmt"
	userModel "stay/internal/domains/user/model"
	"stay/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "booking_id"
	FieldListingID      = "listing_id"
	FieldUserID         = "user_id"
	FieldCheckInDate    = "check_in_date"
	FieldCheckOutDate   = "check_out_date"
	FieldNumberOfGuests = "number_of_guests"
	FieldTotalPrice     = "total_price"
	FieldStatus         = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Statuses is the closed set a booking may hold. Any value may follow any other.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

type Booking struct {
	ID             string          `db:"booking_id"`
	ListingID      string          `db:"listing_id"`
	UserID         string          `db:"user_id"`
	CheckInDate    time.Time       `db:"check_in_date"`
	CheckOutDate   time.Time       `db:"check_out_date"`
	NumberOfGuests int             `db:"number_of_guests"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	Status         string          `db:"status"`
	model.Metadata
}

// BookingDetail is a booking read together with its guest's username.
type BookingDetail struct {
	Booking
	Username string `db:"username" table:"users"`
}

func (BookingDetail) GetJoinQuery() string {
	return fmt.Sprintf("INNER JOIN %s ON %s.%s = %s.%s",
		userModel.TableName, userModel.TableName, userModel.FieldID, TableName, FieldUserID)
}

func (b BookingDetail) String() string {
	return fmt.Sprintf("Booking %s by %s", b.ID, b.Username)
}
