package model

import (
	"fmt"
	"stay/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID            = "listing_id"
	FieldHostID        = "host_id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldPricePerNight = "price_per_night"
	FieldMaxGuests     = "max_guests"
	FieldAvailableFrom = "available_from"
	FieldAvailableTo   = "available_to"
)

// Listing is a property offered by a host. Nothing orders AvailableFrom
// against AvailableTo.
type Listing struct {
	ID            string          `db:"listing_id"`
	HostID        string          `db:"host_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	Location      string          `db:"location"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	MaxGuests     int             `db:"max_guests"`
	AvailableFrom time.Time       `db:"available_from"`
	AvailableTo   time.Time       `db:"available_to"`
	model.Metadata
}

func (l Listing) String() string {
	return fmt.Sprintf("%s - %s", l.Title, l.Location)
}
