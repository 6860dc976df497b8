package dto

import (
	"fmt"
	"stay/internal/domains/listing/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	ID            string           `json:"listing_id"      validate:"empty"`
	HostID        string           `json:"host_id"         validate:"required,uuid"`
	Title         string           `json:"title"           validate:"required,max=255"`
	Description   string           `json:"description"     validate:"required"`
	Location      string           `json:"location"        validate:"required,max=255"`
	PricePerNight *decimal.Decimal `json:"price_per_night" validate:"required,money"`
	MaxGuests     int              `json:"max_guests"      validate:"required,min=1,integer"`
	AvailableFrom string           `json:"available_from"  validate:"required,datetime=2006-01-02"`
	AvailableTo   string           `json:"available_to"    validate:"required,datetime=2006-01-02"`
	CreatedAt     string           `json:"created_at"      validate:"empty"`
	UpdatedAt     string           `json:"updated_at"      validate:"empty"`
}

func (r *CreateListingRequest) ToModel() (model.Listing, error) {
	availableFrom, err := timezone.ParseDay(r.AvailableFrom)
	if err != nil {
		return model.Listing{}, fmt.Errorf("invalid available_from: %w", err)
	}

	availableTo, err := timezone.ParseDay(r.AvailableTo)
	if err != nil {
		return model.Listing{}, fmt.Errorf("invalid available_to: %w", err)
	}

	now := timezone.Now()

	return model.Listing{
		ID:            uuid.NewString(),
		HostID:        r.HostID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		PricePerNight: *r.PricePerNight,
		MaxGuests:     r.MaxGuests,
		AvailableFrom: availableFrom,
		AvailableTo:   availableTo,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// UpdateListingRequest rewrites only the fields that are set.
type UpdateListingRequest struct {
	HostID        string           `db:"host_id"         json:"host_id"         validate:"omitempty,uuid"`
	Title         string           `db:"title"           json:"title"           validate:"omitempty,max=255"`
	Description   string           `db:"description"     json:"description"`
	Location      string           `db:"location"        json:"location"        validate:"omitempty,max=255"`
	PricePerNight *decimal.Decimal `db:"price_per_night" json:"price_per_night" validate:"omitempty,money"`
	MaxGuests     int              `db:"max_guests"      json:"max_guests"      validate:"omitempty,min=1,integer"`
	AvailableFrom string           `db:"available_from"  json:"available_from"  validate:"omitempty,datetime=2006-01-02"`
	AvailableTo   string           `db:"available_to"    json:"available_to"    validate:"omitempty,datetime=2006-01-02"`
	ID            string           `json:"listing_id"      validate:"empty"`
	CreatedAt     string           `json:"created_at"      validate:"empty"`
	UpdatedAt     string           `json:"updated_at"      validate:"empty"`
}

func (r UpdateListingRequest) IsEmpty() bool {
	return r == UpdateListingRequest{}
}

func (r UpdateListingRequest) ToFields() map[string]any {
	return shared.TransformFields(r)
}

type ListingResponse struct {
	ID            string          `json:"listing_id"`
	HostID        string          `json:"host_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	MaxGuests     int             `json:"max_guests"`
	AvailableFrom string          `json:"available_from"`
	AvailableTo   string          `json:"available_to"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(model model.Listing) {
	r.ID = model.ID
	r.HostID = model.HostID
	r.Title = model.Title
	r.Description = model.Description
	r.Location = model.Location
	r.PricePerNight = model.PricePerNight
	r.MaxGuests = model.MaxGuests
	r.AvailableFrom = timezone.FormatDay(model.AvailableFrom)
	r.AvailableTo = timezone.FormatDay(model.AvailableTo)
	r.Metadata.FromModel(model.Metadata)
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetListingsResponse) FromModels(models []model.Listing, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}

// ListingFilter covers the indexed lookups: host, location and nightly price.
type ListingFilter struct {
	HostID           string
	Location         string
	LocationContains string
	MinPrice         *decimal.Decimal
	MaxPrice         *decimal.Decimal
}

func (f ListingFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.And()

	filter.Add(gDto.Filter{Field: model.FieldHostID, Value: f.HostID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.Add(gDto.Filter{Field: model.FieldLocation, Value: f.Location, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.Add(gDto.Filter{
		ArgName:  "location_contains",
		Field:    model.FieldLocation,
		Value:    f.LocationContains,
		Operator: gDto.FilterOperatorLike,
		Table:    model.TableName,
	})

	if f.MinPrice != nil {
		filter.Add(gDto.Filter{
			ArgName:  "min_price",
			Field:    model.FieldPricePerNight,
			Value:    *f.MinPrice,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.MaxPrice != nil {
		filter.Add(gDto.Filter{
			ArgName:  "max_price",
			Field:    model.FieldPricePerNight,
			Value:    *f.MaxPrice,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return filter
}
