package dto

import (
	"fmt"
	"stay/internal/domains/booking/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	ID             string           `json:"booking_id"       validate:"empty"`
	ListingID      string           `json:"listing_id"       validate:"required,uuid"`
	UserID         string           `json:"user_id"          validate:"required,uuid"`
	CheckInDate    string           `json:"check_in_date"    validate:"required,datetime=2006-01-02"`
	CheckOutDate   string           `json:"check_out_date"   validate:"required,datetime=2006-01-02"`
	NumberOfGuests int              `json:"number_of_guests" validate:"required,min=1,integer"`
	TotalPrice     *decimal.Decimal `json:"total_price"      validate:"required,money"`
	Status         string           `json:"status"           validate:"omitempty,oneof=pending confirmed cancelled completed"`
	CreatedAt      string           `json:"created_at"       validate:"empty"`
	UpdatedAt      string           `json:"updated_at"       validate:"empty"`
}

func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	checkIn, err := timezone.ParseDay(c.CheckInDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid check_in_date: %w", err)
	}

	checkOut, err := timezone.ParseDay(c.CheckOutDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid check_out_date: %w", err)
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	now := timezone.Now()

	return model.Booking{
		ID:             uuid.NewString(),
		ListingID:      c.ListingID,
		UserID:         c.UserID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: c.NumberOfGuests,
		TotalPrice:     *c.TotalPrice,
		Status:         status,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

type UpdateBookingRequest struct {
	ListingID      string           `db:"listing_id"       json:"listing_id"       validate:"omitempty,uuid"`
	UserID         string           `db:"user_id"          json:"user_id"          validate:"omitempty,uuid"`
	CheckInDate    string           `db:"check_in_date"    json:"check_in_date"    validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate   string           `db:"check_out_date"   json:"check_out_date"   validate:"omitempty,datetime=2006-01-02"`
	NumberOfGuests int              `db:"number_of_guests" json:"number_of_guests" validate:"omitempty,min=1,integer"`
	TotalPrice     *decimal.Decimal `db:"total_price"      json:"total_price"      validate:"omitempty,money"`
	Status         string           `db:"status"           json:"status"           validate:"omitempty,oneof=pending confirmed cancelled completed"`
	ID             string           `json:"booking_id"       validate:"empty"`
	CreatedAt      string           `json:"created_at"       validate:"empty"`
	UpdatedAt      string           `json:"updated_at"       validate:"empty"`
}

func (r UpdateBookingRequest) IsEmpty() bool {
	return r == UpdateBookingRequest{}
}

func (r UpdateBookingRequest) ToFields() map[string]any {
	return shared.TransformFields(r)
}

type BookingResponse struct {
	ID             string          `json:"booking_id"`
	ListingID      string          `json:"listing_id"`
	UserID         string          `json:"user_id"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	NumberOfGuests int             `json:"number_of_guests"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         string          `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.UserID = model.UserID
	r.CheckInDate = timezone.FormatDay(model.CheckInDate)
	r.CheckOutDate = timezone.FormatDay(model.CheckOutDate)
	r.NumberOfGuests = model.NumberOfGuests
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingFilter follows the booking indexes: listing with a check-in window,
// guest, and status.
type BookingFilter struct {
	ListingID   string
	UserID      string
	Statuses    []string
	CheckInFrom string `validate:"omitempty,datetime=2006-01-02"`
	CheckInTo   string `validate:"omitempty,datetime=2006-01-02"`
}

func (f BookingFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.And()

	filter.Add(gDto.Filter{Field: model.FieldListingID, Value: f.ListingID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.Add(gDto.Filter{Field: model.FieldUserID, Value: f.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.Add(gDto.Filter{Field: model.FieldStatus, Value: f.Statuses, Operator: gDto.FilterOperatorIn, Table: model.TableName})
	filter.Add(gDto.Filter{
		ArgName:  "check_in_from",
		Field:    model.FieldCheckInDate,
		Value:    f.CheckInFrom,
		Operator: gDto.FilterOperatorGreaterEq,
		Table:    model.TableName,
	})
	filter.Add(gDto.Filter{
		ArgName:  "check_in_to",
		Field:    model.FieldCheckInDate,
		Value:    f.CheckInTo,
		Operator: gDto.FilterOperatorLessEq,
		Table:    model.TableName,
	})

	return filter
}
