package dto

import (
	"stay/internal/domains/review/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ID        string `json:"review_id"  validate:"empty"`
	ListingID string `json:"listing_id" validate:"required,uuid"`
	UserID    string `json:"user_id"    validate:"required,uuid"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	Comment   string `json:"comment"    validate:"required"`
	CreatedAt string `json:"created_at" validate:"empty"`
	UpdatedAt string `json:"updated_at" validate:"empty"`
}

func (r *CreateReviewRequest) ToModel() model.Review {
	now := timezone.Now()

	return model.Review{
		ID:        uuid.NewString(),
		ListingID: r.ListingID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateReviewRequest struct {
	Rating    int    `db:"rating"     json:"rating"  validate:"omitempty,min=1,max=5"`
	Comment   string `db:"comment"    json:"comment"`
	ID        string `json:"review_id"  validate:"empty"`
	ListingID string `json:"listing_id" validate:"empty"`
	UserID    string `json:"user_id"    validate:"empty"`
	CreatedAt string `json:"created_at" validate:"empty"`
	UpdatedAt string `json:"updated_at" validate:"empty"`
}

func (r UpdateReviewRequest) IsEmpty() bool {
	return r == UpdateReviewRequest{}
}

func (r UpdateReviewRequest) ToFields() map[string]any {
	return shared.TransformFields(r)
}

type ReviewResponse struct {
	ID        string `json:"review_id"`
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.UserID = model.UserID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}

type ReviewFilter struct {
	ListingID string
	UserID    string
	Rating    int `validate:"omitempty,min=1,max=5"`
	MinRating int `validate:"omitempty,min=1,max=5"`
}

func (f ReviewFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.And()

	filter.Add(gDto.Filter{Field: model.FieldListingID, Value: f.ListingID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.Add(gDto.Filter{Field: model.FieldUserID, Value: f.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	if f.Rating != 0 {
		filter.Add(gDto.Filter{Field: model.FieldRating, Value: f.Rating, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.MinRating != 0 {
		filter.Add(gDto.Filter{
			ArgName:  "min_rating",
			Field:    model.FieldRating,
			Value:    f.MinRating,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	return filter
}
