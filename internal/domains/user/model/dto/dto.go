package dto

import (
	"stay/internal/domains/user/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	ID          string `json:"id"           validate:"empty"`
	Username    string `json:"username"     validate:"required,max=150"`
	Email       string `json:"email"        validate:"omitempty,email,max=254"`
	FirstName   string `json:"first_name"   validate:"omitempty,max=150"`
	LastName    string `json:"last_name"    validate:"omitempty,max=150"`
	Password    string `json:"password"     validate:"required,min=8"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (r *CreateUserRequest) ToModel(hashedPassword string) model.User {
	now := timezone.Now()

	return model.User{
		ID:          uuid.NewString(),
		Username:    r.Username,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Password:    hashedPassword,
		IsSuperuser: r.IsSuperuser,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsSuperuser bool   `json:"is_superuser"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.IsSuperuser = model.IsSuperuser
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// UserFilter narrows user listings; the seeder uses it to skip superusers.
type UserFilter struct {
	IsSuperuser *bool
}

func (f UserFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.And()

	if f.IsSuperuser != nil {
		filter.Add(gDto.Filter{
			Field:    model.FieldIsSuperuser,
			Value:    *f.IsSuperuser,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}
