package dto

import (
	"strings"
	"time"

	userModel "eventhub_backend/internals/features/users/user/model"
	helper "eventhub_backend/internals/helpers"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

var updateProfileMessages = helper.Messages{
	"full_name": {
		"required": "Full name is required.",
		"max":      "Full name length exceeded.",
	},
	"email": {
		"required": "Email is required.",
		"email":    "Enter a valid email address.",
		"max":      "Email length exceeded.",
	},
	"location": {
		"max": "Location length exceeded.",
	},
}

func (r *UpdateProfileRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = userModel.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Location = strings.TrimSpace(r.Location)
}

// Validate covers the syntactic field rules. Phone is normalized in place;
// the geocode lookup for Location happens at the controller, where the
// adapter lives.
func (r *UpdateProfileRequest) Validate() helper.FieldErrors {
	fe := helper.CollectFieldErrors(helper.Validate.Struct(r), updateProfileMessages)

	if r.Phone != "" {
		normalized, err := helper.NormalizePhone(r.Phone)
		if err != nil {
			fe.Add("phone", err.Error())
		} else {
			r.Phone = normalized
		}
	}
	return fe
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Avatar    string    `json:"avatar"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Location:  u.Location,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}
