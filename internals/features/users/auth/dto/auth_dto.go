package dto

import (
	"strings"

	userModel "eventhub_backend/internals/features/users/user/model"
	helper "eventhub_backend/internals/helpers"
)

/* =======================================================
   REGISTER
   ======================================================= */

type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	TermsAccepted   bool   `json:"terms_accepted" validate:"required"`
}

var registerMessages = helper.Messages{
	"full_name": {
		"required": "Full name is required.",
		"max":      "Full name length exceeded.",
	},
	"email": {
		"required": "Email is required.",
		"email":    "Enter a valid email address.",
		"max":      "Email length exceeded.",
	},
	"password": {
		"required": "Password is required.",
	},
	"confirm_password": {
		"required": "Confirm password is required.",
	},
	"terms_accepted": {
		"required": "Please accept the Terms and Conditions.",
	},
}

func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = userModel.NormalizeEmail(r.Email)
}

// Validate aggregates every failing rule. Password complexity runs only once
// the field is present; the confirmation mismatch attaches to
// confirm_password.
func (r *RegisterRequest) Validate() helper.FieldErrors {
	fe := helper.CollectFieldErrors(helper.Validate.Struct(r), registerMessages)

	if r.Password != "" {
		for _, msg := range helper.PasswordRuleViolations(r.Password) {
			fe.Add("password", msg)
		}
		if r.ConfirmPassword != "" && r.Password != r.ConfirmPassword {
			fe.Add("confirm_password", "Passwords do not match.")
		}
	}
	return fe
}

/* =======================================================
   LOGIN
   ======================================================= */

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = helper.Messages{
	"email": {
		"required": "Email is required.",
		"email":    "Enter a valid email address.",
	},
	"password": {
		"required": "Password is required.",
	},
}

func (r *LoginRequest) Normalize() {
	r.Email = userModel.NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() helper.FieldErrors {
	return helper.CollectFieldErrors(helper.Validate.Struct(r), loginMessages)
}

/* =======================================================
   GOOGLE LOGIN
   ======================================================= */

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

/* =======================================================
   CHANGE PASSWORD (security update)
   ======================================================= */

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

var changePasswordMessages = helper.Messages{
	"current_password": {
		"required": "Current password is required.",
	},
	"new_password": {
		"required": "New password is required.",
	},
	"confirm_password": {
		"required": "Confirm password is required.",
	},
}

func (r *ChangePasswordRequest) Validate() helper.FieldErrors {
	fe := helper.CollectFieldErrors(helper.Validate.Struct(r), changePasswordMessages)

	if r.NewPassword != "" {
		for _, msg := range helper.PasswordRuleViolations(r.NewPassword) {
			fe.Add("new_password", msg)
		}
		if r.ConfirmPassword != "" && r.NewPassword != r.ConfirmPassword {
			fe.Add("confirm_password", "Passwords do not match.")
		}
	}
	return fe
}
