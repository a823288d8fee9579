package service

import (
	"errors"
	"log"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub_backend/internals/configs"
	"eventhub_backend/internals/features/users/auth/dto"
	userDTO "eventhub_backend/internals/features/users/user/dto"
	userModel "eventhub_backend/internals/features/users/user/model"
	helper "eventhub_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, cfg *configs.Config, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	fieldErrs := req.Validate()

	// friendlier pre-check; the unique index still backs it up at insert time
	if fieldErrs["email"] == nil {
		var count int64
		if err := db.WithContext(c.UserContext()).
			Model(&userModel.UserModel{}).
			Where("email = ?", req.Email).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
		}
		if count > 0 {
			fieldErrs.Add("email", "Email is already registered.")
		}
	}

	if !fieldErrs.Empty() {
		return helper.JsonValidationError(c, fieldErrs)
	}

	user := userModel.UserModel{
		FullName: req.FullName,
		Email:    req.Email,
		Avatar:   cfg.DefaultAvatarURL,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := db.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			fe := helper.FieldErrors{}
			fe.Add("email", "Email is already registered.")
			return helper.JsonValidationError(c, fe)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := GenerateAccessToken(&user, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonCreated(c, "Registration successful", fiber.Map{
		"access_token": token,
		"user":         userDTO.ToUserResponse(&user),
	})
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, cfg *configs.Config, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	if fieldErrs := req.Validate(); !fieldErrs.Empty() {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var user userModel.UserModel
	err := db.WithContext(c.UserContext()).First(&user, "email = ?", req.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.CheckPassword(req.Password)) {
		// one message for both cases, no account probing
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password.")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "This account is inactive.")
	}

	token, err := GenerateAccessToken(&user, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": token,
		"user":         userDTO.ToUserResponse(&user),
	})
}

/* ==========================
   GOOGLE LOGIN
========================== */

func LoginGoogle(db *gorm.DB, cfg *configs.Config, c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil || req.IDToken == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{cfg.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID token")
	}

	email := userModel.NormalizeEmail(claimSet.Email)
	var user userModel.UserModel
	err = db.WithContext(c.UserContext()).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = userModel.UserModel{
			FullName: claimSet.Name,
			Email:    email,
			Avatar:   cfg.DefaultAvatarURL,
			IsActive: true,
		}
		// local password never used for Google accounts; keep the column filled
		if err := user.SetPassword(uuid.NewString() + "!Aa1"); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
		if err := db.WithContext(c.UserContext()).Create(&user).Error; err != nil {
			if !helper.IsUniqueViolation(err) {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
			}
			// raced with a concurrent registration; load the winner
			if err := db.WithContext(c.UserContext()).First(&user, "email = ?", email).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
			}
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	token, err := GenerateAccessToken(&user, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": token,
		"user":         userDTO.ToUserResponse(&user),
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout is bookkeeping only: the token is stateless, so the client drops it.
// The log line keeps session ends visible next to session starts.
func Logout(c *fiber.Ctx) error {
	userID, err := helper.CurrentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	log.Printf("user %s logged out", userID)
	return helper.JsonOK(c, "Logged out", nil)
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.CurrentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	fieldErrs := req.Validate()

	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	// the stored hash is checked before any new password is accepted
	if req.CurrentPassword != "" && !user.CheckPassword(req.CurrentPassword) {
		fieldErrs.Add("current_password", "Current password is incorrect.")
	}

	if !fieldErrs.Empty() {
		return helper.JsonValidationError(c, fieldErrs)
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.WithContext(c.UserContext()).Model(&user).Update("password", user.Password).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	log.Printf("password changed for user %s", user.ID)
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
