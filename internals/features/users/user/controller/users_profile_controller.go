package controller

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/configs"
	"eventhub_backend/internals/features/users/user/dto"
	userModel "eventhub_backend/internals/features/users/user/model"
	helper "eventhub_backend/internals/helpers"
	"eventhub_backend/internals/helpers/geocode"
	"eventhub_backend/internals/helpers/imagestore"
)

const (
	maxAvatarBytes      = 5 * 1024 * 1024
	avatarUploadTimeout = time.Minute
)

// locationNormalizer is the slice of the geocode client the controller needs.
type locationNormalizer interface {
	Normalize(ctx context.Context, query string) (string, error)
}

type ProfileController struct {
	DB       *gorm.DB
	Geocoder locationNormalizer
	Store    imagestore.Store
	Cfg      *configs.Config
}

func NewProfileController(db *gorm.DB, geocoder locationNormalizer, store imagestore.Store, cfg *configs.Config) *ProfileController {
	return &ProfileController{DB: db, Geocoder: geocoder, Store: store, Cfg: cfg}
}

func (pc *ProfileController) currentUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	userID, err := helper.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	var user userModel.UserModel
	if err := pc.DB.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return &user, nil
}

// Me returns the authenticated profile.
func (pc *ProfileController) Me(c *fiber.Ctx) error {
	user, err := pc.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profile fetched", dto.ToUserResponse(user))
}

// UpdateProfile overwrites full_name, email, phone and location. The email
// uniqueness check excludes the caller's own row, so re-submitting the
// current email succeeds.
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	user, err := pc.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	fieldErrs := req.Validate()

	if req.Location != "" && fieldErrs["location"] == nil {
		normalized, err := pc.Geocoder.Normalize(c.UserContext(), req.Location)
		switch {
		case errors.Is(err, geocode.ErrNotFound):
			fieldErrs.Add("location", "Location not found. Please enter a valid place.")
		case err != nil:
			log.Printf("geocode error: %v", err)
			fieldErrs.Add("location", "Failed to validate location. Try again later.")
		default:
			req.Location = normalized
		}
	}

	if fieldErrs["email"] == nil {
		var count int64
		if err := pc.DB.WithContext(c.UserContext()).
			Model(&userModel.UserModel{}).
			Where("email = ? AND id <> ?", req.Email, user.ID).
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

	user.FullName = req.FullName
	user.Email = req.Email
	user.Phone = optional(req.Phone)
	user.Location = optional(req.Location)

	if err := pc.DB.WithContext(c.UserContext()).Save(user).Error; err != nil {
		// the unique index is the authoritative check; the pre-check above races
		if helper.IsUniqueViolation(err) {
			fieldErrs.Add("email", "Email is already registered.")
			return helper.JsonValidationError(c, fieldErrs)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return helper.JsonUpdated(c, "Profile updated", dto.ToUserResponse(user))
}

// UpdateAvatar runs the uploaded file through the image pipeline (format and
// size gates, center square crop, staging, upload) and persists the new URL
// before the previous remote asset is removed. A failed upload therefore
// leaves the old avatar authoritative.
func (pc *ProfileController) UpdateAvatar(c *fiber.Ctx) error {
	user, err := pc.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		fe := helper.FieldErrors{}
		fe.Add("avatar", "Avatar image is required.")
		return helper.JsonValidationError(c, fe)
	}

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded file")
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded file")
	}

	// the upload does not fit in the request-level 5s bound
	ctx, cancel := context.WithTimeout(context.Background(), avatarUploadTimeout)
	defer cancel()

	uploaded, err := imagestore.Process(ctx, pc.Store, fh.Filename, data, imagestore.ProcessOptions{
		MaxBytes:   maxAvatarBytes,
		Square:     true,
		SquareSize: 512,
	})
	if err != nil {
		var reject *imagestore.RejectError
		if errors.As(err, &reject) {
			fe := helper.FieldErrors{}
			fe.Add("avatar", reject.Error())
			return helper.JsonValidationError(c, fe)
		}
		log.Printf("avatar upload error: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Something went wrong. Try again later.")
	}

	oldURL := user.Avatar
	user.Avatar = uploaded.URL
	if err := pc.DB.WithContext(c.UserContext()).Model(user).Update("avatar", uploaded.URL).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save avatar")
	}

	pc.removeRemote(oldURL)

	return helper.JsonUpdated(c, "Avatar updated", dto.ToUserResponse(user))
}

// ResetAvatar puts the default avatar back and removes the custom asset.
func (pc *ProfileController) ResetAvatar(c *fiber.Ctx) error {
	user, err := pc.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	oldURL := user.Avatar
	user.Avatar = pc.Cfg.DefaultAvatarURL
	if err := pc.DB.WithContext(c.UserContext()).Model(user).Update("avatar", user.Avatar).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reset avatar")
	}

	pc.removeRemote(oldURL)

	return helper.JsonUpdated(c, "Avatar reset", dto.ToUserResponse(user))
}

// removeRemote is best-effort cleanup of a replaced asset; the default
// avatar is shared and never removed.
func (pc *ProfileController) removeRemote(fileURL string) {
	if fileURL == "" || fileURL == pc.Cfg.DefaultAvatarURL {
		return
	}
	if err := pc.Store.Delete(context.Background(), fileURL); err != nil {
		log.Printf("delete old avatar %s: %v", fileURL, err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
