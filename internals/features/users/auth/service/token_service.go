package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	userModel "eventhub_backend/internals/features/users/user/model"
)

// GenerateAccessToken signs the session JWT. Claims stay minimal: subject,
// email and the staff flag.
func GenerateAccessToken(user *userModel.UserModel, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
