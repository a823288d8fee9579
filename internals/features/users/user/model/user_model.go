package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserModel is the profile row. Email is the login identifier and is unique
// at the database level; the pre-insert check in the services is only a
// friendlier first line.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     *string   `gorm:"size:16" json:"phone,omitempty"`
	Location  *string   `gorm:"size:255" json:"location,omitempty"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetPassword stores the bcrypt hash; the plain text never reaches a row.
func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// ShortName is the first name (before a space), or the full name when there
// is none.
func (u *UserModel) ShortName() string {
	if i := strings.IndexByte(u.FullName, ' '); i > 0 {
		return u.FullName[:i]
	}
	return u.FullName
}

// NormalizeEmail lower-cases and trims; uniqueness checks and lookups always
// go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
