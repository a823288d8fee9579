package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		FullName:        "Jamie Rivera",
		Email:           "jamie@example.com",
		Password:        "Str0ng&Pass",
		ConfirmPassword: "Str0ng&Pass",
		TermsAccepted:   true,
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("valid request has no field errors", func(t *testing.T) {
		r := validRegister()
		r.Normalize()
		assert.True(t, r.Validate().Empty())
	})

	t.Run("every failing password rule is reported", func(t *testing.T) {
		r := validRegister()
		r.Password = "weak"
		r.ConfirmPassword = "weak"

		fe := r.Validate()
		require.Contains(t, fe, "password")
		assert.Len(t, fe["password"], 4) // short, no upper, no digit, no special
	})

	t.Run("mismatch attaches to confirm_password", func(t *testing.T) {
		r := validRegister()
		r.ConfirmPassword = "Str0ng&Other"

		fe := r.Validate()
		assert.Equal(t, []string{"Passwords do not match."}, fe["confirm_password"])
		assert.NotContains(t, fe, "password")
	})

	t.Run("complexity is skipped while password is missing", func(t *testing.T) {
		r := validRegister()
		r.Password = ""
		r.ConfirmPassword = ""

		fe := r.Validate()
		assert.Equal(t, []string{"Password is required."}, fe["password"])
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		r := validRegister()
		r.TermsAccepted = false

		fe := r.Validate()
		assert.Equal(t, []string{"Please accept the Terms and Conditions."}, fe["terms_accepted"])
	})

	t.Run("full name has a hard cap", func(t *testing.T) {
		r := validRegister()
		r.FullName = strings.Repeat("a", 101)

		fe := r.Validate()
		assert.Equal(t, []string{"Full name length exceeded."}, fe["full_name"])
	})

	t.Run("normalize lowercases and trims the email", func(t *testing.T) {
		r := validRegister()
		r.Email = "  Jamie@Example.COM "
		r.Normalize()
		assert.Equal(t, "jamie@example.com", r.Email)
	})
}

func TestLoginRequestValidate(t *testing.T) {
	t.Run("email and password are both required", func(t *testing.T) {
		r := LoginRequest{}
		fe := r.Validate()
		assert.Equal(t, []string{"Email is required."}, fe["email"])
		assert.Equal(t, []string{"Password is required."}, fe["password"])
	})

	t.Run("malformed email", func(t *testing.T) {
		r := LoginRequest{Email: "not-an-email", Password: "x"}
		fe := r.Validate()
		assert.Equal(t, []string{"Enter a valid email address."}, fe["email"])
	})
}

func TestChangePasswordRequestValidate(t *testing.T) {
	t.Run("new password runs the full complexity check", func(t *testing.T) {
		r := ChangePasswordRequest{
			CurrentPassword: "Old&Pass1",
			NewPassword:     "alllowercase",
			ConfirmPassword: "alllowercase",
		}
		fe := r.Validate()
		require.Contains(t, fe, "new_password")
		assert.Len(t, fe["new_password"], 3) // no upper, no digit, no special
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		r := ChangePasswordRequest{
			CurrentPassword: "Old&Pass1",
			NewPassword:     "New&Pass1",
			ConfirmPassword: "New&Pass2",
		}
		fe := r.Validate()
		assert.Equal(t, []string{"Passwords do not match."}, fe["confirm_password"])
	})
}
