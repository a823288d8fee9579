package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileRequestValidate(t *testing.T) {
	t.Run("phone is normalized in place", func(t *testing.T) {
		r := UpdateProfileRequest{
			FullName: "Jamie Rivera",
			Email:    "jamie@example.com",
			Phone:    "+1 (555) 123-4567",
		}
		r.Normalize()
		require.True(t, r.Validate().Empty())
		assert.Equal(t, "+15551234567", r.Phone)
	})

	t.Run("phone without plus fails", func(t *testing.T) {
		r := UpdateProfileRequest{
			FullName: "Jamie Rivera",
			Email:    "jamie@example.com",
			Phone:    "5551234",
		}
		fe := r.Validate()
		assert.Equal(t, []string{"Phone number must start with +."}, fe["phone"])
	})

	t.Run("phone is optional", func(t *testing.T) {
		r := UpdateProfileRequest{FullName: "Jamie Rivera", Email: "jamie@example.com"}
		assert.True(t, r.Validate().Empty())
	})

	t.Run("missing required fields are reported together", func(t *testing.T) {
		r := UpdateProfileRequest{}
		fe := r.Validate()
		assert.Equal(t, []string{"Full name is required."}, fe["full_name"])
		assert.Equal(t, []string{"Email is required."}, fe["email"])
	})
}
