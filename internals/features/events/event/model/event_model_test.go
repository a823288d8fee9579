package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("knitting"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Music")) // choices are case sensitive
}

func TestValidSeatingType(t *testing.T) {
	assert.True(t, ValidSeatingType(SeatingGeneral))
	assert.True(t, ValidSeatingType(SeatingReserved))
	assert.False(t, ValidSeatingType("standing"))
	assert.False(t, ValidSeatingType(""))
}
