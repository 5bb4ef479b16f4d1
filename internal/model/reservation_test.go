package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	// Only pending reservations are cancelable by their owner.
	assert.True(t, CanCancel(StatusPending))
	assert.False(t, CanCancel(StatusInPreparation))
	assert.False(t, CanCancel(StatusFinalized))
	assert.False(t, CanCancel(StatusCanceled))
	assert.False(t, CanCancel(""))
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus("PENDIENTE"))
	assert.False(t, ValidStatus(""))
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("postres"))
	assert.False(t, ValidCategory("Bebidas"))
	assert.False(t, ValidCategory(""))
}
