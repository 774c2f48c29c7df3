package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusActive, NormalizeStatus("active"))
	assert.Equal(t, StatusActive, NormalizeStatus(" Allowed "))
	assert.Equal(t, StatusActive, NormalizeStatus(""))
	assert.Equal(t, StatusActive, NormalizeStatus("whatever"))
	assert.Equal(t, StatusInactive, NormalizeStatus("Inactive"))
	assert.Equal(t, StatusInactive, NormalizeStatus("BANNED"))
}

func TestRecognizedStatus(t *testing.T) {
	for _, s := range []string{"active", "Allowed", "INACTIVE", " banned "} {
		assert.True(t, RecognizedStatus(s), s)
	}
	for _, s := range []string{"", "frozen", "ok"} {
		assert.False(t, RecognizedStatus(s), s)
	}
}
