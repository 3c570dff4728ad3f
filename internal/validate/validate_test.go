package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abcd1234", true},
		{"abcdefgh", false}, // no digit
		{"short1", false},   // too short
		{"12345678", false}, // no letter
		{"", false},
		{"contraseña1", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPassword(tt.password), "password %q", tt.password)
	}
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("María José"))
	assert.True(t, IsValidName("Ana"))
	assert.False(t, IsValidName("Ana123"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("Bob; DROP TABLE"))
}
