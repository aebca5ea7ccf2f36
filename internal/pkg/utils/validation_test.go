package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"international with punctuation", "+263 77 123-4567", "263771234567"},
		{"local with leading zero", "0771234567", "0771234567"},
		{"bare subscriber number", "771234567", "771234567"},
		{"extra leading digits trimmed to twelve", "00263771234567", "263771234567"},
		{"short input left alone", "12345", "12345"},
		{"letters stripped", "tel:263771234567", "263771234567"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanPhoneNumber(tc.phone))
		})
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		cleaned string
		valid   bool
	}{
		{"full international", "263771234567", true},
		{"national with zero", "0771234567", true},
		{"bare subscriber", "771234567", true},
		{"too short", "12345", false},
		{"wrong prefix", "871234567", false},
		{"trailing garbage", "2637712345678901", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := IsValidPhoneNumber(tc.cleaned)
			assert.Equal(t, tc.valid, ok)
			if !tc.valid {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidPin(t *testing.T) {
	assert.True(t, IsValidPin("1234"))
	assert.True(t, IsValidPin("0000"))
	assert.False(t, IsValidPin("123"))
	assert.False(t, IsValidPin("12345"))
	assert.False(t, IsValidPin("12ab"))
	assert.False(t, IsValidPin(""))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t\n"))
	assert.False(t, IsBlank(" x "))
}
