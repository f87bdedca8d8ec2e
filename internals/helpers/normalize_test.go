package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full-width digits with full-width hyphen", "０９０ー１２３４ー５６７８", "09012345678"},
		{"half-width with ascii hyphens", "090-1234-5678", "09012345678"},
		{"parentheses and spaces", "（03） 1234 5678", "0312345678"},
		{"already normalized", "09012345678", "09012345678"},
		{"mixed widths", "０90-１２34-5678", "09012345678"},
		{"non-digit leftovers kept", "090-abcd-5678", "090abcd5678"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("09012345678"))
	assert.True(t, IsValidPhone("0312345678"))              // 10 digits
	assert.True(t, IsValidPhone("081901234567890"))         // 15 digits
	assert.False(t, IsValidPhone("031234567"))              // 9 digits
	assert.False(t, IsValidPhone("0819012345678901"))       // 16 digits
	assert.False(t, IsValidPhone("090abcd5678"))            // letters survive normalization
	assert.False(t, IsValidPhone(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("taro@example.com"))
	assert.True(t, IsValidEmail("  padded@example.co.jp  "))
	assert.True(t, IsValidEmail("a+b@sub.domain.org"))
	assert.False(t, IsValidEmail("no-at-sign.example.com"))
	assert.False(t, IsValidEmail("two words@example.com"))
	assert.False(t, IsValidEmail("nodot@example"))
	assert.False(t, IsValidEmail(""))
}

func TestClampAge(t *testing.T) {
	assert.Equal(t, 0, ClampAge(-5))
	assert.Equal(t, 0, ClampAge(0))
	assert.Equal(t, 42, ClampAge(42))
	assert.Equal(t, 99, ClampAge(99))
	assert.Equal(t, 99, ClampAge(150))
}
