package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{"Valid Grameenphone", "01712345678", nil},
		{"Valid Robi", "01812345678", nil},
		{"Valid Banglalink", "01912345678", nil},
		{"Valid Teletalk", "01512345678", nil},
		{"Valid With Spaces", "017 1234 5678", nil},
		{"Valid With Dashes", "017-1234-5678", nil},
		{"Empty", "", ErrEmptyPhone},
		{"Too Short", "0171234567", ErrInvalidLength},
		{"Too Long", "017123456789", ErrInvalidLength},
		{"Letters", "01712345abc", ErrInvalidFormat},
		{"Wrong Prefix", "02112345678", ErrInvalidPrefix},
		{"Missing Leading Zero", "17123456789", ErrInvalidPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("01712345678"))
	assert.False(t, IsValidPhone("not-a-phone"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "01712345678", NormalizePhone("017-1234 5678"))
}
