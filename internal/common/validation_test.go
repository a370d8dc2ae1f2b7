package common

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     *float64
		lng     *float64
		wantErr bool
	}{
		{"valid", ptr(51.5), ptr(-0.12), false},
		{"edges", ptr(-90), ptr(180), false},
		{"missing lat", nil, ptr(1), true},
		{"missing lng", ptr(1), nil, true},
		{"lat out of range", ptr(91), ptr(0), true},
		{"lng out of range", ptr(0), ptr(-181), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAttachmentURL(t *testing.T) {
	assert.NoError(t, ValidateAttachmentURL("https://cdn.example/a.png"))
	assert.NoError(t, ValidateAttachmentURL("/uploads/a.png"))
	assert.ErrorIs(t, ValidateAttachmentURL("  "), ErrValidation)
	assert.ErrorIs(t, ValidateAttachmentURL("javascript:alert(1)"), ErrValidation)
	assert.ErrorIs(t, ValidateAttachmentURL("http://[::1"), ErrValidation)
}

func TestValidateReactionKind(t *testing.T) {
	assert.NoError(t, ValidateReactionKind("❤️"))
	assert.NoError(t, ValidateReactionKind("thumbs_up"))
	assert.ErrorIs(t, ValidateReactionKind(""), ErrValidation)
	assert.ErrorIs(t, ValidateReactionKind(strings.Repeat("x", MaxReactionKindBytes+1)), ErrValidation)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(NotFoundf("room %d", 1)))
	assert.True(t, IsClientError(Invalidf("bad")))
	assert.True(t, IsClientError(ErrForbidden))
	assert.False(t, IsClientError(StoreError("insert", errors.New("boom"))))
	assert.False(t, IsClientError(errors.New("other")))
}
