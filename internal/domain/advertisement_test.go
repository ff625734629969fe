package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvertisement(t *testing.T) {
	t.Parallel()

	ad, err := NewAdvertisement(7, "  Bike  ", "\tRed, barely used\n")

	require.NoError(t, err)
	assert.Equal(t, "Bike", ad.Title)
	assert.Equal(t, "Red, barely used", ad.Description)
	assert.Equal(t, int64(7), ad.OwnerID)
}

func TestNewAdvertisement_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ownerID     int64
		title       string
		description string
		field       string
	}{
		{"blank title", 1, "   ", "desc", "title"},
		{"long title", 1, strings.Repeat("t", MaxTitleLength+1), "desc", "title"},
		{"empty description", 1, "Bike", "", "description"},
		{"long description", 1, "Bike", strings.Repeat("d", MaxDescriptionLength+1), "description"},
		{"missing owner", 0, "Bike", "desc", "owner_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ad, err := NewAdvertisement(tt.ownerID, tt.title, tt.description)

			assert.Nil(t, ad)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestTitleLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	// 100 multi-byte runes is still within the limit.
	_, err := NewAdvertisement(1, strings.Repeat("é", MaxTitleLength), "desc")
	assert.NoError(t, err)
}

func TestAdvertisementUpdate_FromJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   string
		empty     bool
		wantErr   bool
		wantTitle string
		wantDesc  string
	}{
		{name: "empty object", payload: `{}`, empty: true, wantTitle: "Bike", wantDesc: "Red"},
		{name: "title only", payload: `{"title":" Car "}`, wantTitle: "Car", wantDesc: "Red"},
		{name: "both", payload: `{"title":"Car","description":"Blue"}`, wantTitle: "Car", wantDesc: "Blue"},
		{name: "null title", payload: `{"title":null}`, wantErr: true},
		{name: "blank description", payload: `{"description":"  "}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var upd AdvertisementUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &upd))
			assert.Equal(t, tt.empty, upd.IsEmpty())

			ad := &Advertisement{ID: 1, Title: "Bike", Description: "Red", OwnerID: 1}
			err := ad.Apply(upd)

			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
				assert.Equal(t, "Bike", ad.Title, "failed update must not modify the record")
				assert.Equal(t, "Red", ad.Description)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, ad.Title)
			assert.Equal(t, tt.wantDesc, ad.Description)
			assert.Equal(t, int64(1), ad.OwnerID)
		})
	}
}
