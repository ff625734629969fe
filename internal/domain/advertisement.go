package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Advertisement field limits, counted in characters after trimming.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 2000
)

// Advertisement is a classified ad. OwnerID is fixed at creation; Owner is
// populated when the record is read with its owner joined.
type Advertisement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	Owner       *User     `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAdvertisement builds an unsaved Advertisement with trimmed fields.
func NewAdvertisement(ownerID int64, title, description string) (*Advertisement, error) {
	ad := &Advertisement{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}

	if err := ad.Validate(); err != nil {
		return nil, err
	}

	return ad, nil
}

// Validate checks if the Advertisement has valid data.
func (a *Advertisement) Validate() error {
	var errs ValidationErrors

	if err := validateText("title", a.Title, MaxTitleLength); err != nil {
		errs = append(errs, err)
	}
	if err := validateText("description", a.Description, MaxDescriptionLength); err != nil {
		errs = append(errs, err)
	}
	if a.OwnerID <= 0 {
		errs = append(errs, NewValidationError("owner_id", "is required", ErrInvalidID))
	}

	return errs.OrNil()
}

// Apply copies the present fields of u onto a after trimming and
// validating them. a is left untouched when validation fails.
func (a *Advertisement) Apply(u AdvertisementUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if title, ok := u.Title.Get(); ok {
		a.Title = strings.TrimSpace(title)
	}
	if description, ok := u.Description.Get(); ok {
		a.Description = strings.TrimSpace(description)
	}
	return nil
}

// AdvertisementUpdate is a partial update. Fields that are absent are left
// unchanged; explicit nulls are rejected because both columns are NOT NULL.
type AdvertisementUpdate struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u AdvertisementUpdate) IsEmpty() bool {
	return !u.Title.IsSet() && !u.Description.IsSet()
}

// Validate checks every field that is present in the update.
func (u AdvertisementUpdate) Validate() error {
	var errs ValidationErrors

	if err := validateOptionalText("title", u.Title, MaxTitleLength); err != nil {
		errs = append(errs, err)
	}
	if err := validateOptionalText("description", u.Description, MaxDescriptionLength); err != nil {
		errs = append(errs, err)
	}

	return errs.OrNil()
}

func validateOptionalText(field string, value Optional[string], maxLen int) *ValidationError {
	if !value.IsSet() {
		return nil
	}
	if value.IsNull() {
		return NewValidationError(field, "cannot be null", nil)
	}
	v, _ := value.Get()
	return validateText(field, strings.TrimSpace(v), maxLen)
}

func validateText(field, value string, maxLen int) *ValidationError {
	if value == "" {
		return NewValidationError(field, "cannot be empty", nil)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return NewValidationError(field, "is too long", nil)
	}
	return nil
}
