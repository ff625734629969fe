package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// User field limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 255
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	validate        = validator.New()
)

// User represents a registered account. Users are created once at
// registration and never mutated afterwards.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser builds an unsaved User from registration input. The hash must
// already be computed; the plaintext password never reaches this type.
func NewUser(username, email, hashedPassword string) (*User, error) {
	user := &User{
		Username:       strings.TrimSpace(username),
		Email:          strings.TrimSpace(email),
		HashedPassword: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	var errs ValidationErrors

	if err := ValidateUsername(u.Username); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateEmail(u.Email); err != nil {
		errs = append(errs, err)
	}
	if u.HashedPassword == "" {
		errs = append(errs, NewValidationError("password", "hash cannot be empty", nil))
	}

	return errs.OrNil()
}

// ValidateUsername enforces 3–50 characters of letters, digits or underscore.
func ValidateUsername(username string) *ValidationError {
	switch {
	case username == "":
		return NewValidationError("username", "is required", nil)
	case len(username) < MinUsernameLength:
		return NewValidationError("username", "is too short", nil)
	case len(username) > MaxUsernameLength:
		return NewValidationError("username", "is too long", nil)
	case !usernamePattern.MatchString(username):
		return NewValidationError("username", "may contain only letters, digits and underscores", nil)
	}
	return nil
}

// ValidateEmail checks the address format and length.
func ValidateEmail(email string) *ValidationError {
	if email == "" {
		return NewValidationError("email", "is required", nil)
	}
	if len(email) > MaxEmailLength {
		return NewValidationError("email", "is too long", nil)
	}
	if err := validate.Var(email, "email"); err != nil {
		return NewValidationError("email", "has invalid format", nil)
	}
	return nil
}

// ValidatePassword checks the plaintext length before hashing.
func ValidatePassword(password string) *ValidationError {
	switch {
	case password == "":
		return NewValidationError("password", "is required", nil)
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "is too short", nil)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "is too long", nil)
	}
	return nil
}
