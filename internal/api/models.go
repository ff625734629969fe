package api

import (
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
// Field rules beyond presence are enforced by the domain.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateAdvertisementRequest defines the payload for creating an advertisement.
// The owner is always the authenticated user; an "owner" field is ignored.
type CreateAdvertisementRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateAdvertisementRequest defines the payload for updating an advertisement.
// Absent fields are left unchanged; explicit nulls are rejected.
type UpdateAdvertisementRequest struct {
	Title       domain.Optional[string] `json:"title"`
	Description domain.Optional[string] `json:"description"`
}

// Validate lets shared.ValidateRequest delegate to the domain rules.
func (r UpdateAdvertisementRequest) Validate() error {
	return r.toDomain().Validate()
}

func (r UpdateAdvertisementRequest) toDomain() domain.AdvertisementUpdate {
	return domain.AdvertisementUpdate{Title: r.Title, Description: r.Description}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AdvertisementResponse is the public view of an advertisement with its owner.
type AdvertisementResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	OwnerID     int64         `json:"owner_id"`
	Owner       *UserResponse `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// AdvertisementPageResponse is one page of advertisements.
type AdvertisementPageResponse struct {
	Items   []AdvertisementResponse `json:"items"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
	Pages   int                     `json:"pages"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`

	UserID int64 `json:"user_id"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func advertisementToResponse(ad *domain.Advertisement) AdvertisementResponse {
	resp := AdvertisementResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		OwnerID:     ad.OwnerID,
		CreatedAt:   ad.CreatedAt.UTC(),
	}
	if ad.Owner != nil {
		owner := userToResponse(ad.Owner)
		resp.Owner = &owner
	}
	return resp
}

func pageToResponse(p domain.Page[*domain.Advertisement]) AdvertisementPageResponse {
	items := make([]AdvertisementResponse, 0, len(p.Items))
	for _, ad := range p.Items {
		items = append(items, advertisementToResponse(ad))
	}
	return AdvertisementPageResponse{
		Items:   items,
		Total:   p.Total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   p.Pages,
	}
}

func loginToResponse(res *service.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: res.Token,
		TokenType:   res.TokenType,
		ExpiresAt:   res.ExpiresAt.UTC().Format(time.RFC3339),
		UserID:      res.User.ID,
	}
}
