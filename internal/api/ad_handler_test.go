package api_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/phrazzld/ads-api/internal/api"
	"github.com/phrazzld/ads-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAd(t *testing.T, env *testEnv, token, title string) api.AdvertisementResponse {
	t.Helper()

	rr := env.do(t, http.MethodPost, "/api/v1/ads", map[string]string{
		"title":       title,
		"description": "description of " + title,
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[api.AdvertisementResponse](t, rr)
}

func TestCreateAdvertisement(t *testing.T) {
	t.Parallel()

	t.Run("owner is the authenticated user", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		alice, token := env.registerAndLogin(t, "alice")

		rr := env.do(t, http.MethodPost, "/api/v1/ads", map[string]any{
			"title":       "  Bike  ",
			"description": "Red bike",
			"owner":       "mallory",
			"owner_id":    999,
		}, token)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		got := decode[api.AdvertisementResponse](t, rr)
		assert.Positive(t, got.ID)
		assert.Equal(t, "Bike", got.Title)
		assert.Equal(t, "Red bike", got.Description)
		assert.Equal(t, alice.ID, got.OwnerID)
		require.NotNil(t, got.Owner)
		assert.Equal(t, "alice", got.Owner.Username)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rr := env.do(t, http.MethodPost, "/api/v1/ads", map[string]string{
			"title":       "Bike",
			"description": "Red bike",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		page := decode[api.AdvertisementPageResponse](t, env.do(t, http.MethodGet, "/api/v1/ads", nil, ""))
		assert.Zero(t, page.Total)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		_, token := env.registerAndLogin(t, "alice")

		tests := []struct {
			name   string
			body   map[string]string
			fields []string
		}{
			{name: "missing both", body: map[string]string{}, fields: []string{"title", "description"}},
			{name: "blank title", body: map[string]string{"title": "   ", "description": "x"}, fields: []string{"title"}},
			{
				name:   "title too long",
				body:   map[string]string{"title": strings.Repeat("x", 101), "description": "x"},
				fields: []string{"title"},
			},
		}
		for _, tt := range tests {
			rr := env.do(t, http.MethodPost, "/api/v1/ads", tt.body, token)

			require.Equal(t, http.StatusBadRequest, rr.Code, tt.name)
			body := decode[shared.ErrorResponse](t, rr)
			assert.Equal(t, "Validation error", body.Error, tt.name)
			assert.ElementsMatch(t, tt.fields, fieldsOf(body.Details), tt.name)
		}
	})

	t.Run("undecodable body", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		_, token := env.registerAndLogin(t, "alice")

		for _, body := range []string{`{"title":`, `{"title":"a"}{"title":"b"}`, `"just a string"`} {
			rr := env.do(t, http.MethodPost, "/api/v1/ads", body, token)

			require.Equal(t, http.StatusBadRequest, rr.Code, body)
			resp := decode[shared.ErrorResponse](t, rr)
			assert.Equal(t, "Validation error", resp.Error, body)
			assert.NotEmpty(t, resp.Details, body)
		}
		count, err := env.ads.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGetAdvertisement(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "alice")
	created := createAd(t, env, token, "Bike")

	t.Run("found", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/ads/%d", created.ID), nil, "")

		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[api.AdvertisementResponse](t, rr)
		assert.Equal(t, created.ID, got.ID)
		require.NotNil(t, got.Owner)
		assert.Equal(t, "alice@example.com", got.Owner.Email)
	})

	t.Run("not found", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/ads/9999", nil, "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Advertisement not found", decode[shared.ErrorResponse](t, rr).Error)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/ads/abc", nil, "")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"id"}, fieldsOf(decode[shared.ErrorResponse](t, rr).Details))
	})
}

func TestListAdvertisements(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "alice")
	for i := 1; i <= 25; i++ {
		createAd(t, env, token, fmt.Sprintf("ad %d", i))
	}

	t.Run("defaults", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/ads", nil, "")

		require.Equal(t, http.StatusOK, rr.Code)
		page := decode[api.AdvertisementPageResponse](t, rr)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.PerPage)
		assert.Equal(t, 3, page.Pages)
		require.Len(t, page.Items, 10)
		assert.Equal(t, "ad 25", page.Items[0].Title, "newest first")
		require.NotNil(t, page.Items[0].Owner)
		assert.Equal(t, "alice", page.Items[0].Owner.Username)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := decode[api.AdvertisementPageResponse](t,
			env.do(t, http.MethodGet, "/api/v1/ads?page=3&per_page=10", nil, ""))

		assert.Len(t, page.Items, 5)
		assert.Equal(t, "ad 5", page.Items[0].Title)
		assert.Equal(t, "ad 1", page.Items[4].Title)
	})

	t.Run("beyond the last page", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/ads?page=4&per_page=10", nil, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"items":[]`)
		page := decode[api.AdvertisementPageResponse](t, rr)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, 3, page.Pages)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		for _, query := range []string{"per_page=0", "per_page=101", "page=0", "page=abc", "per_page=ten"} {
			rr := env.do(t, http.MethodGet, "/api/v1/ads?"+query, nil, "")

			assert.Equal(t, http.StatusBadRequest, rr.Code, query)
			assert.NotEmpty(t, decode[shared.ErrorResponse](t, rr).Details, query)
		}
	})

	t.Run("page whose offset overflows", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/ads?page=9223372036854775807&per_page=10", nil, "")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decode[shared.ErrorResponse](t, rr)
		assert.Equal(t, "Validation error", resp.Error)
		assert.Equal(t, []string{"page"}, fieldsOf(resp.Details))
	})
}

func TestUpdateAdvertisement(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, aliceToken := env.registerAndLogin(t, "alice")
	_, bobToken := env.registerAndLogin(t, "bob")
	ad := createAd(t, env, aliceToken, "Bike")
	path := fmt.Sprintf("/api/v1/ads/%d", ad.ID)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		for _, method := range []string{http.MethodPatch, http.MethodPut} {
			rr := env.do(t, method, path, map[string]string{"title": "Bike " + method}, aliceToken)

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			got := decode[api.AdvertisementResponse](t, rr)
			assert.Equal(t, "Bike "+method, got.Title)
			assert.Equal(t, ad.Description, got.Description)
			assert.Equal(t, ad.OwnerID, got.OwnerID)
			assert.Equal(t, ad.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("empty body leaves record unchanged", func(t *testing.T) {
		before := decode[api.AdvertisementResponse](t, env.do(t, http.MethodGet, path, nil, ""))

		rr := env.do(t, http.MethodPatch, path, map[string]any{}, aliceToken)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, before, decode[api.AdvertisementResponse](t, rr))
	})

	t.Run("null title is rejected", func(t *testing.T) {
		rr := env.do(t, http.MethodPatch, path, `{"title":null}`, aliceToken)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"title"}, fieldsOf(decode[shared.ErrorResponse](t, rr).Details))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		rr := env.do(t, http.MethodPatch, path, map[string]string{"title": "Stolen"}, bobToken)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		got := decode[api.AdvertisementResponse](t, env.do(t, http.MethodGet, path, nil, ""))
		assert.NotEqual(t, "Stolen", got.Title)
	})

	t.Run("missing advertisement", func(t *testing.T) {
		rr := env.do(t, http.MethodPatch, "/api/v1/ads/9999", map[string]string{"title": "x"}, aliceToken)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		rr := env.do(t, http.MethodPatch, path, map[string]string{"title": "x"}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDeleteAdvertisement(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, aliceToken := env.registerAndLogin(t, "alice")
	_, bobToken := env.registerAndLogin(t, "bob")
	ad := createAd(t, env, aliceToken, "Bike")
	path := fmt.Sprintf("/api/v1/ads/%d", ad.ID)

	rr := env.do(t, http.MethodDelete, path, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, path, nil, "").Code)

	rr = env.do(t, http.MethodDelete, path, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodDelete, path, nil, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, api.AdvertisementDeletedMessage, decode[shared.MessageResponse](t, rr).Message)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, nil, aliceToken).Code)

	_, err := env.ads.GetByID(context.Background(), ad.ID)
	assert.Error(t, err)
}
