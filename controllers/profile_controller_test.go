package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siay72/SnapBook/models"
)

type profileData struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phone_number"`
}

func TestGetProfile(t *testing.T) {
	r, db := setupRouter(t)
	alice := createUser(t, db, "alice@example.com", false)
	createUser(t, db, "bob@example.com", false)

	t.Run("requires authentication", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns the caller's own profile", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/profile", accessToken(t, alice), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data profileData
		decodeData(t, w, &data)
		assert.Equal(t, alice.ID, data.ID)
		assert.Equal(t, "alice@example.com", data.Email)
	})
}

func TestUpdateProfile(t *testing.T) {
	r, db := setupRouter(t)
	alice := createUser(t, db, "alice@example.com", false)
	token := accessToken(t, alice)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/v1/profile", token, map[string]string{
			"first_name": "Alice",
			"last_name":  "Ahmed",
			"location":   "Dhaka",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, r, http.MethodPatch, "/api/v1/profile", token, map[string]string{
			"phone_number": "01700000000",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var data profileData
		decodeData(t, w, &data)
		assert.Equal(t, "Alice", data.FirstName)
		assert.Equal(t, "Dhaka", data.Location)
		assert.Equal(t, "01700000000", data.PhoneNumber)
	})

	t.Run("email is read-only", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/v1/profile", token, map[string]string{
			"email": "evil@example.com",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var data profileData
		decodeData(t, w, &data)
		assert.Equal(t, "alice@example.com", data.Email)

		var user models.User
		require.NoError(t, db.First(&user, alice.ID).Error)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("unknown location rejected", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/v1/profile", token, map[string]string{
			"location": "Atlantis",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var user models.User
		require.NoError(t, db.First(&user, alice.ID).Error)
		assert.Equal(t, "Dhaka", user.Location)
	})

	t.Run("location can be cleared", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPatch, "/api/v1/profile", token, map[string]string{
			"location": "",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var data profileData
		decodeData(t, w, &data)
		assert.Equal(t, "", data.Location)
	})
}

func TestProfileDisabledVerbs(t *testing.T) {
	r, db := setupRouter(t)
	alice := createUser(t, db, "alice@example.com", false)
	admin := createUser(t, db, "admin@example.com", true)

	for _, tc := range []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{"create as user", http.MethodPost, "/api/v1/profile", accessToken(t, alice)},
		{"delete as user", http.MethodDelete, "/api/v1/profile/1", accessToken(t, alice)},
		{"create as admin", http.MethodPost, "/api/v1/profile", accessToken(t, admin)},
		{"delete as admin", http.MethodDelete, "/api/v1/profile/1", accessToken(t, admin)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, tc.method, tc.path, tc.token, map[string]string{"email": "x@example.com"})
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}
