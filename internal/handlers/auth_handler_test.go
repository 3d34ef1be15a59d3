package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateport/store-ratings/internal/models"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Jonathan Alexander Smith",
		"email":    "a@x.com",
		"password": "Passw0rd!",
		"address":  "123 Main St",
	})
	mustStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotZero(t, body["userId"])

	// Same credentials authenticate; the plaintext never round-trips.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "Passw0rd!",
	})
	mustStatus(t, w, http.StatusOK)
	assert.NotContains(t, w.Body.String(), "Passw0rd!")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")

	body = decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "123 Main St", user["address"])
}

func TestLoginFailuresAreUniform(t *testing.T) {
	r, db, _ := newTestServer(t)
	createUser(t, db, "Jonathan Alexander Smith", "a@x.com", "Passw0rd!", models.RoleUser)

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "Wrong0rd!",
	})
	mustStatus(t, wrongPassword, http.StatusBadRequest)

	unknownEmail := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@x.com",
		"password": "Passw0rd!",
	})
	mustStatus(t, unknownEmail, http.StatusBadRequest)

	// No account enumeration via differing messages.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Invalid credentials", decodeBody(t, wrongPassword)["message"])
}

func TestRegisterValidation(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Too Short",
		"email":    "a@x.com",
		"password": "Passw0rd!",
	})
	mustStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "name", first["path"])
	assert.Equal(t, "Name must be between 20 and 60 characters", first["msg"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, db, _ := newTestServer(t)
	createUser(t, db, "Jonathan Alexander Smith", "a@x.com", "Passw0rd!", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Another Perfectly Long Name",
		"email":    "a@x.com",
		"password": "Passw0rd!",
	})
	mustStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "User already exists", decodeBody(t, w)["message"])

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdatePassword(t *testing.T) {
	r, db, cfg := newTestServer(t)
	user := createUser(t, db, "Jonathan Alexander Smith", "a@x.com", "Passw0rd!", models.RoleUser)
	bearer := authToken(t, cfg, user)

	// No token.
	w := doJSON(t, r, http.MethodPut, "/api/auth/update-password", "", map[string]any{
		"currentPassword": "Passw0rd!",
		"newPassword":     "NewPassw0rd!",
	})
	mustStatus(t, w, http.StatusUnauthorized)

	// Wrong current password.
	w = doJSON(t, r, http.MethodPut, "/api/auth/update-password", bearer, map[string]any{
		"currentPassword": "Wrong0rd!",
		"newPassword":     "NewPassw0rd!",
	})
	mustStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Current password is incorrect", decodeBody(t, w)["message"])

	// Weak new password.
	w = doJSON(t, r, http.MethodPut, "/api/auth/update-password", bearer, map[string]any{
		"currentPassword": "Passw0rd!",
		"newPassword":     "weak",
	})
	mustStatus(t, w, http.StatusBadRequest)

	// Success, then the new password logs in.
	w = doJSON(t, r, http.MethodPut, "/api/auth/update-password", bearer, map[string]any{
		"currentPassword": "Passw0rd!",
		"newPassword":     "NewPassw0rd!",
	})
	mustStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "NewPassw0rd!",
	})
	mustStatus(t, w, http.StatusOK)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	r, db, cfg := newTestServer(t)
	user := createUser(t, db, "Jonathan Alexander Smith", "a@x.com", "Passw0rd!", models.RoleUser)
	bearer := authToken(t, cfg, user)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	w := doJSON(t, r, http.MethodGet, "/api/stores", bearer, nil)
	mustStatus(t, w, http.StatusUnauthorized)
}

func TestBadTokenSignatureForbidden(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/stores", "not-a-real-token", nil)
	mustStatus(t, w, http.StatusForbidden)
}
