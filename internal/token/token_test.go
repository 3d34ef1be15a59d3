package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateport/store-ratings/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	user := &models.User{ID: 7, Email: "a@x.com", Role: models.RoleStoreOwner}

	signed, err := Issue(user, "secret")
	require.NoError(t, err)

	claims, err := Parse(signed, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, models.RoleStoreOwner, claims.Role)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestParseWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@x.com", Role: models.RoleUser}

	signed, err := Issue(user, "secret")
	require.NoError(t, err)

	_, err = Parse(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not.a.token", "secret")
	assert.Error(t, err)
}
