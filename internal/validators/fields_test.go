package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validName = "Jonathan Alexander Smith"

func TestRegistration(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		address  string
		wantPath string
	}{
		{
			name:     "valid",
			userName: validName,
			email:    "a@x.com",
			password: "Passw0rd!",
			address:  "123 Main St",
		},
		{
			name:     "name too short",
			userName: "Short Name",
			email:    "a@x.com",
			password: "Passw0rd!",
			wantPath: "name",
		},
		{
			name:     "name too long",
			userName: strings.Repeat("a", 61),
			email:    "a@x.com",
			password: "Passw0rd!",
			wantPath: "name",
		},
		{
			name:     "bad email",
			userName: validName,
			email:    "not-an-email",
			password: "Passw0rd!",
			wantPath: "email",
		},
		{
			name:     "password too short",
			userName: validName,
			email:    "a@x.com",
			password: "Pw0rd!",
			wantPath: "password",
		},
		{
			name:     "password too long",
			userName: validName,
			email:    "a@x.com",
			password: "Password!Password",
			wantPath: "password",
		},
		{
			name:     "password missing uppercase",
			userName: validName,
			email:    "a@x.com",
			password: "passw0rd!",
			wantPath: "password",
		},
		{
			name:     "password missing special",
			userName: validName,
			email:    "a@x.com",
			password: "Passw0rd1",
			wantPath: "password",
		},
		{
			name:     "address too long",
			userName: validName,
			email:    "a@x.com",
			password: "Passw0rd!",
			address:  strings.Repeat("x", 401),
			wantPath: "address",
		},
		{
			name:     "multibyte name counts characters not bytes",
			userName: strings.Repeat("é", 20),
			email:    "a@x.com",
			password: "Passw0rd!",
		},
		{
			name:     "multibyte name over limit",
			userName: strings.Repeat("é", 61),
			email:    "a@x.com",
			password: "Passw0rd!",
			wantPath: "name",
		},
		{
			name:     "multibyte password counts characters not bytes",
			userName: validName,
			email:    "a@x.com",
			password: "Pässwörd!éàü0rd!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Registration(tt.userName, tt.email, tt.password, tt.address)
			if tt.wantPath == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.wantPath, errs[0].Path)
		})
	}
}

func TestAdminCreateUserRole(t *testing.T) {
	errs := AdminCreateUser(validName, "a@x.com", "Passw0rd!", "", "superuser")
	assert.Len(t, errs, 1)
	assert.Equal(t, "role", errs[0].Path)
	assert.Equal(t, "Invalid role", errs[0].Msg)

	for _, role := range []string{"admin", "user", "store_owner"} {
		assert.Empty(t, AdminCreateUser(validName, "a@x.com", "Passw0rd!", "", role))
	}
}

func TestCreateStore(t *testing.T) {
	assert.Empty(t, CreateStore("Cafe Corner", "store@x.com", "5 Side St"))

	errs := CreateStore("", "store@x.com", "")
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Path)
	assert.Equal(t, "Store name must be between 1 and 60 characters", errs[0].Msg)
}

func TestNewPasswordPath(t *testing.T) {
	errs := NewPassword("weak")
	assert.Len(t, errs, 1)
	assert.Equal(t, "newPassword", errs[0].Path)
}

func TestIsEmailValid(t *testing.T) {
	assert.True(t, IsEmailValid("a@x.com"))
	assert.False(t, IsEmailValid("a@x"))
	assert.False(t, IsEmailValid(""))
	assert.False(t, IsEmailValid("Name <a@x.com>"))
}
