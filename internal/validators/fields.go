package validators

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/rateport/store-ratings/internal/httperr"
	"github.com/rateport/store-ratings/internal/models"
)

const passwordSpecials = "!@#$%^&*"

func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	// require a dotted domain, mail.ParseAddress accepts bare hosts
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

func checkName(name string) *httperr.FieldError {
	// Lengths count characters, not bytes, so multibyte names validate
	// the same way the original did.
	if n := utf8.RuneCountInString(name); n < 20 || n > 60 {
		return &httperr.FieldError{Path: "name", Msg: "Name must be between 20 and 60 characters"}
	}
	return nil
}

func checkStoreName(name string) *httperr.FieldError {
	if n := utf8.RuneCountInString(name); n < 1 || n > 60 {
		return &httperr.FieldError{Path: "name", Msg: "Store name must be between 1 and 60 characters"}
	}
	return nil
}

func checkEmail(email string) *httperr.FieldError {
	if !IsEmailValid(email) {
		return &httperr.FieldError{Path: "email", Msg: "Please provide a valid email"}
	}
	return nil
}

func checkPassword(password string) *httperr.FieldError {
	if n := utf8.RuneCountInString(password); n < 8 || n > 16 {
		return &httperr.FieldError{Path: "password", Msg: "Password must be between 8 and 16 characters"}
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(password, passwordSpecials) {
		return &httperr.FieldError{Path: "password", Msg: "Password must contain at least one uppercase letter and one special character"}
	}
	return nil
}

func checkAddress(address string) *httperr.FieldError {
	if utf8.RuneCountInString(address) > 400 {
		return &httperr.FieldError{Path: "address", Msg: "Address must not exceed 400 characters"}
	}
	return nil
}

func checkRole(role string) *httperr.FieldError {
	if !models.IsValidRole(role) {
		return &httperr.FieldError{Path: "role", Msg: "Invalid role"}
	}
	return nil
}

func collect(checks ...*httperr.FieldError) []httperr.FieldError {
	var errs []httperr.FieldError
	for _, e := range checks {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// Registration covers self-registration and admin user creation minus role.
func Registration(name, email, password, address string) []httperr.FieldError {
	return collect(
		checkName(name),
		checkEmail(email),
		checkPassword(password),
		checkAddress(address),
	)
}

func AdminCreateUser(name, email, password, address, role string) []httperr.FieldError {
	return collect(
		checkName(name),
		checkEmail(email),
		checkPassword(password),
		checkAddress(address),
		checkRole(role),
	)
}

func CreateStore(name, email, address string) []httperr.FieldError {
	return collect(
		checkStoreName(name),
		checkEmail(email),
		checkAddress(address),
	)
}

func NewPassword(password string) []httperr.FieldError {
	if e := checkPassword(password); e != nil {
		e.Path = "newPassword"
		return []httperr.FieldError{*e}
	}
	return nil
}
