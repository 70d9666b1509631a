package catalog

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// SignupPayload is the public signup request body. Every account starts with
// the customer role; admin accounts are provisioned out of band.
type SignupPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate enforces the password policy alongside the structural rules: at
// least 8 characters with one uppercase letter, one lowercase letter, one
// digit, and one special character.
func (r SignupPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, 80)),
		validation.Field(&r.LastName, validation.Length(0, 80)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 0),
			validation.Match(passwordUpper).Error("must contain an uppercase letter"),
			validation.Match(passwordLower).Error("must contain a lowercase letter"),
			validation.Match(passwordDigit).Error("must contain a digit"),
			validation.Match(passwordSpecial).Error("must contain a special character"),
		),
	)
}

// Normalize lowercases the email so lookups and the unique constraint agree
// on one casing.
func (r *SignupPayload) Normalize() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}

// ToMessage builds the registration command message.
func (r SignupPayload) ToMessage() RegisterUserMessage {
	return RegisterUserMessage{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      string(RoleUser),
	}
}

// LoginPayload is the login request body. The password gets no policy checks
// here; a stored hash either matches or it does not.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// Normalize matches the signup email canonicalization.
func (r *LoginPayload) Normalize() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}
