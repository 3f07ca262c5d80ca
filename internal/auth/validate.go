package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password the forms accept
const MinPasswordLength = 8

// ContactDigits is the expected length of a contact phone number
const ContactDigits = 10

// Validation errors
var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email address is not valid")
	ErrNameRequired     = errors.New("first and last name are required")
	ErrAgeInvalid       = errors.New("age must be a positive number")
	ErrContactInvalid   = fmt.Errorf("contact must be a %d digit phone number", ContactDigits)
	ErrTokenRequired    = errors.New("reset token is required")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRequest is the body of the registration call
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	Age       string `json:"age"        validate:"required,numeric"`
	Contact   string `json:"contact"    validate:"required,number,len=10"`
}

// resetPassword is the reset form as the user typed it
type resetPassword struct {
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"eqfield=Password"`
}

// fieldErrors maps a failing struct field to the error the forms show
var fieldErrors = map[string]error{
	"FirstName": ErrNameRequired,
	"LastName":  ErrNameRequired,
	"Email":     ErrEmailInvalid,
	"Password":  ErrPasswordTooShort,
	"Age":       ErrAgeInvalid,
	"Contact":   ErrContactInvalid,
	"Confirm":   ErrPasswordMismatch,
}

// firstFieldError turns the first validation failure into its form error.
// Fields are checked in declaration order.
func firstFieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.StructField() == "Email" && fe.Tag() == "required" {
		return ErrEmailRequired
	}
	if mapped, ok := fieldErrors[fe.StructField()]; ok {
		return mapped
	}
	return err
}

// ValidateResetPassword checks a new password and its confirmation.
// Length is checked first, then the match.
func ValidateResetPassword(password, confirm string) error {
	return firstFieldError(validate.Struct(resetPassword{Password: password, Confirm: confirm}))
}

// ValidateEmail checks that email is present and well formed
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required"); err != nil {
		return ErrEmailRequired
	}
	if err := validate.Var(email, "email"); err != nil {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateRegistration checks the registration form field by field and
// returns the first problem found
func ValidateRegistration(req RegisterRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Age = strings.TrimSpace(req.Age)
	req.Contact = strings.TrimSpace(req.Contact)

	if err := validate.Struct(req); err != nil {
		return firstFieldError(err)
	}
	if age, err := strconv.Atoi(req.Age); err != nil || age <= 0 {
		return ErrAgeInvalid
	}
	return nil
}
