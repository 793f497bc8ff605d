package user

import (
	"net/mail"
	"regexp"
	"strings"
)

// ValidationError carries the first failing rule's message for the 400 body.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error { return &ValidationError{Reason: reason} }

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	fullNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

type SignUpPayload struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p *SignUpPayload) Validate() error {
	if err := validateFullName(p.FullName); err != nil {
		return err
	}
	if err := validateUsername(p.Username); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return invalid("Invalid email")
	}
	return validatePassword(p.Password)
}

func (p *SignInPayload) Validate() error {
	if err := validateUsername(p.Username); err != nil {
		return err
	}
	return validatePassword(p.Password)
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return invalid("Username must be at least 3 characters long")
	}
	if len(username) > 20 {
		return invalid("Username must be at most 20 characters long")
	}
	if !usernameRe.MatchString(username) {
		return invalid("Username must contain only letters, numbers, and underscores")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return invalid("Password must be at least 8 characters long")
	}
	if len(password) > 15 {
		return invalid("Password must be at most 15 characters long")
	}
	return nil
}

func validateFullName(fullName string) error {
	if len(fullName) < 4 {
		return invalid("Full name must be at least 4 characters long")
	}
	if len(fullName) > 20 {
		return invalid("Full name must be at most 20 characters long")
	}
	if !fullNameRe.MatchString(fullName) {
		return invalid("Name must contain only letters and spaces")
	}
	if len(strings.Fields(fullName)) < 2 {
		return invalid("Full name must have first and last name")
	}
	return nil
}
