package service

import (
	"strings"

	"openway/internal/model"
)

// AccountService backs the sign-in and sign-up forms. It performs the
// form checks only; no identity service is called.
type AccountService struct{}

func NewAccountService() *AccountService {
	return &AccountService{}
}

// SignIn acknowledges the submitted credentials.
func (s *AccountService) SignIn(email, password string) (model.Notice, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Notice{}, model.ErrMissingCredentials
	}
	return model.Notice{Title: "Sign In", Message: "Email: " + email}, nil
}

// SignUp checks that both passwords match.
func (s *AccountService) SignUp(email, password, confirm string) (model.Notice, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Notice{}, model.ErrMissingCredentials
	}
	if password != confirm {
		return model.Notice{}, model.ErrPasswordMismatch
	}
	return model.Notice{Title: "Sign Up", Message: "Account created for " + email}, nil
}
