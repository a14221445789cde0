package handler

import (
	"errors"
	"net/http"

	"openway/internal/httputil"
	"openway/internal/model"
	"openway/internal/service"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	notice, err := h.accounts.SignIn(req.Email, req.Password)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, notice)
}

func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	notice, err := h.accounts.SignUp(req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, notice)
}

func writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrPasswordMismatch):
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeValidation, "Passwords do not match.")
	case errors.Is(err, model.ErrMissingCredentials):
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeValidation, err.Error())
	default:
		httputil.WriteInternalError(w, "Account request failed")
	}
}
