package http

import (
	"net/http"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

// CredentialsHandler serves the public registration, login and password
// recovery endpoints.
type CredentialsHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

// HandleRegister handles POST /register
//
//	@Summary		Register a credential
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.RegisterRequest		true	"Registration form"
//	@Success		200		{object}	desksdk.MessageResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"validation_failed"
//	@Failure		409		{object}	desksdk.ErrorResponse	"email_taken"
//	@Failure		500		{object}	desksdk.ErrorResponse
//	@Router			/register [post].
func (h *CredentialsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req desksdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		NationalID: req.NationalID,
		FullName:   req.FullName,
		BirthDate:  req.BirthDate,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to register")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.MessageResponse{Message: "Registration successful"})
}

// HandleLogin handles POST /login
//
//	@Summary		Log in
//	@Description	Verifies the password and issues an access token. Five consecutive failures lock the account for 30 minutes.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.LoginRequest	true	"Email and password"
//	@Success		200		{object}	desksdk.LoginResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"validation_failed"
//	@Failure		401		{object}	desksdk.ErrorResponse	"invalid_credentials"
//	@Failure		403		{object}	desksdk.ErrorResponse	"locked_out with remainingTime in ms"
//	@Failure		429		{object}	desksdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/login [post].
func (h *CredentialsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	cred, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Failed to log in")
		return
	}

	token, ttl, err := h.TokenService.IssueAccessToken(cred)
	if err != nil {
		writeServiceError(w, r, err, "Failed to issue access token")
		return
	}

	slogx.FromContext(ctx).Info("login succeeded", "email", cred.Email)
	httpx.WriteJSON(w, http.StatusOK, desksdk.LoginResponse{
		UserName:    cred.DisplayName,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	})
}

// HandleForgotPassword handles POST /forgot-password
//
//	@Summary		Email a password reset link
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	desksdk.MessageResponse
//	@Failure		404		{object}	desksdk.ErrorResponse	"not_found"
//	@Failure		500		{object}	desksdk.ErrorResponse	"delivery_failed"
//	@Router			/forgot-password [post].
func (h *CredentialsHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req desksdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err, "Failed to issue reset link")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.MessageResponse{Message: "Password reset link sent"})
}

// HandleVerifyToken handles GET /verify-token/{token}
//
//	@Summary		Check a reset token
//	@Tags			Credentials
//	@Produce		json
//	@Param			token	path		string	true	"Reset token from the emailed link"
//	@Success		200		{object}	desksdk.VerifyTokenResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"invalid_token"
//	@Router			/verify-token/{token} [get].
func (h *CredentialsHandler) HandleVerifyToken(w http.ResponseWriter, r *http.Request) {
	valid, err := h.AuthService.VerifyToken(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to verify token")
		return
	}
	if !valid {
		writeServiceError(w, r, service.ErrInvalidToken, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.VerifyTokenResponse{Valid: true})
}

// HandleResetPassword handles POST /reset-password
//
//	@Summary		Redeem a reset token
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.ResetPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	desksdk.MessageResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"invalid_token or validation_failed"
//	@Router			/reset-password [post].
func (h *CredentialsHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req desksdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err, "Failed to reset password")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.MessageResponse{Message: "Password has been reset"})
}

// HandleChangePassword handles POST /change-password
//
//	@Summary		Change a password
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.ChangePasswordRequest	true	"Email, old and new password"
//	@Success		200		{object}	desksdk.MessageResponse
//	@Failure		401		{object}	desksdk.ErrorResponse	"invalid_credentials"
//	@Failure		404		{object}	desksdk.ErrorResponse	"not_found"
//	@Router			/change-password [post].
func (h *CredentialsHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req desksdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), req.Email, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err, "Failed to change password")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.MessageResponse{Message: "Password changed"})
}

// HandleUserInfo handles GET /user-info/{email}
//
//	@Summary		Profile of a credential
//	@Tags			Credentials
//	@Produce		json
//	@Param			email	path		string	true	"Account email"
//	@Success		200		{object}	desksdk.UserInfoResponse
//	@Failure		404		{object}	desksdk.ErrorResponse	"not_found"
//	@Router			/user-info/{email} [get].
func (h *CredentialsHandler) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	cred, err := h.AuthService.UserInfo(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to load user info")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.UserInfoResponse{
		Email:     cred.Email,
		UserName:  cred.DisplayName,
		TCNumber:  cred.NationalID,
		BirthDate: cred.BirthDate.Format(service.BirthDateLayout),
	})
}
