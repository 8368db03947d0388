package desksdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) error {
	body, headers, err := jsonBody(req)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/register", body, headers)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Login authenticates and returns a Session holding the access token.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	body, headers, err := jsonBody(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", body, headers)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(out.AccessToken, out.UserName), nil
}

func (c *SDKClient) ForgotPassword(ctx context.Context, email string) error {
	body, headers, err := jsonBody(ForgotPasswordRequest{Email: email})
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/forgot-password", body, headers)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// VerifyToken reports whether a reset token is still redeemable. An
// invalid token is not an error.
func (c *SDKClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/verify-token/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return false, err
	}

	var out VerifyTokenResponse
	err = decodeJSON(resp, &out, http.StatusOK)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == ErrorCodeInvalidToken {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Valid, nil
}

func (c *SDKClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body, headers, err := jsonBody(ResetPasswordRequest{Token: token, NewPassword: newPassword})
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/reset-password", body, headers)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (c *SDKClient) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	body, headers, err := jsonBody(req)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/change-password", body, headers)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (c *SDKClient) UserInfo(ctx context.Context, email string) (*UserInfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/user-info/"+url.PathEscape(email), nil, nil)
	if err != nil {
		return nil, err
	}
	var out UserInfoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
