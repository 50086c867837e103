// Package services contains the typed application services the CLI drives:
// authentication, account management, the offer catalog and checkout. Each
// service wraps the shared API client and speaks the backend's web API
// through the gateway proxy.
package services

import (
	"context"
	"fmt"

	"github.com/mpavlovs/parkgate/internal/client/api"
	"github.com/mpavlovs/parkgate/internal/client/models"
	"github.com/mpavlovs/parkgate/internal/jwtx"
)

const (
	authBaseURL = "/api/v1/web/authorization"
	webBaseURL  = "/api/v1/web"
)

// AuthService covers login (password or one-time code), registration,
// password recovery and profile access.
type AuthService interface {
	OtpSend(ctx context.Context, to, channel string) (*models.OtpSendResponse, error)
	OtpVerify(ctx context.Context, sid, code string) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password, firstName, lastName string) error
	Refresh(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Logout(ctx context.Context) error
	UserID() (string, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update map[string]any) error
}

type authService struct {
	client *api.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

// OtpSend requests a one-time code over the given channel ("sms" or "email").
func (a *authService) OtpSend(ctx context.Context, to, channel string) (*models.OtpSendResponse, error) {
	var out models.OtpSendResponse
	body := map[string]string{"to": to, "channel": channel}
	if err := a.client.Post(ctx, authBaseURL+"/otp-send", body, &out); err != nil {
		return nil, fmt.Errorf("otp send error: %w", err)
	}
	return &out, nil
}

// OtpVerify exchanges a received code for a token pair and stores it.
func (a *authService) OtpVerify(ctx context.Context, sid, code string) error {
	var pair models.TokenPair
	body := map[string]string{"sid": sid, "code": code}
	if err := a.client.Post(ctx, authBaseURL+"/otp-login", body, &pair); err != nil {
		return fmt.Errorf("otp verify error: %w", err)
	}

	if _, err := jwtx.UserID(pair.AccessToken); err != nil {
		return fmt.Errorf("unable to find the user: %w", err)
	}

	a.client.Session().SetPair(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Login authenticates with email and password and stores the token pair.
func (a *authService) Login(ctx context.Context, email, password string) error {
	var pair models.TokenPair
	body := map[string]string{"email": email, "password": password}
	if err := a.client.Post(ctx, authBaseURL+"/login", body, &pair); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	a.client.Session().SetPair(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Register creates a new customer account.
func (a *authService) Register(ctx context.Context, email, password, firstName, lastName string) error {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}
	if err := a.client.Post(ctx, authBaseURL+"/register", body, nil); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new pair. Interactive
// use only; expired access tokens inside API calls are refreshed by the
// client itself.
func (a *authService) Refresh(ctx context.Context) error {
	var pair models.TokenPair
	body := map[string]string{"refreshToken": a.client.Session().RefreshToken()}
	if err := a.client.Post(ctx, authBaseURL+"/refresh-token", body, &pair); err != nil {
		return fmt.Errorf("refresh error: %w", err)
	}

	a.client.Session().SetPair(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := a.client.Post(ctx, authBaseURL+"/forgot-password", body, nil); err != nil {
		return fmt.Errorf("forgot password error: %w", err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := a.client.Post(ctx, authBaseURL+"/reset-password", body, nil); err != nil {
		return fmt.Errorf("reset password error: %w", err)
	}
	return nil
}

// Logout tells the backend to drop the session and clears local tokens.
// Local tokens are cleared even if the backend call fails.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Post(ctx, authBaseURL+"/logout", map[string]string{}, nil)
	a.client.Session().Clear()
	if err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

// UserID resolves the customer id from the stored access token's subject.
func (a *authService) UserID() (string, error) {
	return jwtx.UserID(a.client.Session().AccessToken())
}

// Profile fetches the authenticated customer with their orders.
func (a *authService) Profile(ctx context.Context) (*models.Profile, error) {
	id, err := a.UserID()
	if err != nil {
		return nil, fmt.Errorf("unable to find the user: %w", err)
	}

	var out models.Profile
	if err := a.client.Get(ctx, fmt.Sprintf("%s/accounts/%s/profile", webBaseURL, id), &out); err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}
	return &out, nil
}

// UpdateProfile sends a partial profile update.
func (a *authService) UpdateProfile(ctx context.Context, update map[string]any) error {
	if err := a.client.Put(ctx, authBaseURL+"/profile", update, nil); err != nil {
		return fmt.Errorf("profile update error: %w", err)
	}
	return nil
}
