package api

import (
	"context"
	"net/http"

	"github.com/nbmdigital/siteclient/pkg/apiclient"
)

const authBasePath = "/auth"

// Auth exposes the authentication endpoints.
type Auth struct {
	client *apiclient.Client
}

// NewAuth creates the auth module over the given transport.
func NewAuth(client *apiclient.Client) *Auth {
	return &Auth{client: client}
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates with email and password. The returned token is
// not stored here; credential ownership belongs to the session layer.
func (a *Auth) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := a.client.Request(ctx, http.MethodPost, authBasePath+"/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	result, err := apiclient.Decode[LoginResult](resp)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account.
func (a *Auth) Register(ctx context.Context, email, password, username string) (*User, error) {
	resp, err := a.client.Request(ctx, http.MethodPost, authBasePath+"/register", map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	})
	if err != nil {
		return nil, err
	}
	user, err := apiclient.Decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the user the current token belongs to. An invalid or
// expired token surfaces as a plain request failure; the backend
// provides no structured error taxonomy beyond the message string.
func (a *Auth) Me(ctx context.Context) (*User, error) {
	resp, err := a.client.AuthRequest(ctx, http.MethodGet, authBasePath+"/me", nil)
	if err != nil {
		return nil, err
	}
	user, err := apiclient.Decode[User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the session server-side. Callers treat this as
// best-effort: local teardown proceeds regardless of the outcome.
func (a *Auth) Logout(ctx context.Context) error {
	_, err := a.client.AuthRequest(ctx, http.MethodPost, authBasePath+"/logout", nil)
	return err
}

// ChangePassword updates the current user's password.
func (a *Auth) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := a.client.AuthRequest(ctx, http.MethodPut, authBasePath+"/change-password", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	return err
}
