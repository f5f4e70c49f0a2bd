package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// User is the backend's identity record. Opaque to the client and never
// mutated locally.
type User struct {
	ID        json.Number `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// AuthResponse is the token payload returned by login and refresh
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// registerResponse tolerates both a bare user object and a {user} wrapper
type registerResponse struct {
	User
	Wrapped *User `json:"user"`
}

// AuthAPI groups the authentication endpoints
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth endpoint group
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login posts credentials using the OAuth2 password flow. The email is
// sent in the username field.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out AuthResponse
	if err := a.client.PostForm(ctx, "/api/v0/auth/login", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account and returns the created user
func (a *AuthAPI) Register(ctx context.Context, email, username, password string) (*User, error) {
	body := map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}

	var out registerResponse
	if err := a.client.Post(ctx, "/api/v0/auth/register", body, &out); err != nil {
		return nil, err
	}
	if out.Wrapped != nil {
		return out.Wrapped, nil
	}
	return &out.User, nil
}

// GetProfile fetches the authenticated user's profile
func (a *AuthAPI) GetProfile(ctx context.Context) (*User, error) {
	var out User
	if err := a.client.Get(ctx, "/api/v0/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges the current token for a fresh one
func (a *AuthAPI) Refresh(ctx context.Context) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.client.Post(ctx, "/api/v0/auth/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
