package erpapi

import "context"

// LoginResult is what POST /auth/login answers with. The backend either
// issues a token pair or an access token plus a redirect to follow
// (e.g. into onboarding).
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	RedirectURL  string `json:"redirect_url"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Permissions fetches the permission-token set for the current session.
func (c *Client) Permissions(ctx context.Context) ([]string, error) {
	var perms []string
	if err := c.get(ctx, "/auth/permissions", &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// User is the current user record as the backend reports it. Read-only from
// the portal's perspective.
type User struct {
	ID          string `json:"_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
}

// Me fetches the current user record.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/users/me", &user); err != nil {
		return User{}, err
	}
	return user, nil
}
