package medexapi

import (
	"context"
	"net/http"
	"strings"

	"medex/internal/pkg/errs"
)

// Login signs in and loads the session with the returned user and tokens.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return User{}, errs.NewValueIsRequiredError("password")
	}

	var out loginResponse
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Email: email, Password: password},
	}, &out)
	if err != nil {
		return User{}, err
	}

	user := out.User.toDomain()
	c.session.Load(user, Tokens{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
	})
	c.logger.InfoContext(ctx, "Signed in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout clears the session, which runs its OnClear hooks.
func (c *Client) Logout() {
	c.session.Clear()
}

// Me returns the signed-in user as the backend sees it.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out userDTO
	if err := c.do(ctx, call{op: "current user", method: http.MethodGet, path: "/auth/me", auth: true}, &out); err != nil {
		return User{}, err
	}
	return out.toDomain(), nil
}
