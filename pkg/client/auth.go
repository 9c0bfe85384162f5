package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (c *Client) SignUp(ctx context.Context, input SignUpInput) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signup", input)
}

func (c *Client) SignIn(ctx context.Context, input SignInInput) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signin", input)
}

func (c *Client) authenticate(ctx context.Context, path string, input any) (*AuthResponse, error) {
	var res AuthResponse
	if err := c.do(ctx, http.MethodPost, path, input, &res); err != nil {
		return nil, err
	}
	c.store.update(func(st *State) {
		*st = State{Token: res.AccessToken, User: res.User, Profile: res.Profile, Roles: res.Roles}
	})
	return &res, nil
}

// SignOut revokes the session on the server and always clears local state.
func (c *Client) SignOut(ctx context.Context) error {
	if !c.store.Snapshot().SignedIn() {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	c.store.Clear()
	return err
}

// StartImpersonation switches the session to act as targetID. On failure
// the local state is left untouched.
func (c *Client) StartImpersonation(ctx context.Context, targetID uuid.UUID) error {
	var res impersonationResponse
	body := map[string]string{"target_user_id": targetID.String()}
	if err := c.do(ctx, http.MethodPost, "/api/admin/impersonation/start", body, &res); err != nil {
		return err
	}

	c.store.update(func(st *State) {
		*st = State{
			Token:              res.AccessToken,
			User:               res.User,
			Profile:            res.Profile,
			Roles:              res.Roles,
			ImpersonatedUserID: &targetID,
			IsImpersonating:    true,
		}
	})
	return nil
}

// StopImpersonation returns to the admin's own session. A server failure is
// logged and otherwise ignored.
func (c *Client) StopImpersonation(ctx context.Context) {
	var res impersonationResponse
	if err := c.do(ctx, http.MethodPost, "/api/impersonation/stop", nil, &res); err != nil {
		c.log.Warn("failed to stop impersonation", zap.Error(err))
		return
	}

	c.store.update(func(st *State) {
		*st = State{Token: res.AccessToken, User: res.User, Profile: res.Profile, Roles: res.Roles}
	})
}
