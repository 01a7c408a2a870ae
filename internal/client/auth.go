package client

import (
	"context"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

type Auth struct{ c *Client }

func NewAuth(c *Client) *Auth { return &Auth{c: c} }

// Login opens a session on success.
func (a *Auth) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	var out response.AuthResponse
	if err := a.c.Do(ctx, http.MethodPost, "/login", nil, req, &out); err != nil {
		return nil, err
	}
	if err := a.begin(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a customer account and opens a session for it.
func (a *Auth) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	var out response.AuthResponse
	if err := a.c.Do(ctx, http.MethodPost, "/register", nil, req, &out); err != nil {
		return nil, err
	}
	if err := a.begin(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the server session. The local session ends even when the
// server call fails.
func (a *Auth) Logout(ctx context.Context) error {
	err := a.c.Do(ctx, http.MethodPost, "/logout", nil, nil, nil)
	if endErr := a.c.session.End(); endErr != nil && err == nil {
		err = endErr
	}
	return err
}

func (a *Auth) begin(out *response.AuthResponse) error {
	return a.c.session.Begin(Identity{
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt,
		User:      out.User,
	})
}

type Users struct{ c *Client }

func NewUsers(c *Client) *Users { return &Users{c: c} }

func (u *Users) Profile(ctx context.Context) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := u.c.Do(ctx, http.MethodGet, "/user", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := u.c.Do(ctx, http.MethodPut, "/user", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) All(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.UserResponse], error) {
	var out response.PaginatedResponse[response.UserResponse]
	if err := u.c.Do(ctx, http.MethodGet, "/admin/users", pageQuery(page, perPage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) UpdateRole(ctx context.Context, id, role string) (*response.UserResponse, error) {
	var out response.UserResponse
	req := request.UpdateRoleRequest{Role: role}
	if err := u.c.Do(ctx, http.MethodPut, "/admin/users/"+id+"/role", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
