package client

import (
	"context"
	"net/http"

	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// UsersService covers authentication, the current user and profiles.
type UsersService struct {
	c *Client
}

// Login authenticates with email and password. The returned user carries
// the token; pass it to SetToken to act as that user.
func (s *UsersService) Login(ctx context.Context, email, password string) (*conduit.User, error) {
	var out conduit.UserResponse
	body := conduit.LoginRequest{User: &conduit.LoginUser{Email: email, Password: password}}
	if err := s.c.do(ctx, http.MethodPost, "/users/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Register creates an account.
func (s *UsersService) Register(ctx context.Context, username, email, password string) (*conduit.User, error) {
	var out conduit.UserResponse
	body := conduit.RegisterRequest{User: &conduit.NewUser{Username: username, Email: email, Password: password}}
	if err := s.c.do(ctx, http.MethodPost, "/users", "", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Current returns the authenticated user.
func (s *UsersService) Current(ctx context.Context) (*conduit.User, error) {
	var out conduit.UserResponse
	if err := s.c.do(ctx, http.MethodGet, "/user", "", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Save updates the authenticated user. Nil fields are left unchanged.
func (s *UsersService) Save(ctx context.Context, patch conduit.UpdateUser) (*conduit.User, error) {
	var out conduit.UserResponse
	if err := s.c.do(ctx, http.MethodPut, "/user", "", conduit.UpdateUserRequest{User: &patch}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Profile returns a user's public profile.
func (s *UsersService) Profile(ctx context.Context, username string) (*conduit.Profile, error) {
	return s.profile(ctx, http.MethodGet, "/profiles/"+escape(username))
}

// Follow follows username.
func (s *UsersService) Follow(ctx context.Context, username string) (*conduit.Profile, error) {
	return s.profile(ctx, http.MethodPost, "/profiles/"+escape(username)+"/follow")
}

// Unfollow stops following username.
func (s *UsersService) Unfollow(ctx context.Context, username string) (*conduit.Profile, error) {
	return s.profile(ctx, http.MethodDelete, "/profiles/"+escape(username)+"/follow")
}

func (s *UsersService) profile(ctx context.Context, method, path string) (*conduit.Profile, error) {
	var out conduit.ProfileResponse
	if err := s.c.do(ctx, method, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}
