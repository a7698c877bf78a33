package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/civiclens/conduit-mock/pkg/requestlog"
)

const adminPath = "/__admin"

// Health is the mock server's liveness report.
type Health struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime"`
}

// State counts the entities held by the mock server.
type State struct {
	Users     int `json:"users"`
	Articles  int `json:"articles"`
	Comments  int `json:"comments"`
	Follows   int `json:"follows"`
	Favorites int `json:"favorites"`
	Tags      int `json:"tags"`
}

// RequestList is one page of the server's request log.
type RequestList struct {
	Requests []*requestlog.Entry `json:"requests"`
	Total    int                 `json:"total"`
}

// AdminService calls the mock server's control endpoints. They live at the
// server root, outside the API base path.
type AdminService struct{ c *Client }

func (s *AdminService) do(ctx context.Context, method, path, query string, body, out any) error {
	return s.c.send(ctx, method, s.c.rootURL, adminPath+path, query, body, out)
}

// Health reports whether the server is up.
func (s *AdminService) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := s.do(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// State returns entity counts.
func (s *AdminService) State(ctx context.Context) (*State, error) {
	var out State
	if err := s.do(ctx, http.MethodGet, "/state", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset restores the seed data.
func (s *AdminService) Reset(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/reset", "", nil, nil)
}

// Requests lists logged requests, newest first. A limit of 0 uses the
// server default.
func (s *AdminService) Requests(ctx context.Context, limit int) (*RequestList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out RequestList
	if err := s.do(ctx, http.MethodGet, "/requests", q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearRequests empties the request log and returns how many entries it held.
func (s *AdminService) ClearRequests(ctx context.Context) (int, error) {
	var out struct {
		Cleared int `json:"cleared"`
	}
	if err := s.do(ctx, http.MethodDelete, "/requests", "", nil, &out); err != nil {
		return 0, err
	}
	return out.Cleared, nil
}
