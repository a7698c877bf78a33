package stateful

import (
	"fmt"
	"testing"
	"time"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tokens of the default seed users.
const (
	demoToken = "mock-jwt-token-demo-user"
	janeToken = "mock-jwt-token-jane"
	johnToken = "mock-jwt-token-john"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store over the default seed with a fixed clock
// and predictable tokens.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	var n int
	s, err := New(config.MustDefaultSeed(),
		WithClock(func() time.Time { return fixedNow }),
		WithTokenGenerator(func() string {
			n++
			return fmt.Sprintf("test-token-%d", n)
		}),
	)
	require.NoError(t, err)
	return s
}

func userID(t *testing.T, s *Store, token string) int64 {
	t.Helper()
	u, ok := s.UserByToken(token)
	require.True(t, ok, "no user for token %q", token)
	return u.ID
}

func TestNew_EmptySeed(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, StateOverview{}, s.Overview())
	assert.Empty(t, s.PopularTags())
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	seed := &config.Seed{
		Users: []config.SeedUser{
			{Email: "a@x.com", Username: "alice", Password: "pw", Token: "t"},
			{Email: "a@x.com", Username: "bob", Password: "pw", Token: "u"},
		},
	}
	_, err := New(seed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate value")
}

func TestStore_Overview(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, StateOverview{
		Users:     3,
		Articles:  5,
		Comments:  5,
		Follows:   4,
		Favorites: 4,
		Tags:      20,
	}, s.Overview())
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore(t)
	jane := userID(t, s, janeToken)
	demo := userID(t, s, demoToken)

	_, err := s.Register(NewUser{Username: "alice", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteArticle(jane, "how-to-build-civic-engagement-platforms"))
	first, err := s.AddComment(demo, "participatory-budgeting-guide", "one")
	require.NoError(t, err)

	s.Reset()

	assert.Equal(t, 3, s.Overview().Users)
	assert.Equal(t, 5, s.Overview().Articles)
	_, err = s.GetArticle(0, "how-to-build-civic-engagement-platforms")
	assert.NoError(t, err)

	demo = userID(t, s, demoToken)
	second, err := s.AddComment(demo, "participatory-budgeting-guide", "two")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID, "comment ids keep increasing across resets")
}

func TestToErrorBody(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFields map[string][]string
	}{
		{
			name:       "validation",
			err:        NewValidationError("body", MsgBlank),
			wantStatus: 422,
			wantFields: map[string][]string{"body": {"can't be blank"}},
		},
		{
			name:       "conflict",
			err:        &ConflictError{Field: "email", Value: "a@x.com"},
			wantStatus: 422,
			wantFields: map[string][]string{"email": {"has already been taken"}},
		},
		{
			name:       "unauthorized",
			err:        &UnauthorizedError{},
			wantStatus: 401,
			wantFields: map[string][]string{"message": {"Unauthorized"}},
		},
		{
			name:       "forbidden",
			err:        &ForbiddenError{Resource: "comment", ID: "3"},
			wantStatus: 403,
			wantFields: map[string][]string{"comment": {"not authorized"}},
		},
		{
			name:       "not found",
			err:        &NotFoundError{Resource: "profile", ID: "nobody"},
			wantStatus: 404,
			wantFields: map[string][]string{"profile": {"not found"}},
		},
		{
			name:       "unknown error",
			err:        assert.AnError,
			wantStatus: 500,
			wantFields: map[string][]string{"server": {"internal error"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ToErrorBody(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantFields, body.Errors)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{}
	assert.True(t, verr.Empty())
	verr.Add("title", MsgBlank)
	verr.Add("body", MsgBlank)
	assert.False(t, verr.Empty())
	assert.Equal(t, "validation failed: body can't be blank; title can't be blank", verr.Error())
}
