package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Seed is the initial state of the entity stores.
type Seed struct {
	Users []SeedUser `json:"users,omitempty" yaml:"users,omitempty"`
	// Follows maps a follower username to the usernames they follow.
	Follows  map[string][]string `json:"follows,omitempty" yaml:"follows,omitempty"`
	Articles []SeedArticle       `json:"articles,omitempty" yaml:"articles,omitempty"`
	// Favorites maps a username to the slugs of the articles they favorited.
	Favorites map[string][]string `json:"favorites,omitempty" yaml:"favorites,omitempty"`
	Comments  []SeedComment       `json:"comments,omitempty" yaml:"comments,omitempty"`
	// Tags is the static popular-tag list served by /tags.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// SeedUser is a user fixture.
type SeedUser struct {
	Email    string `json:"email" yaml:"email"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Token    string `json:"token" yaml:"token"`
	Bio      string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
}

// SeedAuthor is the author snapshot stored with a seeded article or
// comment. Bio and Image default to the user's current values when empty.
type SeedAuthor struct {
	Username string `json:"username" yaml:"username"`
	Bio      string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
}

// SeedArticle is an article fixture. FavoritesCount is the historic
// baseline; favorite edges in Seed.Favorites do not add to it.
type SeedArticle struct {
	Slug           string     `json:"slug" yaml:"slug"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description" yaml:"description"`
	Body           string     `json:"body" yaml:"body"`
	TagList        []string   `json:"tagList,omitempty" yaml:"tagList,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
	FavoritesCount int        `json:"favoritesCount,omitempty" yaml:"favoritesCount,omitempty"`
	Author         SeedAuthor `json:"author" yaml:"author"`
}

// SeedComment is a comment fixture.
type SeedComment struct {
	ID        int64      `json:"id" yaml:"id"`
	Article   string     `json:"article" yaml:"article"`
	Body      string     `json:"body" yaml:"body"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
	Author    SeedAuthor `json:"author" yaml:"author"`
}

// SeedValidationError is a single seed integrity problem.
type SeedValidationError struct {
	Path    string // e.g. "articles[2].author.username"
	Message string
}

func (e SeedValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// SeedValidationResult collects every integrity problem in a Seed.
type SeedValidationResult struct {
	Errors []SeedValidationError
}

// IsValid returns true if there are no validation errors.
func (r *SeedValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *SeedValidationResult) Error() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *SeedValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, SeedValidationError{Path: path, Message: message})
}

// Validate checks uniqueness and referential integrity. It returns nil when
// the seed is consistent and a *SeedValidationResult otherwise.
func (s *Seed) Validate() error {
	result := &SeedValidationResult{}

	emails := make(map[string]bool)
	usernames := make(map[string]bool)
	tokens := make(map[string]bool)
	for i, u := range s.Users {
		path := fmt.Sprintf("users[%d]", i)
		checkUnique(result, path+".email", u.Email, emails)
		checkUnique(result, path+".username", u.Username, usernames)
		checkUnique(result, path+".token", u.Token, tokens)
	}

	slugs := make(map[string]bool)
	for i, a := range s.Articles {
		path := fmt.Sprintf("articles[%d]", i)
		checkUnique(result, path+".slug", a.Slug, slugs)
		if !usernames[a.Author.Username] {
			result.AddError(path+".author.username", fmt.Sprintf("unknown user %q", a.Author.Username))
		}
		if a.FavoritesCount < 0 {
			result.AddError(path+".favoritesCount", "must not be negative")
		}
		if !a.UpdatedAt.IsZero() && a.UpdatedAt.Before(a.CreatedAt) {
			result.AddError(path+".updatedAt", "must not be before createdAt")
		}
	}

	ids := make(map[int64]bool)
	for i, c := range s.Comments {
		path := fmt.Sprintf("comments[%d]", i)
		if c.ID < 1 {
			result.AddError(path+".id", "must be positive")
		} else if ids[c.ID] {
			result.AddError(path+".id", fmt.Sprintf("duplicate id %d", c.ID))
		}
		ids[c.ID] = true
		if !slugs[c.Article] {
			result.AddError(path+".article", fmt.Sprintf("unknown article %q", c.Article))
		}
		if !usernames[c.Author.Username] {
			result.AddError(path+".author.username", fmt.Sprintf("unknown user %q", c.Author.Username))
		}
	}

	for _, follower := range sortedKeys(s.Follows) {
		path := "follows." + follower
		if !usernames[follower] {
			result.AddError(path, fmt.Sprintf("unknown user %q", follower))
		}
		for _, followee := range s.Follows[follower] {
			if !usernames[followee] {
				result.AddError(path, fmt.Sprintf("unknown user %q", followee))
			}
			if followee == follower {
				result.AddError(path, "a user cannot follow themselves")
			}
		}
	}

	for _, username := range sortedKeys(s.Favorites) {
		path := "favorites." + username
		if !usernames[username] {
			result.AddError(path, fmt.Sprintf("unknown user %q", username))
		}
		for _, slug := range s.Favorites[username] {
			if !slugs[slug] {
				result.AddError(path, fmt.Sprintf("unknown article %q", slug))
			}
		}
	}

	if result.IsValid() {
		return nil
	}
	return result
}

// MaxCommentID returns the highest seeded comment id, or 0.
func (s *Seed) MaxCommentID() int64 {
	var maxID int64
	for _, c := range s.Comments {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID
}

func checkUnique(result *SeedValidationResult, path, value string, seen map[string]bool) {
	if seen[value] {
		result.AddError(path, fmt.Sprintf("duplicate value %q", value))
		return
	}
	seen[value] = true
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
