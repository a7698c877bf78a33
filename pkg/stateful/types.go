package stateful

import "time"

// AuthorSnapshot is a denormalized copy of an author's public profile taken
// when an article or comment is written.
type AuthorSnapshot struct {
	Username string
	Bio      string
	Image    string
}

// User is a registered account.
type User struct {
	ID       int64
	Email    string
	Username string
	Password string
	Token    string
	Bio      string
	Image    string
}

func (u *User) snapshot() AuthorSnapshot {
	return AuthorSnapshot{Username: u.Username, Bio: u.Bio, Image: u.Image}
}

// Article is a stored article. FavoritesCount is a counter adjusted by one
// whenever a favorite edge is added or removed; it never drops below zero.
type Article struct {
	Slug           string
	Title          string
	Description    string
	Body           string
	TagList        []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	FavoritesCount int
	AuthorID       int64
	Author         AuthorSnapshot
}

func (a *Article) clone() Article {
	c := *a
	c.TagList = append([]string(nil), a.TagList...)
	return c
}

// Comment is a stored comment.
type Comment struct {
	ID          int64
	ArticleSlug string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AuthorID    int64
	Author      AuthorSnapshot
}

// ProfileView is a user's public profile as seen by a viewer.
type ProfileView struct {
	Username  string
	Bio       string
	Image     string
	Following bool
}

// ArticleView is an article as seen by a viewer.
type ArticleView struct {
	Article
	Favorited bool
	// Following reports whether the viewer follows the article's author.
	Following bool
}

// CommentView is a comment as seen by a viewer.
type CommentView struct {
	Comment
	// Following reports whether the viewer follows the comment's author.
	Following bool
}

// ArticlePage is one page of a filtered article listing. Total counts the
// filtered set before pagination.
type ArticlePage struct {
	Articles []ArticleView
	Total    int
}

// NewUser holds registration input.
type NewUser struct {
	Username string
	Email    string
	Password string
}

// UserPatch holds the user fields to change. Nil fields are left as is.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// NewArticle holds the fields of an article to create.
type NewArticle struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// ArticlePatch holds the article fields to change. Nil fields are left as is.
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

// StateOverview reports the size of each collection.
type StateOverview struct {
	Users     int `json:"users"`
	Articles  int `json:"articles"`
	Comments  int `json:"comments"`
	Follows   int `json:"follows"`
	Favorites int `json:"favorites"`
	Tags      int `json:"tags"`
}
