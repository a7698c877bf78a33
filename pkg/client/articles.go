package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// Page sizes used when a listing call passes limit <= 0.
const (
	DefaultPageSize = 10
	ProfilePageSize = 5
)

// ArticlesService covers article listings and article mutations.
type ArticlesService struct {
	c *Client
}

// All lists every article. page is zero-based.
func (s *ArticlesService) All(ctx context.Context, page, limit int) (*conduit.ArticlesResponse, error) {
	return s.list(ctx, "/articles", "", "", page, limit, DefaultPageSize)
}

// ByAuthor lists the articles written by author.
func (s *ArticlesService) ByAuthor(ctx context.Context, author string, page, limit int) (*conduit.ArticlesResponse, error) {
	return s.list(ctx, "/articles", "author", author, page, limit, ProfilePageSize)
}

// ByTag lists the articles carrying tag.
func (s *ArticlesService) ByTag(ctx context.Context, tag string, page, limit int) (*conduit.ArticlesResponse, error) {
	return s.list(ctx, "/articles", "tag", tag, page, limit, DefaultPageSize)
}

// FavoritedBy lists the articles favorited by username.
func (s *ArticlesService) FavoritedBy(ctx context.Context, username string, page, limit int) (*conduit.ArticlesResponse, error) {
	return s.list(ctx, "/articles", "favorited", username, page, limit, ProfilePageSize)
}

// Feed lists articles by authors the current user follows.
func (s *ArticlesService) Feed(ctx context.Context, page, limit int) (*conduit.ArticlesResponse, error) {
	return s.list(ctx, "/articles/feed", "", "", page, limit, DefaultPageSize)
}

func (s *ArticlesService) list(ctx context.Context, path, filter, value string, page, limit, defaultLimit int) (*conduit.ArticlesResponse, error) {
	var out conduit.ArticlesResponse
	if err := s.c.do(ctx, http.MethodGet, path, pageQuery(filter, value, page, limit, defaultLimit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// pageQuery builds "filter=value&limit=n&offset=page*n". A negative page
// is treated as the first page.
func pageQuery(filter, value string, page, limit, defaultLimit int) string {
	if limit <= 0 {
		limit = defaultLimit
	}
	page = max(page, 0)
	parts := make([]string, 0, 3)
	if filter != "" {
		parts = append(parts, filter+"="+escape(value))
	}
	parts = append(parts,
		"limit="+strconv.Itoa(limit),
		"offset="+strconv.Itoa(page*limit),
	)
	return strings.Join(parts, "&")
}

// Get returns one article.
func (s *ArticlesService) Get(ctx context.Context, slug string) (*conduit.Article, error) {
	return s.article(ctx, http.MethodGet, "/articles/"+escape(slug), nil)
}

// Create publishes a new article as the current user.
func (s *ArticlesService) Create(ctx context.Context, in conduit.NewArticle) (*conduit.Article, error) {
	return s.article(ctx, http.MethodPost, "/articles", conduit.NewArticleRequest{Article: &in})
}

// Update changes an article owned by the current user.
func (s *ArticlesService) Update(ctx context.Context, slug string, patch conduit.UpdateArticle) (*conduit.Article, error) {
	return s.article(ctx, http.MethodPut, "/articles/"+escape(slug), conduit.UpdateArticleRequest{Article: &patch})
}

// Delete removes an article owned by the current user.
func (s *ArticlesService) Delete(ctx context.Context, slug string) error {
	return s.c.do(ctx, http.MethodDelete, "/articles/"+escape(slug), "", nil, nil)
}

// Favorite marks an article as a favorite of the current user.
func (s *ArticlesService) Favorite(ctx context.Context, slug string) (*conduit.Article, error) {
	return s.article(ctx, http.MethodPost, "/articles/"+escape(slug)+"/favorite", nil)
}

// Unfavorite removes the current user's favorite.
func (s *ArticlesService) Unfavorite(ctx context.Context, slug string) (*conduit.Article, error) {
	return s.article(ctx, http.MethodDelete, "/articles/"+escape(slug)+"/favorite", nil)
}

func (s *ArticlesService) article(ctx context.Context, method, path string, body any) (*conduit.Article, error) {
	var out conduit.ArticleResponse
	if err := s.c.do(ctx, method, path, "", body, &out); err != nil {
		return nil, err
	}
	return &out.Article, nil
}
