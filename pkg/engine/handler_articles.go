package engine

import (
	"net/url"
	"strconv"

	"github.com/civiclens/conduit-mock/pkg/conduit"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

// parseArticleQuery reads the listing filters. Unparseable or negative
// limit and offset values are ignored and fall back to the defaults.
// An explicit limit=0 asks for the count alone and is reported as zeroLimit.
func parseArticleQuery(v url.Values) (q stateful.ArticleQuery, zeroLimit bool) {
	q = stateful.ArticleQuery{
		Tag:       v.Get("tag"),
		Author:    v.Get("author"),
		Favorited: v.Get("favorited"),
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil {
		zeroLimit = n == 0
		if n > 0 {
			q.Limit = n
		}
	}
	if n, err := strconv.Atoi(v.Get("offset")); err == nil {
		q.Offset = n
	}
	return q, zeroLimit
}

// pageOf renders a page, dropping the articles when the caller asked for
// limit=0 while keeping articlesCount.
func pageOf(page stateful.ArticlePage, zeroLimit bool) conduit.ArticlesResponse {
	if zeroLimit {
		page.Articles = nil
	}
	return toArticles(page)
}

func handleListArticles(s *Server, q *request) error {
	query, zeroLimit := parseArticleQuery(q.r.URL.Query())
	page := s.store.ListArticles(q.viewerID(), query)
	return q.respond(pageOf(page, zeroLimit))
}

func handleFeed(s *Server, q *request) error {
	query, zeroLimit := parseArticleQuery(q.r.URL.Query())
	page, err := s.store.Feed(q.viewerID(), query)
	if err != nil {
		return err
	}
	return q.respond(pageOf(page, zeroLimit))
}

func handleGetArticle(s *Server, q *request) error {
	a, err := s.store.GetArticle(q.viewerID(), q.param("slug"))
	if err != nil {
		return err
	}
	return q.respond(conduit.ArticleResponse{Article: toArticle(a)})
}

func handleCreateArticle(s *Server, q *request) error {
	var body conduit.NewArticleRequest
	if err := s.decode(q, &body); err != nil {
		return err
	}
	in := body.Article
	a, err := s.store.CreateArticle(q.viewerID(), stateful.NewArticle{
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		TagList:     in.TagList,
	})
	if err != nil {
		return err
	}
	s.logger(q.r).Info("article created", "slug", a.Slug, "author", a.Author.Username)
	return q.respond(conduit.ArticleResponse{Article: toArticle(a)})
}

func handleUpdateArticle(s *Server, q *request) error {
	if err := s.store.CheckArticleOwner(q.viewerID(), q.param("slug")); err != nil {
		return err
	}
	var body conduit.UpdateArticleRequest
	if err := s.decode(q, &body); err != nil {
		return err
	}
	in := body.Article
	a, err := s.store.UpdateArticle(q.viewerID(), q.param("slug"), stateful.ArticlePatch{
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		TagList:     in.TagList,
	})
	if err != nil {
		return err
	}
	return q.respond(conduit.ArticleResponse{Article: toArticle(a)})
}

func handleDeleteArticle(s *Server, q *request) error {
	slug := q.param("slug")
	if err := s.store.DeleteArticle(q.viewerID(), slug); err != nil {
		return err
	}
	s.logger(q.r).Info("article deleted", "slug", slug)
	return q.respond(struct{}{})
}

func handleFavorite(s *Server, q *request) error {
	a, err := s.store.Favorite(q.viewerID(), q.param("slug"))
	if err != nil {
		return err
	}
	return q.respond(conduit.ArticleResponse{Article: toArticle(a)})
}

func handleUnfavorite(s *Server, q *request) error {
	a, err := s.store.Unfavorite(q.viewerID(), q.param("slug"))
	if err != nil {
		return err
	}
	return q.respond(conduit.ArticleResponse{Article: toArticle(a)})
}
