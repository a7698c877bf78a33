package engine

import (
	"github.com/civiclens/conduit-mock/pkg/conduit"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

func toUser(u stateful.User) conduit.User {
	return conduit.User{
		Email:    u.Email,
		Token:    u.Token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}
}

func toProfile(p stateful.ProfileView) conduit.Profile {
	return conduit.Profile{
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     p.Image,
		Following: p.Following,
	}
}

func toArticle(a stateful.ArticleView) conduit.Article {
	tags := a.TagList
	if tags == nil {
		tags = []string{}
	}
	return conduit.Article{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tags,
		CreatedAt:      conduit.NewTimestamp(a.CreatedAt),
		UpdatedAt:      conduit.NewTimestamp(a.UpdatedAt),
		Favorited:      a.Favorited,
		FavoritesCount: a.FavoritesCount,
		Author: conduit.Profile{
			Username:  a.Author.Username,
			Bio:       a.Author.Bio,
			Image:     a.Author.Image,
			Following: a.Following,
		},
	}
}

func toArticles(page stateful.ArticlePage) conduit.ArticlesResponse {
	out := conduit.ArticlesResponse{
		Articles:      make([]conduit.Article, 0, len(page.Articles)),
		ArticlesCount: page.Total,
	}
	for _, a := range page.Articles {
		out.Articles = append(out.Articles, toArticle(a))
	}
	return out
}

func toComment(c stateful.CommentView) conduit.Comment {
	return conduit.Comment{
		ID:        c.ID,
		CreatedAt: conduit.NewTimestamp(c.CreatedAt),
		UpdatedAt: conduit.NewTimestamp(c.UpdatedAt),
		Body:      c.Body,
		Author: conduit.Profile{
			Username:  c.Author.Username,
			Bio:       c.Author.Bio,
			Image:     c.Author.Image,
			Following: c.Following,
		},
	}
}
