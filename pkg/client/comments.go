package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// CommentsService covers article comments.
type CommentsService struct {
	c *Client
}

// ForArticle lists the comments of an article, newest first.
func (s *CommentsService) ForArticle(ctx context.Context, slug string) ([]conduit.Comment, error) {
	var out conduit.CommentsResponse
	if err := s.c.do(ctx, http.MethodGet, "/articles/"+escape(slug)+"/comments", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// Create adds a comment to an article as the current user.
func (s *CommentsService) Create(ctx context.Context, slug, body string) (*conduit.Comment, error) {
	var out conduit.CommentResponse
	in := conduit.NewCommentRequest{Comment: &conduit.NewComment{Body: body}}
	if err := s.c.do(ctx, http.MethodPost, "/articles/"+escape(slug)+"/comments", "", in, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// Delete removes a comment written by the current user.
func (s *CommentsService) Delete(ctx context.Context, slug string, id int64) error {
	path := "/articles/" + escape(slug) + "/comments/" + strconv.FormatInt(id, 10)
	return s.c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// TagsService covers the popular tag list.
type TagsService struct {
	c *Client
}

// All returns the popular tags.
func (s *TagsService) All(ctx context.Context) ([]string, error) {
	var out conduit.TagsResponse
	if err := s.c.do(ctx, http.MethodGet, "/tags", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}
