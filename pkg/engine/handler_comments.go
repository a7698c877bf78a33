package engine

import (
	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// handleListComments returns an empty list for unknown articles.
func handleListComments(s *Server, q *request) error {
	views := s.store.Comments(q.viewerID(), q.param("slug"))
	out := conduit.CommentsResponse{Comments: make([]conduit.Comment, 0, len(views))}
	for _, c := range views {
		out.Comments = append(out.Comments, toComment(c))
	}
	return q.respond(out)
}

func handleCreateComment(s *Server, q *request) error {
	if err := s.store.CheckArticleExists(q.param("slug")); err != nil {
		return err
	}
	var body conduit.NewCommentRequest
	if err := s.decode(q, &body); err != nil {
		return err
	}
	c, err := s.store.AddComment(q.viewerID(), q.param("slug"), body.Comment.Body)
	if err != nil {
		return err
	}
	return q.respond(conduit.CommentResponse{Comment: toComment(c)})
}

func handleDeleteComment(s *Server, q *request) error {
	if err := s.store.DeleteComment(q.viewerID(), q.param("slug"), q.param("id")); err != nil {
		return err
	}
	return q.respond(struct{}{})
}
