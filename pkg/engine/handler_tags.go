package engine

import "github.com/civiclens/conduit-mock/pkg/conduit"

func handleTags(s *Server, q *request) error {
	return q.respond(conduit.TagsResponse{Tags: s.store.PopularTags()})
}
