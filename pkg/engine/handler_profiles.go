package engine

import "github.com/civiclens/conduit-mock/pkg/conduit"

func handleGetProfile(s *Server, q *request) error {
	p, err := s.store.Profile(q.viewerID(), q.param("username"))
	if err != nil {
		return err
	}
	return q.respond(conduit.ProfileResponse{Profile: toProfile(p)})
}

func handleFollow(s *Server, q *request) error {
	p, err := s.store.Follow(q.viewerID(), q.param("username"))
	if err != nil {
		return err
	}
	return q.respond(conduit.ProfileResponse{Profile: toProfile(p)})
}

func handleUnfollow(s *Server, q *request) error {
	p, err := s.store.Unfollow(q.viewerID(), q.param("username"))
	if err != nil {
		return err
	}
	return q.respond(conduit.ProfileResponse{Profile: toProfile(p)})
}
