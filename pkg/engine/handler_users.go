package engine

import (
	"github.com/civiclens/conduit-mock/pkg/conduit"
	"github.com/civiclens/conduit-mock/pkg/stateful"
)

func handleLogin(s *Server, q *request) error {
	var body conduit.LoginRequest
	if err := s.decode(q, &body); err != nil {
		return err
	}
	u, err := s.store.Login(body.User.Email, body.User.Password)
	if err != nil {
		return err
	}
	return q.respond(conduit.UserResponse{User: toUser(u)})
}

func handleRegister(s *Server, q *request) error {
	var body conduit.RegisterRequest
	if err := s.decode(q, &body); err != nil {
		return err
	}
	u, err := s.store.Register(stateful.NewUser{
		Username: body.User.Username,
		Email:    body.User.Email,
		Password: body.User.Password,
	})
	if err != nil {
		return err
	}
	s.logger(q.r).Info("user registered", "username", u.Username)
	return q.respond(conduit.UserResponse{User: toUser(u)})
}

func handleCurrentUser(_ *Server, q *request) error {
	return q.respond(conduit.UserResponse{User: toUser(*q.user)})
}

func handleUpdateUser(s *Server, q *request) error {
	var body conduit.UpdateUserRequest
	if err := s.decode(q, &body); err != nil {
		return err
	}
	in := body.User
	u, err := s.store.UpdateUser(q.viewerID(), stateful.UserPatch{
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
		Bio:      in.Bio,
		Image:    in.Image,
	})
	if err != nil {
		return err
	}
	return q.respond(conduit.UserResponse{User: toUser(u)})
}
