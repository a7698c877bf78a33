package stateful

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a shared validator instance for single-value checks.
var validate = validator.New()

// DefaultAvatarURL is the avatar given to newly registered users. The
// username is appended as the seed.
const DefaultAvatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// Register creates a new user. Email and username must both be unused;
// both checks run before anything is written.
func (s *Store) Register(in NewUser) (User, error) {
	verr := &ValidationError{}
	requireField(verr, "username", in.Username)
	requireField(verr, "email", in.Email)
	requireField(verr, "password", in.Password)
	if strings.TrimSpace(in.Email) != "" && !validEmail(in.Email) {
		verr.Add("email", MsgInvalid)
	}
	if !verr.Empty() {
		return User{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[in.Email]; taken {
		return User{}, &ConflictError{Field: "email", Value: in.Email}
	}
	if _, taken := s.byUsername[in.Username]; taken {
		return User{}, &ConflictError{Field: "username", Value: in.Username}
	}

	token := s.newToken()
	for {
		if _, clash := s.byToken[token]; !clash {
			break
		}
		token = s.newToken()
	}

	u := &User{
		ID:       s.userSeq.Next(),
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
		Token:    token,
		Image:    DefaultAvatarURL + in.Username,
	}
	s.insertUser(u)
	return *u, nil
}

// Login returns the user whose email and password both match exactly.
func (s *Store) Login(email, password string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, ok := s.byEmail[email]
	if !ok || s.users[uid].Password != password {
		return User{}, NewValidationError(FieldCredentials, MsgInvalid)
	}
	return *s.users[uid], nil
}

// UserByToken resolves an opaque token. It reports false when no user
// holds the token.
func (s *Store) UserByToken(token string) (User, bool) {
	if token == "" {
		return User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, ok := s.byToken[token]
	if !ok {
		return User{}, false
	}
	return *s.users[uid], true
}

// UpdateUser merges the supplied fields into the user. Email and username
// stay unique; the token does not change. Snapshots already stored on
// articles and comments are left untouched.
func (s *Store) UpdateUser(uid int64, p UserPatch) (User, error) {
	verr := &ValidationError{}
	if p.Email != nil {
		requireField(verr, "email", *p.Email)
		if strings.TrimSpace(*p.Email) != "" && !validEmail(*p.Email) {
			verr.Add("email", MsgInvalid)
		}
	}
	if p.Username != nil {
		requireField(verr, "username", *p.Username)
	}
	if p.Password != nil {
		requireField(verr, "password", *p.Password)
	}
	if !verr.Empty() {
		return User{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.userByID(uid)
	if err != nil {
		return User{}, err
	}

	if p.Email != nil && *p.Email != u.Email {
		if _, taken := s.byEmail[*p.Email]; taken {
			return User{}, &ConflictError{Field: "email", Value: *p.Email}
		}
	}
	if p.Username != nil && *p.Username != u.Username {
		if _, taken := s.byUsername[*p.Username]; taken {
			return User{}, &ConflictError{Field: "username", Value: *p.Username}
		}
	}

	if p.Email != nil {
		delete(s.byEmail, u.Email)
		u.Email = *p.Email
		s.byEmail[u.Email] = u.ID
	}
	if p.Username != nil {
		delete(s.byUsername, u.Username)
		u.Username = *p.Username
		s.byUsername[u.Username] = u.ID
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
	return *u, nil
}

// insertUser adds u to every index. The caller must hold the write lock.
func (s *Store) insertUser(u *User) {
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	s.byUsername[u.Username] = u.ID
	s.byToken[u.Token] = u.ID
}

func requireField(verr *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, MsgBlank)
	}
}

func validEmail(v string) bool {
	return validate.Var(v, "email") == nil
}
