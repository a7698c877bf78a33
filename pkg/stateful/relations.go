package stateful

// Profile returns the public profile of username as seen by viewerID.
func (s *Store) Profile(viewerID int64, username string) (ProfileView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, ok := s.byUsername[username]
	if !ok {
		return ProfileView{}, &NotFoundError{Resource: "profile", ID: username}
	}
	return s.profileView(viewerID, uid), nil
}

// Follow adds a follow edge from followerID to username. Following an
// already followed user is a no-op. A user cannot follow themselves.
func (s *Store) Follow(followerID int64, username string) (ProfileView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(followerID); err != nil {
		return ProfileView{}, err
	}
	uid, ok := s.byUsername[username]
	if !ok {
		return ProfileView{}, &NotFoundError{Resource: "profile", ID: username}
	}
	if uid == followerID {
		return ProfileView{}, NewValidationError("username", MsgSelfFollow)
	}
	s.addFollow(followerID, uid)
	return s.profileView(followerID, uid), nil
}

// Unfollow removes the follow edge from followerID to username. Removing a
// missing edge is a no-op.
func (s *Store) Unfollow(followerID int64, username string) (ProfileView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(followerID); err != nil {
		return ProfileView{}, err
	}
	uid, ok := s.byUsername[username]
	if !ok {
		return ProfileView{}, &NotFoundError{Resource: "profile", ID: username}
	}
	if set, ok := s.follows[followerID]; ok {
		delete(set, uid)
	}
	return s.profileView(followerID, uid), nil
}

// Favorite adds a favorite edge from uid to the article. The counter grows
// by exactly one when the edge is new.
func (s *Store) Favorite(uid int64, slug string) (ArticleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(uid); err != nil {
		return ArticleView{}, err
	}
	a, ok := s.articles[slug]
	if !ok {
		return ArticleView{}, &NotFoundError{Resource: "article", ID: slug}
	}
	if s.addFavoriteEdge(uid, slug) {
		a.FavoritesCount++
	}
	return s.articleView(uid, a), nil
}

// Unfavorite removes the favorite edge from uid to the article. The counter
// shrinks by one when an edge was removed and never drops below zero.
func (s *Store) Unfavorite(uid int64, slug string) (ArticleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(uid); err != nil {
		return ArticleView{}, err
	}
	a, ok := s.articles[slug]
	if !ok {
		return ArticleView{}, &NotFoundError{Resource: "article", ID: slug}
	}
	if set, ok := s.favorites[uid]; ok {
		if _, had := set[slug]; had {
			delete(set, slug)
			if a.FavoritesCount > 0 {
				a.FavoritesCount--
			}
		}
	}
	return s.articleView(uid, a), nil
}

// addFollow inserts a follow edge. The caller must hold the write lock.
func (s *Store) addFollow(follower, followee int64) {
	set, ok := s.follows[follower]
	if !ok {
		set = make(map[int64]struct{})
		s.follows[follower] = set
	}
	set[followee] = struct{}{}
}

// addFavoriteEdge inserts a favorite edge and reports whether it was new.
// The caller must hold the write lock.
func (s *Store) addFavoriteEdge(uid int64, slug string) bool {
	set, ok := s.favorites[uid]
	if !ok {
		set = make(map[string]struct{})
		s.favorites[uid] = set
	}
	if _, exists := set[slug]; exists {
		return false
	}
	set[slug] = struct{}{}
	return true
}

func (s *Store) isFollowing(viewerID, uid int64) bool {
	if viewerID == 0 {
		return false
	}
	_, ok := s.follows[viewerID][uid]
	return ok
}

func (s *Store) hasFavorited(viewerID int64, slug string) bool {
	if viewerID == 0 {
		return false
	}
	_, ok := s.favorites[viewerID][slug]
	return ok
}

func (s *Store) profileView(viewerID, uid int64) ProfileView {
	u := s.users[uid]
	return ProfileView{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: s.isFollowing(viewerID, uid),
	}
}
