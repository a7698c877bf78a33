package stateful

import "strconv"

// Comments returns the comments of an article, newest first. A missing
// article has no comments.
func (s *Store) Comments(viewerID int64, slug string) []CommentView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.comments[slug]
	views := make([]CommentView, 0, len(list))
	for _, c := range list {
		views = append(views, s.commentView(viewerID, c))
	}
	return views
}

// AddComment stores a new comment by authorID on the article. Ids come from
// a process-wide sequence that continues after the highest seeded id.
func (s *Store) AddComment(authorID int64, slug, body string) (CommentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, err := s.userByID(authorID)
	if err != nil {
		return CommentView{}, err
	}
	if _, ok := s.articles[slug]; !ok {
		return CommentView{}, &NotFoundError{Resource: "article", ID: slug}
	}
	verr := &ValidationError{}
	requireField(verr, "body", body)
	if !verr.Empty() {
		return CommentView{}, verr
	}

	now := s.now().UTC()
	c := &Comment{
		ID:          s.commentSeq.Next(),
		ArticleSlug: slug,
		Body:        body,
		CreatedAt:   now,
		UpdatedAt:   now,
		AuthorID:    author.ID,
		Author:      author.snapshot(),
	}
	s.comments[slug] = append([]*Comment{c}, s.comments[slug]...)
	s.commentIndex[c.ID] = c
	return s.commentView(authorID, c), nil
}

// DeleteComment removes a comment from the article. rawID is the id path
// segment; a non-numeric id is reported as not found. Only the comment's
// author may delete it.
func (s *Store) DeleteComment(callerID int64, slug, rawID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(callerID); err != nil {
		return err
	}
	if _, ok := s.articles[slug]; !ok {
		return &NotFoundError{Resource: "article", ID: slug}
	}
	cid, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return &NotFoundError{Resource: "comment", ID: rawID}
	}
	c, ok := s.commentIndex[cid]
	if !ok || c.ArticleSlug != slug {
		return &NotFoundError{Resource: "comment", ID: rawID}
	}
	if c.AuthorID != callerID {
		return &ForbiddenError{Resource: "comment", ID: rawID}
	}

	list := s.comments[slug]
	for i, item := range list {
		if item.ID == cid {
			s.comments[slug] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	delete(s.commentIndex, cid)
	return nil
}

func (s *Store) commentView(viewerID int64, c *Comment) CommentView {
	return CommentView{
		Comment:   *c,
		Following: s.isFollowing(viewerID, c.AuthorID),
	}
}
