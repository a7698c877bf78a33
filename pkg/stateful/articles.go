package stateful

// ListArticles returns one page of the articles matching q, newest first.
func (s *Store) ListArticles(viewerID int64, q ArticleQuery) ArticlePage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	base := make([]*Article, 0, len(s.articles))
	for _, a := range s.articles {
		base = append(base, a)
	}
	return s.page(viewerID, base, q)
}

// Feed returns one page of the articles written by users viewerID follows.
// The tag, author and favorited filters of q still apply.
func (s *Store) Feed(viewerID int64, q ArticleQuery) (ArticlePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.userByID(viewerID); err != nil {
		return ArticlePage{}, err
	}
	followed := s.follows[viewerID]
	base := make([]*Article, 0, len(s.articles))
	for _, a := range s.articles {
		if _, ok := followed[a.AuthorID]; ok {
			base = append(base, a)
		}
	}
	return s.page(viewerID, base, q), nil
}

// page filters, sorts, paginates and personalizes. The caller must hold the lock.
func (s *Store) page(viewerID int64, base []*Article, q ArticleQuery) ArticlePage {
	q = q.normalize()
	filtered := s.filterArticles(base, q)
	sortArticles(filtered)
	items, total := Paginate(filtered, q.Offset, q.Limit)

	views := make([]ArticleView, 0, len(items))
	for _, a := range items {
		views = append(views, s.articleView(viewerID, a))
	}
	return ArticlePage{Articles: views, Total: total}
}

// GetArticle returns the article with the given slug.
func (s *Store) GetArticle(viewerID int64, slug string) (ArticleView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[slug]
	if !ok {
		return ArticleView{}, &NotFoundError{Resource: "article", ID: slug}
	}
	return s.articleView(viewerID, a), nil
}

// CreateArticle stores a new article written by authorID. The slug is the
// slugified title plus a sequence number, so equal titles never collide.
func (s *Store) CreateArticle(authorID int64, in NewArticle) (ArticleView, error) {
	verr := &ValidationError{}
	requireField(verr, "title", in.Title)
	requireField(verr, "description", in.Description)
	requireField(verr, "body", in.Body)
	if !verr.Empty() {
		return ArticleView{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author, err := s.userByID(authorID)
	if err != nil {
		return ArticleView{}, err
	}

	slug := articleSlug(in.Title, s.slugSeq.Next())
	for {
		if _, taken := s.articles[slug]; !taken {
			break
		}
		slug = articleSlug(in.Title, s.slugSeq.Next())
	}

	now := s.now().UTC()
	a := &Article{
		Slug:        slug,
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		TagList:     append([]string{}, in.TagList...),
		CreatedAt:   now,
		UpdatedAt:   now,
		AuthorID:    author.ID,
		Author:      author.snapshot(),
	}
	s.articles[slug] = a
	return s.articleView(authorID, a), nil
}

// CheckArticleOwner reports whether callerID may edit the article: a
// NotFoundError when it does not exist, a ForbiddenError when the caller is
// not its author. Mutations repeat the check under the write lock.
func (s *Store) CheckArticleOwner(callerID int64, slug string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[slug]
	if !ok {
		return &NotFoundError{Resource: "article", ID: slug}
	}
	if a.AuthorID != callerID {
		return &ForbiddenError{Resource: "article", ID: slug}
	}
	return nil
}

// CheckArticleExists returns a NotFoundError for an unknown slug.
func (s *Store) CheckArticleExists(slug string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.articles[slug]; !ok {
		return &NotFoundError{Resource: "article", ID: slug}
	}
	return nil
}

// UpdateArticle merges the supplied fields into the article. Only the
// author may update it. The slug never changes; updatedAt always does.
func (s *Store) UpdateArticle(callerID int64, slug string, p ArticlePatch) (ArticleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(callerID); err != nil {
		return ArticleView{}, err
	}
	a, ok := s.articles[slug]
	if !ok {
		return ArticleView{}, &NotFoundError{Resource: "article", ID: slug}
	}
	if a.AuthorID != callerID {
		return ArticleView{}, &ForbiddenError{Resource: "article", ID: slug}
	}

	verr := &ValidationError{}
	if p.Title != nil {
		requireField(verr, "title", *p.Title)
	}
	if p.Description != nil {
		requireField(verr, "description", *p.Description)
	}
	if p.Body != nil {
		requireField(verr, "body", *p.Body)
	}
	if !verr.Empty() {
		return ArticleView{}, verr
	}

	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
	if p.TagList != nil {
		a.TagList = append([]string{}, (*p.TagList)...)
	}
	a.UpdatedAt = s.now().UTC()
	return s.articleView(callerID, a), nil
}

// DeleteArticle removes the article together with its comments and every
// favorite edge pointing at it. Only the author may delete it.
func (s *Store) DeleteArticle(callerID int64, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByID(callerID); err != nil {
		return err
	}
	a, ok := s.articles[slug]
	if !ok {
		return &NotFoundError{Resource: "article", ID: slug}
	}
	if a.AuthorID != callerID {
		return &ForbiddenError{Resource: "article", ID: slug}
	}

	for _, c := range s.comments[slug] {
		delete(s.commentIndex, c.ID)
	}
	delete(s.comments, slug)
	for _, set := range s.favorites {
		delete(set, slug)
	}
	delete(s.articles, slug)
	return nil
}

func (s *Store) articleView(viewerID int64, a *Article) ArticleView {
	return ArticleView{
		Article:   a.clone(),
		Favorited: s.hasFavorited(viewerID, a.Slug),
		Following: s.isFollowing(viewerID, a.AuthorID),
	}
}
