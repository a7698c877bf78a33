package stateful

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/civiclens/conduit-mock/internal/id"
	"github.com/civiclens/conduit-mock/pkg/config"
)

// Store is the container for every entity collection.
type Store struct {
	mu sync.RWMutex

	seed     *config.Seed
	now      func() time.Time
	newToken func() string

	users      map[int64]*User
	byEmail    map[string]int64
	byUsername map[string]int64
	byToken    map[string]int64

	articles map[string]*Article
	// comments holds each article's comments, newest first.
	comments     map[string][]*Comment
	commentIndex map[int64]*Comment

	follows   map[int64]map[int64]struct{}
	favorites map[int64]map[string]struct{}
	tags      []string

	userSeq    *id.Sequence
	slugSeq    *id.Sequence
	commentSeq *id.Sequence
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTokenGenerator sets the function that issues tokens on registration.
func WithTokenGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newToken = gen
		}
	}
}

// New creates a Store populated from seed. A nil seed yields an empty store.
func New(seed *config.Seed, opts ...Option) (*Store, error) {
	if seed == nil {
		seed = &config.Seed{}
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	s := &Store{
		seed:       seed,
		now:        time.Now,
		newToken:   id.Token,
		userSeq:    id.NewSequence(0),
		slugSeq:    id.NewSequence(0),
		commentSeq: id.NewSequence(0),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s, nil
}

// Reset restores the seed state. Comment ids and slug suffixes keep
// increasing across resets.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
}

// Overview returns the size of each collection.
func (s *Store) Overview() StateOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := StateOverview{
		Users:    len(s.users),
		Articles: len(s.articles),
		Comments: len(s.commentIndex),
		Tags:     len(s.tags),
	}
	for _, set := range s.follows {
		o.Follows += len(set)
	}
	for _, set := range s.favorites {
		o.Favorites += len(set)
	}
	return o
}

// load replaces every collection with the seed contents. The caller must
// hold the write lock. The seed has already passed Validate.
func (s *Store) load() {
	seed := s.seed

	s.users = make(map[int64]*User, len(seed.Users))
	s.byEmail = make(map[string]int64, len(seed.Users))
	s.byUsername = make(map[string]int64, len(seed.Users))
	s.byToken = make(map[string]int64, len(seed.Users))
	s.articles = make(map[string]*Article, len(seed.Articles))
	s.comments = make(map[string][]*Comment)
	s.commentIndex = make(map[int64]*Comment, len(seed.Comments))
	s.follows = make(map[int64]map[int64]struct{})
	s.favorites = make(map[int64]map[string]struct{})
	s.tags = append([]string(nil), seed.Tags...)

	s.userSeq = id.NewSequence(0)
	for _, su := range seed.Users {
		s.insertUser(&User{
			ID:       s.userSeq.Next(),
			Email:    su.Email,
			Username: su.Username,
			Password: su.Password,
			Token:    su.Token,
			Bio:      su.Bio,
			Image:    su.Image,
		})
	}

	for _, sa := range seed.Articles {
		author := s.users[s.byUsername[sa.Author.Username]]
		updated := sa.UpdatedAt
		if updated.IsZero() {
			updated = sa.CreatedAt
		}
		s.articles[sa.Slug] = &Article{
			Slug:           sa.Slug,
			Title:          sa.Title,
			Description:    sa.Description,
			Body:           sa.Body,
			TagList:        append([]string{}, sa.TagList...),
			CreatedAt:      sa.CreatedAt.UTC(),
			UpdatedAt:      updated.UTC(),
			FavoritesCount: sa.FavoritesCount,
			AuthorID:       author.ID,
			Author:         seedSnapshot(sa.Author, author),
		}
	}
	s.slugSeq.Advance(int64(len(seed.Articles)))

	for _, sc := range seed.Comments {
		author := s.users[s.byUsername[sc.Author.Username]]
		updated := sc.UpdatedAt
		if updated.IsZero() {
			updated = sc.CreatedAt
		}
		c := &Comment{
			ID:          sc.ID,
			ArticleSlug: sc.Article,
			Body:        sc.Body,
			CreatedAt:   sc.CreatedAt.UTC(),
			UpdatedAt:   updated.UTC(),
			AuthorID:    author.ID,
			Author:      seedSnapshot(sc.Author, author),
		}
		s.comments[c.ArticleSlug] = append(s.comments[c.ArticleSlug], c)
		s.commentIndex[c.ID] = c
	}
	for _, list := range s.comments {
		sortComments(list)
	}
	s.commentSeq.Advance(seed.MaxCommentID())

	for follower, followees := range seed.Follows {
		fid := s.byUsername[follower]
		for _, followee := range followees {
			s.addFollow(fid, s.byUsername[followee])
		}
	}
	for username, slugs := range seed.Favorites {
		uid := s.byUsername[username]
		for _, slug := range slugs {
			s.addFavoriteEdge(uid, slug)
		}
	}
}

func seedSnapshot(a config.SeedAuthor, u *User) AuthorSnapshot {
	snap := u.snapshot()
	if a.Bio != "" {
		snap.Bio = a.Bio
	}
	if a.Image != "" {
		snap.Image = a.Image
	}
	return snap
}

func sortComments(list []*Comment) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

// userByID returns the user with the given id. The caller must hold the lock.
func (s *Store) userByID(uid int64) (*User, error) {
	u, ok := s.users[uid]
	if !ok {
		return nil, &UnauthorizedError{}
	}
	return u, nil
}
