// Package stateful holds the in-memory entity stores of the mock backend.
//
// A Store owns every collection the API exposes (users, articles, comments,
// follow edges, favorite edges and the static tag list) and implements the
// operations the HTTP handlers perform on them:
//
//   - Users: Register, Login, UserByToken, UpdateUser, Profile, Follow, Unfollow
//   - Articles: ListArticles, Feed, GetArticle, CreateArticle, UpdateArticle,
//     DeleteArticle, Favorite, Unfavorite
//   - Comments: Comments, AddComment, DeleteComment
//   - Tags: PopularTags
//   - State management: Reset, Overview
//
// Thread Safety:
//
// A single sync.RWMutex guards all collections. Every operation runs in one
// critical section, so existence and ownership checks always see the same
// state the mutation is applied to. An article delete removes the article,
// its comments and its favorite edges in one step.
//
// Identity:
//
// Users carry an internal numeric ID that never leaves the process. Edges
// and ownership are keyed by this ID, so renaming a user keeps their
// follows, favorites and authorship intact. Articles and comments store an
// AuthorSnapshot captured at write time; later profile edits do not touch it.
//
// Viewer-relative fields (Favorited, Following) are computed per call from
// the edge sets. A zero viewer ID is an anonymous caller.
//
// Usage:
//
//	store, err := stateful.New(config.MustDefaultSeed())
//	page := store.ListArticles(0, stateful.ArticleQuery{Tag: "democracy"})
//	view, err := store.Favorite(userID, page.Articles[0].Slug)
//	store.Reset()
package stateful
