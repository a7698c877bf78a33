package conduit

// UserResponse wraps a User.
type UserResponse struct {
	User User `json:"user"`
}

// ProfileResponse wraps a Profile.
type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

// ArticleResponse wraps a single Article.
type ArticleResponse struct {
	Article Article `json:"article"`
}

// ArticlesResponse is a page of articles. ArticlesCount is the number of
// articles matching the query before pagination.
type ArticlesResponse struct {
	Articles      []Article `json:"articles"`
	ArticlesCount int       `json:"articlesCount"`
}

// CommentResponse wraps a single Comment.
type CommentResponse struct {
	Comment Comment `json:"comment"`
}

// CommentsResponse wraps a list of comments.
type CommentsResponse struct {
	Comments []Comment `json:"comments"`
}

// TagsResponse wraps the popular tag list.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// ErrorBody is the error envelope: a map of field names to messages.
type ErrorBody struct {
	Errors map[string][]string `json:"errors"`
}

// NewErrorBody returns an ErrorBody with a single field message.
func NewErrorBody(field, message string) ErrorBody {
	return ErrorBody{Errors: map[string][]string{field: {message}}}
}
