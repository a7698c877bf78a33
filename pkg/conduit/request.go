package conduit

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	User *LoginUser `json:"user" validate:"required"`
}

// LoginUser holds login credentials.
type LoginUser struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	User *NewUser `json:"user" validate:"required"`
}

// NewUser holds registration fields.
type NewUser struct {
	Username string `json:"username" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

// UpdateUserRequest is the body of PUT /user.
type UpdateUserRequest struct {
	User *UpdateUser `json:"user" validate:"required"`
}

// UpdateUser holds the user fields to change. Nil fields are left as is.
type UpdateUser struct {
	Email    *string `json:"email,omitempty" validate:"omitnil,notblank,email"`
	Username *string `json:"username,omitempty" validate:"omitnil,notblank"`
	Password *string `json:"password,omitempty" validate:"omitnil,notblank"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// NewArticleRequest is the body of POST /articles.
type NewArticleRequest struct {
	Article *NewArticle `json:"article" validate:"required"`
}

// NewArticle holds the fields of an article to create.
type NewArticle struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Body        string   `json:"body" validate:"notblank"`
	TagList     []string `json:"tagList,omitempty"`
}

// UpdateArticleRequest is the body of PUT /articles/:slug.
type UpdateArticleRequest struct {
	Article *UpdateArticle `json:"article" validate:"required"`
}

// UpdateArticle holds the article fields to change. Nil fields are left as is.
type UpdateArticle struct {
	Title       *string   `json:"title,omitempty" validate:"omitnil,notblank"`
	Description *string   `json:"description,omitempty" validate:"omitnil,notblank"`
	Body        *string   `json:"body,omitempty" validate:"omitnil,notblank"`
	TagList     *[]string `json:"tagList,omitempty"`
}

// NewCommentRequest is the body of POST /articles/:slug/comments.
type NewCommentRequest struct {
	Comment *NewComment `json:"comment" validate:"required"`
}

// NewComment holds the body of a comment to create.
type NewComment struct {
	Body string `json:"body" validate:"notblank"`
}
