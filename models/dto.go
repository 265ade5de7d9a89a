package models

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=100"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content" validate:"required,min=1"`
	AuthorID  uint   `json:"author_id" validate:"required,gt=0"`
	Published bool   `json:"published"`
	Tags      []uint `json:"tags" validate:"omitempty,dive,gt=0"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Tags    *[]uint `json:"tags" validate:"omitempty,dive,gt=0"`
}

type CreateCommentRequest struct {
	PostID   uint   `json:"post_id" validate:"required,gt=0"`
	AuthorID uint   `json:"author_id" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required,min=1,max=1000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type UpdateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type PostListParams struct {
	PublishedOnly bool `form:"published_only"`
}

type PostQueryParams struct {
	IncrementViews bool `form:"increment_views,default=true"`
}

type RankingParams struct {
	Limit int `form:"limit,default=5" validate:"min=1,max=20"`
}

type SearchParams struct {
	Q string `form:"q" validate:"required,min=1"`
}

type LookupParams struct {
	Username string `form:"username"`
	Slug     string `form:"slug"`
}
