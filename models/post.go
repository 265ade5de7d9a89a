package models

import "time"

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type BlogPost struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	Published bool      `json:"published"`
	ViewCount int64     `json:"view_count"`
	TagIDs    []uint    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p BlogPost) Status() PostStatus {
	if p.Published {
		return StatusPublished
	}
	return StatusDraft
}

func (p BlogPost) HasTag(tagID uint) bool {
	for _, id := range p.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// PostPatch changes title, content or the whole tag set. Publish state is
// not part of it; use the publish/unpublish operations.
type PostPatch struct {
	Title   *string
	Content *string
	TagIDs  *[]uint
}

type PostSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	AuthorID     uint      `json:"author_id"`
	Published    bool      `json:"published"`
	TagIDs       []uint    `json:"tags"`
	ViewCount    int64     `json:"view_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CascadeResult reports what a post deletion removed along with the post.
type CascadeResult struct {
	CommentsDeleted int `json:"comments_deleted"`
	TagsUnlinked    int `json:"tags_unlinked"`
}
