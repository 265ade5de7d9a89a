package models

import "time"

type Statistics struct {
	TotalUsers          int   `json:"total_users"`
	TotalPosts          int   `json:"total_posts"`
	TotalPublishedPosts int   `json:"total_published_posts"`
	TotalComments       int   `json:"total_comments"`
	TotalTags           int   `json:"total_tags"`
	TotalViews          int64 `json:"total_views"`
}

// Snapshot is a point-in-time copy of every entity in the store.
type Snapshot struct {
	TakenAt  time.Time
	Users    []User
	Posts    []BlogPost
	Comments []Comment
	Tags     []Tag
}
