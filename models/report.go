package models

import "time"

// Report* rows are the Postgres reporting copy of a store snapshot. The
// entity tables are replaced on every export; report_snapshots keeps history.

type ReportUser struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false"`
	Username  string `gorm:"not null;uniqueIndex"`
	Email     string `gorm:"not null"`
	FullName  string
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ReportUser) TableName() string { return "report_users" }

type ReportPost struct {
	ID           uint   `gorm:"primaryKey;autoIncrement:false"`
	Title        string `gorm:"not null"`
	Content      string `gorm:"type:text"`
	AuthorID     uint   `gorm:"not null;index"`
	Published    bool   `gorm:"not null;index"`
	ViewCount    int64  `gorm:"not null"`
	CommentCount int    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ReportPost) TableName() string { return "report_posts" }

type ReportComment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement:false"`
	PostID    uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReportComment) TableName() string { return "report_comments" }

type ReportTag struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"not null"`
	Slug string `gorm:"not null;index"`
}

func (ReportTag) TableName() string { return "report_tags" }

type ReportPostTag struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false"`
}

func (ReportPostTag) TableName() string { return "report_post_tags" }

type ReportSnapshot struct {
	ID                  uint      `json:"id" gorm:"primarykey"`
	TakenAt             time.Time `json:"taken_at" gorm:"not null;index"`
	TotalUsers          int       `json:"total_users"`
	TotalPosts          int       `json:"total_posts"`
	TotalPublishedPosts int       `json:"total_published_posts"`
	TotalComments       int       `json:"total_comments"`
	TotalTags           int       `json:"total_tags"`
	TotalViews          int64     `json:"total_views"`
	CreatedAt           time.Time `json:"created_at"`
}

func (ReportSnapshot) TableName() string { return "report_snapshots" }
