package repositories

import (
	"context"
	"fmt"

	"blog-api/models"

	"gorm.io/gorm"
)

const reportBatchSize = 500

type ReportRepository interface {
	Migrate() error
	Export(ctx context.Context, snap models.Snapshot) (*models.ReportSnapshot, error)
	Latest(ctx context.Context) (*models.ReportSnapshot, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Migrate() error {
	return r.db.AutoMigrate(
		&models.ReportUser{},
		&models.ReportPost{},
		&models.ReportComment{},
		&models.ReportTag{},
		&models.ReportPostTag{},
		&models.ReportSnapshot{},
	)
}

// ReportRows is a snapshot flattened into reporting rows.
type ReportRows struct {
	Users    []models.ReportUser
	Posts    []models.ReportPost
	Comments []models.ReportComment
	Tags     []models.ReportTag
	PostTags []models.ReportPostTag
	Summary  models.ReportSnapshot
}

func NewReportRows(snap models.Snapshot) ReportRows {
	rows := ReportRows{
		Users:    make([]models.ReportUser, 0, len(snap.Users)),
		Posts:    make([]models.ReportPost, 0, len(snap.Posts)),
		Comments: make([]models.ReportComment, 0, len(snap.Comments)),
		Tags:     make([]models.ReportTag, 0, len(snap.Tags)),
	}

	commentCounts := make(map[uint]int, len(snap.Posts))
	for _, c := range snap.Comments {
		commentCounts[c.PostID]++
		rows.Comments = append(rows.Comments, models.ReportComment{
			ID:        c.ID,
			PostID:    c.PostID,
			AuthorID:  c.AuthorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	for _, u := range snap.Users {
		rows.Users = append(rows.Users, models.ReportUser{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			FullName:  u.FullName,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	for _, t := range snap.Tags {
		rows.Tags = append(rows.Tags, models.ReportTag{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	rows.Summary = models.ReportSnapshot{
		TakenAt:       snap.TakenAt,
		TotalUsers:    len(snap.Users),
		TotalPosts:    len(snap.Posts),
		TotalComments: len(snap.Comments),
		TotalTags:     len(snap.Tags),
	}
	for _, p := range snap.Posts {
		rows.Posts = append(rows.Posts, models.ReportPost{
			ID:           p.ID,
			Title:        p.Title,
			Content:      p.Content,
			AuthorID:     p.AuthorID,
			Published:    p.Published,
			ViewCount:    p.ViewCount,
			CommentCount: commentCounts[p.ID],
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
		for _, tagID := range p.TagIDs {
			rows.PostTags = append(rows.PostTags, models.ReportPostTag{PostID: p.ID, TagID: tagID})
		}
		if p.Published {
			rows.Summary.TotalPublishedPosts++
		}
		rows.Summary.TotalViews += p.ViewCount
	}
	return rows
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, reportBatchSize).Error
}

// Export replaces the reporting tables with snap and appends a summary row,
// all in one transaction.
func (r *reportRepository) Export(ctx context.Context, snap models.Snapshot) (*models.ReportSnapshot, error) {
	rows := NewReportRows(snap)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&models.ReportPostTag{}, &models.ReportComment{}, &models.ReportPost{}, &models.ReportTag{}, &models.ReportUser{}} {
			if err := wipe.Delete(model).Error; err != nil {
				return fmt.Errorf("clear report table: %w", err)
			}
		}
		if err := createAll(tx, rows.Users); err != nil {
			return fmt.Errorf("export users: %w", err)
		}
		if err := createAll(tx, rows.Tags); err != nil {
			return fmt.Errorf("export tags: %w", err)
		}
		if err := createAll(tx, rows.Posts); err != nil {
			return fmt.Errorf("export posts: %w", err)
		}
		if err := createAll(tx, rows.PostTags); err != nil {
			return fmt.Errorf("export post tags: %w", err)
		}
		if err := createAll(tx, rows.Comments); err != nil {
			return fmt.Errorf("export comments: %w", err)
		}
		return tx.Create(&rows.Summary).Error
	})
	if err != nil {
		return nil, err
	}
	return &rows.Summary, nil
}

func (r *reportRepository) Latest(ctx context.Context) (*models.ReportSnapshot, error) {
	var snap models.ReportSnapshot
	err := r.db.WithContext(ctx).Order("taken_at desc").Order("id desc").First(&snap).Error
	return &snap, err
}
