package repositories

import (
	"strings"

	"blog-api/models"
)

type CommentRepository interface {
	Create(comment models.Comment) (*models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	GetAll() ([]models.Comment, error)
	Update(id uint, patch models.CommentPatch) (*models.Comment, error)
	Delete(id uint) error
}

type commentRepository struct {
	store *Store
}

func NewCommentRepository(store *Store) CommentRepository {
	return &commentRepository{store: store}
}

func (r *commentRepository) Create(comment models.Comment) (*models.Comment, error) {
	if strings.TrimSpace(comment.Content) == "" {
		return nil, models.NewValidation("content", "must not be empty")
	}

	var created models.Comment
	err := r.store.write(func(st *state) error {
		if _, ok := st.posts[comment.PostID]; !ok {
			return models.NewNotFound("post", comment.PostID)
		}
		if _, ok := st.users[comment.AuthorID]; !ok {
			return models.NewNotFound("user", comment.AuthorID)
		}

		comment.ID = st.nextCommentID
		st.nextCommentID++
		comment.CreatedAt = r.store.now()
		comment.UpdatedAt = comment.CreatedAt

		st.comments[comment.ID] = comment
		link(st.commentsByPost, comment.PostID, comment.ID)
		link(st.commentsByAuthor, comment.AuthorID, comment.ID)
		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.store.read(func(st *state) error {
		c, ok := st.comments[id]
		if !ok {
			return models.NewNotFound("comment", id)
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetAll() ([]models.Comment, error) {
	var comments []models.Comment
	err := r.store.read(func(st *state) error {
		comments = make([]models.Comment, 0, len(st.comments))
		for _, id := range sortedKeys(st.comments) {
			comments = append(comments, st.comments[id])
		}
		return nil
	})
	return comments, err
}

func (r *commentRepository) Update(id uint, patch models.CommentPatch) (*models.Comment, error) {
	var updated models.Comment
	err := r.store.write(func(st *state) error {
		comment, ok := st.comments[id]
		if !ok {
			return models.NewNotFound("comment", id)
		}
		if patch.Content != nil {
			if strings.TrimSpace(*patch.Content) == "" {
				return models.NewValidation("content", "must not be empty")
			}
			comment.Content = *patch.Content
		}
		comment.UpdatedAt = r.store.touch(comment.CreatedAt)
		st.comments[id] = comment
		updated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *commentRepository) Delete(id uint) error {
	return r.store.write(func(st *state) error {
		comment, ok := st.comments[id]
		if !ok {
			return models.NewNotFound("comment", id)
		}
		unlink(st.commentsByPost, comment.PostID, id)
		unlink(st.commentsByAuthor, comment.AuthorID, id)
		delete(st.comments, id)
		return nil
	})
}
