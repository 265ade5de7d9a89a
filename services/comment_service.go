package services

import (
	"blog-api/models"
	"blog-api/repositories"

	"github.com/sirupsen/logrus"
)

type CommentService interface {
	CreateComment(req models.CreateCommentRequest) (*models.Comment, error)
	GetComment(id uint) (*models.Comment, error)
	GetComments() ([]models.Comment, error)
	GetCommentsByPost(postID uint) ([]models.Comment, error)
	UpdateComment(id uint, req models.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(id uint) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	queryRepo   repositories.QueryRepository
	log         logrus.FieldLogger
}

func NewCommentService(commentRepo repositories.CommentRepository, queryRepo repositories.QueryRepository, log logrus.FieldLogger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		queryRepo:   queryRepo,
		log:         log,
	}
}

// CreateComment fails with a not-found error naming the post or the author,
// whichever is missing. The post is checked first.
func (s *commentService) CreateComment(req models.CreateCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.Create(models.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		return nil, observe("comment.create", err)
	}
	observe("comment.create", nil)
	s.log.WithFields(logrus.Fields{"comment_id": comment.ID, "post_id": comment.PostID}).Debug("comment created")
	return comment, nil
}

func (s *commentService) GetComment(id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	return comment, observe("comment.get", err)
}

func (s *commentService) GetComments() ([]models.Comment, error) {
	comments, err := s.commentRepo.GetAll()
	return comments, observe("comment.list", err)
}

func (s *commentService) GetCommentsByPost(postID uint) ([]models.Comment, error) {
	comments, err := s.queryRepo.CommentsByPost(postID)
	return comments, observe("comment.by_post", err)
}

func (s *commentService) UpdateComment(id uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.Update(id, models.CommentPatch{Content: &req.Content})
	return comment, observe("comment.update", err)
}

func (s *commentService) DeleteComment(id uint) error {
	if err := s.commentRepo.Delete(id); err != nil {
		return observe("comment.delete", err)
	}
	observe("comment.delete", nil)
	s.log.WithField("comment_id", id).Debug("comment deleted")
	return nil
}
