package services

import (
	"blog-api/models"
	"blog-api/repositories"

	"github.com/sirupsen/logrus"
)

type TagService interface {
	CreateTag(req models.CreateTagRequest) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
	GetTagBySlug(slug string) (*models.Tag, error)
	UpdateTag(id uint, req models.UpdateTagRequest) (*models.Tag, error)
	DeleteTag(id uint) (int, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
	log     logrus.FieldLogger
}

func NewTagService(tagRepo repositories.TagRepository, log logrus.FieldLogger) TagService {
	return &tagService{
		tagRepo: tagRepo,
		log:     log,
	}
}

// CreateTag rejects names that differ from an existing tag only by case.
func (s *tagService) CreateTag(req models.CreateTagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.Create(models.Tag{Name: req.Name})
	if err != nil {
		return nil, observe("tag.create", err)
	}
	observe("tag.create", nil)
	s.log.WithFields(logrus.Fields{"tag_id": tag.ID, "slug": tag.Slug}).Info("tag created")
	return tag, nil
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.GetAll()
	return tags, observe("tag.list", err)
}

func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	return tag, observe("tag.get", err)
}

func (s *tagService) GetTagBySlug(slug string) (*models.Tag, error) {
	tag, err := s.tagRepo.GetBySlug(slug)
	return tag, observe("tag.get_by_slug", err)
}

func (s *tagService) UpdateTag(id uint, req models.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.Update(id, models.TagPatch{Name: &req.Name})
	return tag, observe("tag.update", err)
}

// DeleteTag returns how many posts lost the tag.
func (s *tagService) DeleteTag(id uint) (int, error) {
	unlinked, err := s.tagRepo.Delete(id)
	if err != nil {
		return 0, observe("tag.delete", err)
	}
	observe("tag.delete", nil)
	s.log.WithFields(logrus.Fields{"tag_id": id, "posts_unlinked": unlinked}).Info("tag deleted")
	return unlinked, nil
}
