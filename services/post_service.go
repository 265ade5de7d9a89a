package services

import (
	"blog-api/metrics"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/sirupsen/logrus"
)

// PostService drives the draft/published lifecycle and the per-post
// relationships.
type PostService interface {
	CreatePost(req models.CreatePostRequest) (*models.BlogPost, error)
	GetPost(id uint, incrementViews bool) (*models.BlogPost, error)
	ListPosts(publishedOnly bool) ([]models.BlogPost, error)
	ListSummaries(publishedOnly bool) ([]models.PostSummary, error)
	UpdatePost(id uint, req models.UpdatePostRequest) (*models.BlogPost, error)
	DeletePost(id uint) (models.CascadeResult, error)
	Publish(id uint) (*models.BlogPost, error)
	Unpublish(id uint) (*models.BlogPost, error)
	AddTag(postID, tagID uint) (*models.BlogPost, error)
	RemoveTag(postID, tagID uint) (*models.BlogPost, error)
	ResetViews(id uint) (*models.BlogPost, error)
	GetPostsByAuthor(userID uint) ([]models.BlogPost, error)
	GetPostsByTag(tagID uint) ([]models.BlogPost, error)
	Search(query string) ([]models.BlogPost, error)
}

type postService struct {
	postRepo  repositories.PostRepository
	queryRepo repositories.QueryRepository
	log       logrus.FieldLogger
}

func NewPostService(postRepo repositories.PostRepository, queryRepo repositories.QueryRepository, log logrus.FieldLogger) PostService {
	return &postService{
		postRepo:  postRepo,
		queryRepo: queryRepo,
		log:       log,
	}
}

// CreatePost starts the post as a draft unless req asks for it published.
func (s *postService) CreatePost(req models.CreatePostRequest) (*models.BlogPost, error) {
	post, err := s.postRepo.Create(models.BlogPost{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  req.AuthorID,
		Published: req.Published,
		TagIDs:    req.Tags,
	})
	if err != nil {
		return nil, observe("post.create", err)
	}
	observe("post.create", nil)
	s.log.WithFields(logrus.Fields{
		"post_id":   post.ID,
		"author_id": post.AuthorID,
		"status":    post.Status(),
	}).Info("post created")
	return post, nil
}

// GetPost reads a post. With incrementViews the read and the counter bump
// are one store operation and the returned post carries the new count.
func (s *postService) GetPost(id uint, incrementViews bool) (*models.BlogPost, error) {
	if !incrementViews {
		post, err := s.postRepo.GetByID(id)
		return post, observe("post.get", err)
	}
	post, err := s.postRepo.IncrementViewCount(id)
	if err != nil {
		return nil, observe("post.view", err)
	}
	observe("post.view", nil)
	metrics.RecordView()
	return post, nil
}

func (s *postService) ListPosts(publishedOnly bool) ([]models.BlogPost, error) {
	posts, err := s.postRepo.GetAll()
	if err != nil {
		return nil, observe("post.list", err)
	}
	if publishedOnly {
		published := make([]models.BlogPost, 0, len(posts))
		for _, p := range posts {
			if p.Published {
				published = append(published, p)
			}
		}
		posts = published
	}
	return posts, observe("post.list", nil)
}

func (s *postService) ListSummaries(publishedOnly bool) ([]models.PostSummary, error) {
	summaries, err := s.queryRepo.Summaries(publishedOnly)
	return summaries, observe("post.summaries", err)
}

// UpdatePost never changes the publish state.
func (s *postService) UpdatePost(id uint, req models.UpdatePostRequest) (*models.BlogPost, error) {
	post, err := s.postRepo.Update(id, models.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		TagIDs:  req.Tags,
	})
	return post, observe("post.update", err)
}

func (s *postService) DeletePost(id uint) (models.CascadeResult, error) {
	res, err := s.postRepo.Delete(id)
	if err != nil {
		return res, observe("post.delete", err)
	}
	observe("post.delete", nil)
	s.log.WithFields(logrus.Fields{
		"post_id":          id,
		"comments_deleted": res.CommentsDeleted,
		"tags_unlinked":    res.TagsUnlinked,
	}).Info("post deleted")
	return res, nil
}

func (s *postService) Publish(id uint) (*models.BlogPost, error) {
	return s.setPublished("post.publish", id, true)
}

func (s *postService) Unpublish(id uint) (*models.BlogPost, error) {
	return s.setPublished("post.unpublish", id, false)
}

// setPublished is idempotent: asking for the current state is not an error.
func (s *postService) setPublished(operation string, id uint, published bool) (*models.BlogPost, error) {
	post, changed, err := s.postRepo.SetPublished(id, published)
	if err != nil {
		return nil, observe(operation, err)
	}
	observe(operation, nil)
	entry := s.log.WithFields(logrus.Fields{"post_id": id, "status": post.Status()})
	if changed {
		entry.Info("post status changed")
	} else {
		entry.Debug("post status unchanged")
	}
	return post, nil
}

func (s *postService) AddTag(postID, tagID uint) (*models.BlogPost, error) {
	post, changed, err := s.postRepo.AddTag(postID, tagID)
	if err != nil {
		return nil, observe("post.add_tag", err)
	}
	observe("post.add_tag", nil)
	if changed {
		s.log.WithFields(logrus.Fields{"post_id": postID, "tag_id": tagID}).Debug("tag added to post")
	}
	return post, nil
}

func (s *postService) RemoveTag(postID, tagID uint) (*models.BlogPost, error) {
	post, changed, err := s.postRepo.RemoveTag(postID, tagID)
	if err != nil {
		return nil, observe("post.remove_tag", err)
	}
	observe("post.remove_tag", nil)
	if changed {
		s.log.WithFields(logrus.Fields{"post_id": postID, "tag_id": tagID}).Debug("tag removed from post")
	}
	return post, nil
}

func (s *postService) ResetViews(id uint) (*models.BlogPost, error) {
	post, err := s.postRepo.ResetViewCount(id)
	if err != nil {
		return nil, observe("post.reset_views", err)
	}
	observe("post.reset_views", nil)
	s.log.WithField("post_id", id).Info("post views reset")
	return post, nil
}

func (s *postService) GetPostsByAuthor(userID uint) ([]models.BlogPost, error) {
	posts, err := s.queryRepo.PostsByAuthor(userID)
	return posts, observe("post.by_author", err)
}

func (s *postService) GetPostsByTag(tagID uint) ([]models.BlogPost, error) {
	posts, err := s.queryRepo.PostsByTag(tagID)
	return posts, observe("post.by_tag", err)
}

func (s *postService) Search(query string) ([]models.BlogPost, error) {
	posts, err := s.queryRepo.Search(query)
	return posts, observe("post.search", err)
}
