package services

import (
	"blog-api/models"
	"blog-api/repositories"
)

// StatisticsService computes every figure from the live store on each call.
type StatisticsService interface {
	Overall() (models.Statistics, error)
	MostViewed(limit int) ([]models.BlogPost, error)
	MostCommented(limit int) ([]models.PostSummary, error)
}

type statisticsService struct {
	queryRepo repositories.QueryRepository
}

func NewStatisticsService(queryRepo repositories.QueryRepository) StatisticsService {
	return &statisticsService{queryRepo: queryRepo}
}

func (s *statisticsService) Overall() (models.Statistics, error) {
	stats, err := s.queryRepo.Statistics()
	return stats, observe("statistics.overall", err)
}

// MostViewed orders by view count descending then id; limit <= 0 means all.
func (s *statisticsService) MostViewed(limit int) ([]models.BlogPost, error) {
	posts, err := s.queryRepo.MostViewed(limit)
	return posts, observe("statistics.most_viewed", err)
}

// MostCommented orders by comment count descending then id; limit <= 0 means all.
func (s *statisticsService) MostCommented(limit int) ([]models.PostSummary, error) {
	summaries, err := s.queryRepo.MostCommented(limit)
	return summaries, observe("statistics.most_commented", err)
}
