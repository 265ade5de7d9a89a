package services

import (
	"fmt"

	"blog-api/models"

	"github.com/sirupsen/logrus"
)

var (
	sampleUsers = []models.CreateUserRequest{
		{Username: "admin", Email: "admin@blog.com", FullName: "Admin User"},
		{Username: "alice", Email: "alice@example.com", FullName: "Alice Johnson"},
	}
	sampleTags = []models.CreateTagRequest{
		{Name: "Python"},
		{Name: "FastAPI"},
		{Name: "Web Development"},
	}
)

// SeedSampleData creates the demo users and tags through the normal service
// calls. Entries that already exist are skipped, so seeding twice is harmless.
func SeedSampleData(users UserService, tags TagService, log logrus.FieldLogger) error {
	created := 0
	for _, req := range sampleUsers {
		_, err := users.CreateUser(req)
		switch {
		case err == nil:
			created++
		case models.IsConflict(err):
			log.WithField("username", req.Username).Debug("sample user exists")
		default:
			return fmt.Errorf("seed user %s: %w", req.Username, err)
		}
	}
	for _, req := range sampleTags {
		_, err := tags.CreateTag(req)
		switch {
		case err == nil:
			created++
		case models.IsConflict(err):
			log.WithField("tag", req.Name).Debug("sample tag exists")
		default:
			return fmt.Errorf("seed tag %s: %w", req.Name, err)
		}
	}
	log.WithField("created", created).Info("sample data seeded")
	return nil
}
