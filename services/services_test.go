package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"blog-api/models"
	"blog-api/repositories"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	store    *repositories.Store
	hook     *test.Hook
	users    UserService
	posts    PostService
	comments CommentService
	tags     TagService
	stats    StatisticsService
}

func (s *ServiceTestSuite) SetupTest() {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.hook = hook

	s.store = repositories.NewStore()
	query := repositories.NewQueryRepository(s.store)
	s.users = NewUserService(repositories.NewUserRepository(s.store), logger)
	s.posts = NewPostService(repositories.NewPostRepository(s.store), query, logger)
	s.comments = NewCommentService(repositories.NewCommentRepository(s.store), query, logger)
	s.tags = NewTagService(repositories.NewTagRepository(s.store), logger)
	s.stats = NewStatisticsService(query)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.store.Close()
}

func (s *ServiceTestSuite) createUser(username string) *models.User {
	u, err := s.users.CreateUser(models.CreateUserRequest{Username: username, Email: username + "@example.com"})
	s.Require().NoError(err)
	return u
}

func (s *ServiceTestSuite) createPost(authorID uint, title string, published bool, tags ...uint) *models.BlogPost {
	p, err := s.posts.CreatePost(models.CreatePostRequest{
		Title:     title,
		Content:   "content for " + title,
		AuthorID:  authorID,
		Published: published,
		Tags:      tags,
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceTestSuite) createComment(postID, authorID uint) *models.Comment {
	c, err := s.comments.CreateComment(models.CreateCommentRequest{PostID: postID, AuthorID: authorID, Content: "comment"})
	s.Require().NoError(err)
	return c
}

func (s *ServiceTestSuite) TestCreatePostDefaultsToDraft() {
	u := s.createUser("alice")

	draft := s.createPost(u.ID, "draft", false)
	s.Equal(models.StatusDraft, draft.Status())

	live := s.createPost(u.ID, "live", true)
	s.Equal(models.StatusPublished, live.Status())
}

func (s *ServiceTestSuite) TestCreatePostUnknownAuthor() {
	_, err := s.posts.CreatePost(models.CreatePostRequest{Title: "t", Content: "c", AuthorID: 9})
	s.True(models.IsNotFound(err))

	posts, err := s.posts.ListPosts(false)
	s.Require().NoError(err)
	s.Empty(posts)
}

func (s *ServiceTestSuite) TestPublishAndUnpublishAreIdempotent() {
	u := s.createUser("alice")
	p := s.createPost(u.ID, "post", false)

	for i := 0; i < 2; i++ {
		got, err := s.posts.Publish(p.ID)
		s.Require().NoError(err)
		s.True(got.Published)
	}
	for i := 0; i < 2; i++ {
		got, err := s.posts.Unpublish(p.ID)
		s.Require().NoError(err)
		s.False(got.Published)
	}

	changes := 0
	for _, entry := range s.hook.AllEntries() {
		if entry.Message == "post status changed" {
			changes++
		}
	}
	s.Equal(2, changes)

	_, err := s.posts.Publish(404)
	s.True(models.IsNotFound(err))
}

func (s *ServiceTestSuite) TestUpdatePostKeepsPublishState() {
	u := s.createUser("alice")
	p := s.createPost(u.ID, "post", true)

	title := "renamed"
	got, err := s.posts.UpdatePost(p.ID, models.UpdatePostRequest{Title: &title})
	s.Require().NoError(err)
	s.Equal("renamed", got.Title)
	s.True(got.Published)
}

func (s *ServiceTestSuite) TestGetPostIncrementsViews() {
	u := s.createUser("alice")
	p := s.createPost(u.ID, "post", true)

	got, err := s.posts.GetPost(p.ID, true)
	s.Require().NoError(err)
	s.Equal(int64(1), got.ViewCount)

	got, err = s.posts.GetPost(p.ID, false)
	s.Require().NoError(err)
	s.Equal(int64(1), got.ViewCount)

	reset, err := s.posts.ResetViews(p.ID)
	s.Require().NoError(err)
	s.Zero(reset.ViewCount)

	_, err = s.posts.GetPost(404, true)
	s.True(models.IsNotFound(err))
}

func (s *ServiceTestSuite) TestConcurrentGetPostLosesNoViews() {
	u := s.createUser("alice")
	p := s.createPost(u.ID, "post", true)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.posts.GetPost(p.ID, true)
			assert.NoError(s.T(), err)
		}()
	}
	wg.Wait()

	got, err := s.posts.GetPost(p.ID, false)
	s.Require().NoError(err)
	s.Equal(int64(n), got.ViewCount)
}

func (s *ServiceTestSuite) TestDeletePostLogsCascade() {
	u := s.createUser("alice")
	tag, err := s.tags.CreateTag(models.CreateTagRequest{Name: "Go"})
	s.Require().NoError(err)
	p := s.createPost(u.ID, "post", false, tag.ID)
	s.createComment(p.ID, u.ID)
	s.createComment(p.ID, u.ID)

	res, err := s.posts.DeletePost(p.ID)
	s.Require().NoError(err)
	s.Equal(models.CascadeResult{CommentsDeleted: 2, TagsUnlinked: 1}, res)

	entry := s.hook.LastEntry()
	s.Require().NotNil(entry)
	s.Equal("post deleted", entry.Message)
	s.Equal(2, entry.Data["comments_deleted"])
	s.Equal(1, entry.Data["tags_unlinked"])

	_, err = s.comments.GetCommentsByPost(p.ID)
	s.True(models.IsNotFound(err))
	comments, err := s.comments.GetComments()
	s.Require().NoError(err)
	s.Empty(comments)
}

func (s *ServiceTestSuite) TestTagAssociationIsASet() {
	u := s.createUser("alice")
	tag, err := s.tags.CreateTag(models.CreateTagRequest{Name: "Go"})
	s.Require().NoError(err)
	p := s.createPost(u.ID, "post", false)

	for i := 0; i < 2; i++ {
		got, err := s.posts.AddTag(p.ID, tag.ID)
		s.Require().NoError(err)
		s.Equal([]uint{tag.ID}, got.TagIDs)
	}
	for i := 0; i < 2; i++ {
		got, err := s.posts.RemoveTag(p.ID, tag.ID)
		s.Require().NoError(err)
		s.Empty(got.TagIDs)
	}
}

func (s *ServiceTestSuite) TestCreateCommentNamesMissingEntity() {
	u := s.createUser("alice")
	p := s.createPost(u.ID, "post", true)

	_, err := s.comments.CreateComment(models.CreateCommentRequest{PostID: 77, AuthorID: u.ID, Content: "x"})
	var nf *models.ErrorNotFound
	s.Require().True(errors.As(err, &nf))
	s.Equal("post", nf.Entity)

	_, err = s.comments.CreateComment(models.CreateCommentRequest{PostID: p.ID, AuthorID: 88, Content: "x"})
	s.Require().True(errors.As(err, &nf))
	s.Equal("user", nf.Entity)

	c := s.createComment(p.ID, u.ID)
	updated, err := s.comments.UpdateComment(c.ID, models.UpdateCommentRequest{Content: "edited"})
	s.Require().NoError(err)
	s.Equal("edited", updated.Content)

	s.Require().NoError(s.comments.DeleteComment(c.ID))
	s.True(models.IsNotFound(s.comments.DeleteComment(c.ID)))
}

func (s *ServiceTestSuite) TestDuplicateTagConflicts() {
	_, err := s.tags.CreateTag(models.CreateTagRequest{Name: "Web Development"})
	s.Require().NoError(err)
	_, err = s.tags.CreateTag(models.CreateTagRequest{Name: "web development"})
	s.True(models.IsConflict(err))

	tag, err := s.tags.GetTagBySlug("web-development")
	s.Require().NoError(err)
	renamed, err := s.tags.UpdateTag(tag.ID, models.UpdateTagRequest{Name: "Frontend"})
	s.Require().NoError(err)
	s.Equal("frontend", renamed.Slug)
}

func (s *ServiceTestSuite) TestDeleteUserWithPostsConflicts() {
	u := s.createUser("alice")
	s.createPost(u.ID, "post", false)

	err := s.users.DeleteUser(u.ID)
	s.True(models.IsConflict(err))

	got, err := s.users.GetUserByUsername("alice")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
}

func (s *ServiceTestSuite) TestStatistics() {
	var users []*models.User
	for _, name := range []string{"ann", "ben", "cat"} {
		users = append(users, s.createUser(name))
	}
	var posts []*models.BlogPost
	for i := 0; i < 5; i++ {
		posts = append(posts, s.createPost(users[i%3].ID, "post", i < 2))
	}
	for i := 0; i < 4; i++ {
		s.createComment(posts[i%2].ID, users[i%3].ID)
	}

	stats, err := s.stats.Overall()
	s.Require().NoError(err)
	s.Equal(3, stats.TotalUsers)
	s.Equal(5, stats.TotalPosts)
	s.Equal(2, stats.TotalPublishedPosts)
	s.Equal(4, stats.TotalComments)
	s.Zero(stats.TotalViews)
}

func (s *ServiceTestSuite) TestRankings() {
	u := s.createUser("alice")
	var posts []*models.BlogPost
	for _, views := range []int{10, 3, 7} {
		p := s.createPost(u.ID, "post", true)
		for i := 0; i < views; i++ {
			_, err := s.posts.GetPost(p.ID, true)
			s.Require().NoError(err)
		}
		posts = append(posts, p)
	}
	s.createComment(posts[1].ID, u.ID)

	top, err := s.stats.MostViewed(2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(int64(10), top[0].ViewCount)
	s.Equal(int64(7), top[1].ViewCount)

	commented, err := s.stats.MostCommented(1)
	s.Require().NoError(err)
	s.Require().Len(commented, 1)
	s.Equal(posts[1].ID, commented[0].ID)
}

func (s *ServiceTestSuite) TestSearchAndListing() {
	u := s.createUser("alice")
	s.createPost(u.ID, "Intro to FastAPI", true)
	s.createPost(u.ID, "Draft notes", false)

	found, err := s.posts.Search("fastapi")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Intro to FastAPI", found[0].Title)

	found, err = s.posts.Search("django")
	s.Require().NoError(err)
	s.Empty(found)

	published, err := s.posts.ListPosts(true)
	s.Require().NoError(err)
	s.Len(published, 1)
	summaries, err := s.posts.ListSummaries(false)
	s.Require().NoError(err)
	s.Len(summaries, 2)

	byAuthor, err := s.posts.GetPostsByAuthor(u.ID)
	s.Require().NoError(err)
	s.Len(byAuthor, 2)
	_, err = s.posts.GetPostsByAuthor(99)
	s.True(models.IsNotFound(err))
}

func (s *ServiceTestSuite) TestSeedSampleDataIsRepeatable() {
	logger, _ := test.NewNullLogger()
	s.Require().NoError(SeedSampleData(s.users, s.tags, logger))
	s.Require().NoError(SeedSampleData(s.users, s.tags, logger))

	users, err := s.users.GetUsers()
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("admin", users[0].Username)
	s.Equal("Alice Johnson", users[1].FullName)

	tags, err := s.tags.GetTags()
	s.Require().NoError(err)
	s.Require().Len(tags, 3)
	s.Equal("web-development", tags[2].Slug)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

type fakeReportRepo struct {
	mu      sync.Mutex
	exports []models.Snapshot
	err     error
}

func (f *fakeReportRepo) Migrate() error { return nil }

func (f *fakeReportRepo) Export(_ context.Context, snap models.Snapshot) (*models.ReportSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.exports = append(f.exports, snap)
	rows := repositories.NewReportRows(snap)
	return &rows.Summary, nil
}

func (f *fakeReportRepo) Latest(context.Context) (*models.ReportSnapshot, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReportRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.exports)
}

func TestReportServiceExportNow(t *testing.T) {
	store := repositories.NewStore()
	defer store.Close()
	_, err := repositories.NewUserRepository(store).Create(models.User{Username: "alice", Email: "a@example.com"})
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	repo := &fakeReportRepo{}
	svc := NewReportService(store, repo, logger)

	summary, err := svc.ExportNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalUsers)
	assert.Equal(t, 1, repo.count())
	assert.Equal(t, "report exported", hook.LastEntry().Message)

	repo.err = errors.New("db down")
	_, err = svc.ExportNow(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestReportServiceExportFailsOnClosedStore(t *testing.T) {
	store := repositories.NewStore()
	store.Close()
	logger, _ := test.NewNullLogger()

	_, err := NewReportService(store, &fakeReportRepo{}, logger).ExportNow(context.Background())
	assert.ErrorIs(t, err, models.ErrStoreClosed)
}

func TestReportServiceRunStopsWithContext(t *testing.T) {
	store := repositories.NewStore()
	defer store.Close()
	logger, _ := test.NewNullLogger()
	repo := &fakeReportRepo{}
	svc := NewReportService(store, repo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.count() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
