package repositories

import (
	"cmp"
	"slices"
	"strings"

	"blog-api/models"
)

// QueryRepository answers read-only questions over the store. Each call runs
// under a single read lock, so results always reflect one consistent state.
type QueryRepository interface {
	PostsByAuthor(userID uint) ([]models.BlogPost, error)
	CommentsByPost(postID uint) ([]models.Comment, error)
	PostsByTag(tagID uint) ([]models.BlogPost, error)
	Search(query string) ([]models.BlogPost, error)
	CommentCount(postID uint) (int, error)
	Summaries(publishedOnly bool) ([]models.PostSummary, error)
	Statistics() (models.Statistics, error)
	MostViewed(limit int) ([]models.BlogPost, error)
	MostCommented(limit int) ([]models.PostSummary, error)
}

type queryRepository struct {
	store *Store
}

func NewQueryRepository(store *Store) QueryRepository {
	return &queryRepository{store: store}
}

func postsFor(st *state, ids []uint) []models.BlogPost {
	posts := make([]models.BlogPost, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, clonePost(st.posts[id]))
	}
	return posts
}

func (r *queryRepository) PostsByAuthor(userID uint) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.store.read(func(st *state) error {
		if _, ok := st.users[userID]; !ok {
			return models.NewNotFound("user", userID)
		}
		posts = postsFor(st, st.postsByAuthor[userID].sorted())
		return nil
	})
	return posts, err
}

func (r *queryRepository) CommentsByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.store.read(func(st *state) error {
		if _, ok := st.posts[postID]; !ok {
			return models.NewNotFound("post", postID)
		}
		ids := st.commentsByPost[postID].sorted()
		comments = make([]models.Comment, 0, len(ids))
		for _, id := range ids {
			comments = append(comments, st.comments[id])
		}
		return nil
	})
	return comments, err
}

func (r *queryRepository) PostsByTag(tagID uint) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.store.read(func(st *state) error {
		if _, ok := st.tags[tagID]; !ok {
			return models.NewNotFound("tag", tagID)
		}
		posts = postsFor(st, st.postsByTag[tagID].sorted())
		return nil
	})
	return posts, err
}

// Search returns posts whose title or content contains query, ignoring case,
// in creation order.
func (r *queryRepository) Search(query string) ([]models.BlogPost, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidation("q", "search query must not be empty")
	}
	needle := models.Fold(query)

	var posts []models.BlogPost
	err := r.store.read(func(st *state) error {
		posts = make([]models.BlogPost, 0)
		for _, id := range sortedKeys(st.posts) {
			text := st.searchText[id]
			if strings.Contains(text.title, needle) || strings.Contains(text.content, needle) {
				posts = append(posts, clonePost(st.posts[id]))
			}
		}
		return nil
	})
	return posts, err
}

func (r *queryRepository) CommentCount(postID uint) (int, error) {
	count := 0
	err := r.store.read(func(st *state) error {
		if _, ok := st.posts[postID]; !ok {
			return models.NewNotFound("post", postID)
		}
		count = len(st.commentsByPost[postID])
		return nil
	})
	return count, err
}

func summarize(st *state, post models.BlogPost) models.PostSummary {
	return models.PostSummary{
		ID:           post.ID,
		Title:        post.Title,
		AuthorID:     post.AuthorID,
		Published:    post.Published,
		TagIDs:       append([]uint{}, post.TagIDs...),
		ViewCount:    post.ViewCount,
		CommentCount: len(st.commentsByPost[post.ID]),
		CreatedAt:    post.CreatedAt,
	}
}

func summaries(st *state, publishedOnly bool) []models.PostSummary {
	out := make([]models.PostSummary, 0, len(st.posts))
	for _, id := range sortedKeys(st.posts) {
		post := st.posts[id]
		if publishedOnly && !post.Published {
			continue
		}
		out = append(out, summarize(st, post))
	}
	return out
}

func (r *queryRepository) Summaries(publishedOnly bool) ([]models.PostSummary, error) {
	var out []models.PostSummary
	err := r.store.read(func(st *state) error {
		out = summaries(st, publishedOnly)
		return nil
	})
	return out, err
}

func (r *queryRepository) Statistics() (models.Statistics, error) {
	var stats models.Statistics
	err := r.store.read(func(st *state) error {
		stats.TotalUsers = len(st.users)
		stats.TotalPosts = len(st.posts)
		stats.TotalComments = len(st.comments)
		stats.TotalTags = len(st.tags)
		for _, post := range st.posts {
			if post.Published {
				stats.TotalPublishedPosts++
			}
			stats.TotalViews += post.ViewCount
		}
		return nil
	})
	return stats, err
}

// truncate keeps the first limit items; limit <= 0 keeps everything.
func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func (r *queryRepository) MostViewed(limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.store.read(func(st *state) error {
		posts = postsFor(st, sortedKeys(st.posts))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(posts, func(a, b models.BlogPost) int {
		if c := cmp.Compare(b.ViewCount, a.ViewCount); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return truncate(posts, limit), nil
}

func (r *queryRepository) MostCommented(limit int) ([]models.PostSummary, error) {
	var out []models.PostSummary
	err := r.store.read(func(st *state) error {
		out = summaries(st, false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b models.PostSummary) int {
		if c := cmp.Compare(b.CommentCount, a.CommentCount); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return truncate(out, limit), nil
}
