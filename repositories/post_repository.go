package repositories

import (
	"slices"
	"strings"

	"blog-api/models"
)

type PostRepository interface {
	Create(post models.BlogPost) (*models.BlogPost, error)
	GetByID(id uint) (*models.BlogPost, error)
	GetAll() ([]models.BlogPost, error)
	Update(id uint, patch models.PostPatch) (*models.BlogPost, error)
	SetPublished(id uint, published bool) (*models.BlogPost, bool, error)
	IncrementViewCount(id uint) (*models.BlogPost, error)
	ResetViewCount(id uint) (*models.BlogPost, error)
	AddTag(postID, tagID uint) (*models.BlogPost, bool, error)
	RemoveTag(postID, tagID uint) (*models.BlogPost, bool, error)
	Delete(id uint) (models.CascadeResult, error)
}

type postRepository struct {
	store *Store
}

func NewPostRepository(store *Store) PostRepository {
	return &postRepository{store: store}
}

func validatePostText(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidation("title", "must not be empty")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidation("content", "must not be empty")
	}
	return nil
}

func checkTags(st *state, ids []uint) error {
	for _, id := range ids {
		if _, ok := st.tags[id]; !ok {
			return models.NewNotFound("tag", id)
		}
	}
	return nil
}

func (r *postRepository) Create(post models.BlogPost) (*models.BlogPost, error) {
	if err := validatePostText(post.Title, post.Content); err != nil {
		return nil, err
	}

	var created models.BlogPost
	err := r.store.write(func(st *state) error {
		if _, ok := st.users[post.AuthorID]; !ok {
			return models.NewNotFound("user", post.AuthorID)
		}
		if err := checkTags(st, post.TagIDs); err != nil {
			return err
		}

		post.ID = st.nextPostID
		st.nextPostID++
		post.ViewCount = 0
		post.TagIDs = normalizeTagIDs(post.TagIDs)
		post.CreatedAt = r.store.now()
		post.UpdatedAt = post.CreatedAt

		st.posts[post.ID] = post
		link(st.postsByAuthor, post.AuthorID, post.ID)
		for _, tagID := range post.TagIDs {
			link(st.postsByTag, tagID, post.ID)
		}
		st.searchText[post.ID] = foldedPost{title: models.Fold(post.Title), content: models.Fold(post.Content)}
		created = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *postRepository) GetByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.store.read(func(st *state) error {
		p, ok := st.posts[id]
		if !ok {
			return models.NewNotFound("post", id)
		}
		post = clonePost(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetAll() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.store.read(func(st *state) error {
		posts = make([]models.BlogPost, 0, len(st.posts))
		for _, id := range sortedKeys(st.posts) {
			posts = append(posts, clonePost(st.posts[id]))
		}
		return nil
	})
	return posts, err
}

func (r *postRepository) Update(id uint, patch models.PostPatch) (*models.BlogPost, error) {
	var updated models.BlogPost
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[id]
		if !ok {
			return models.NewNotFound("post", id)
		}

		title, content := post.Title, post.Content
		if patch.Title != nil {
			title = *patch.Title
		}
		if patch.Content != nil {
			content = *patch.Content
		}
		if err := validatePostText(title, content); err != nil {
			return err
		}
		tagIDs := post.TagIDs
		if patch.TagIDs != nil {
			if err := checkTags(st, *patch.TagIDs); err != nil {
				return err
			}
			tagIDs = normalizeTagIDs(*patch.TagIDs)
		}

		for _, tagID := range post.TagIDs {
			if !slices.Contains(tagIDs, tagID) {
				unlink(st.postsByTag, tagID, id)
			}
		}
		for _, tagID := range tagIDs {
			link(st.postsByTag, tagID, id)
		}
		post.Title = title
		post.Content = content
		post.TagIDs = tagIDs
		post.UpdatedAt = r.store.touch(post.CreatedAt)

		st.posts[id] = post
		st.searchText[id] = foldedPost{title: models.Fold(title), content: models.Fold(content)}
		updated = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetPublished moves a post between draft and published. Setting the state
// it is already in is a no-op and reports changed == false.
func (r *postRepository) SetPublished(id uint, published bool) (*models.BlogPost, bool, error) {
	var (
		result  models.BlogPost
		changed bool
	)
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[id]
		if !ok {
			return models.NewNotFound("post", id)
		}
		if post.Published != published {
			post.Published = published
			post.UpdatedAt = r.store.touch(post.CreatedAt)
			st.posts[id] = post
			changed = true
		}
		result = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, changed, nil
}

// IncrementViewCount bumps the counter and returns the post as of that
// increment, all under the write lock.
func (r *postRepository) IncrementViewCount(id uint) (*models.BlogPost, error) {
	var result models.BlogPost
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[id]
		if !ok {
			return models.NewNotFound("post", id)
		}
		post.ViewCount++
		st.posts[id] = post
		result = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *postRepository) ResetViewCount(id uint) (*models.BlogPost, error) {
	var result models.BlogPost
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[id]
		if !ok {
			return models.NewNotFound("post", id)
		}
		post.ViewCount = 0
		st.posts[id] = post
		result = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *postRepository) AddTag(postID, tagID uint) (*models.BlogPost, bool, error) {
	var (
		result  models.BlogPost
		changed bool
	)
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[postID]
		if !ok {
			return models.NewNotFound("post", postID)
		}
		if _, ok := st.tags[tagID]; !ok {
			return models.NewNotFound("tag", tagID)
		}
		if !post.HasTag(tagID) {
			post.TagIDs = normalizeTagIDs(append(post.TagIDs, tagID))
			post.UpdatedAt = r.store.touch(post.CreatedAt)
			st.posts[postID] = post
			link(st.postsByTag, tagID, postID)
			changed = true
		}
		result = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, changed, nil
}

// RemoveTag unlinks a tag from a post. An absent tag is not an error.
func (r *postRepository) RemoveTag(postID, tagID uint) (*models.BlogPost, bool, error) {
	var (
		result  models.BlogPost
		changed bool
	)
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[postID]
		if !ok {
			return models.NewNotFound("post", postID)
		}
		if post.HasTag(tagID) {
			post.TagIDs = slices.DeleteFunc(clonePost(post).TagIDs, func(id uint) bool { return id == tagID })
			post.UpdatedAt = r.store.touch(post.CreatedAt)
			st.posts[postID] = post
			unlink(st.postsByTag, tagID, postID)
			changed = true
		}
		result = clonePost(post)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, changed, nil
}

// Delete removes the post, its comments and its tag links in one step.
func (r *postRepository) Delete(id uint) (models.CascadeResult, error) {
	var result models.CascadeResult
	err := r.store.write(func(st *state) error {
		post, ok := st.posts[id]
		if !ok {
			return models.NewNotFound("post", id)
		}

		for commentID := range st.commentsByPost[id] {
			comment := st.comments[commentID]
			unlink(st.commentsByAuthor, comment.AuthorID, commentID)
			delete(st.comments, commentID)
			result.CommentsDeleted++
		}
		delete(st.commentsByPost, id)

		for _, tagID := range post.TagIDs {
			unlink(st.postsByTag, tagID, id)
			result.TagsUnlinked++
		}
		unlink(st.postsByAuthor, post.AuthorID, id)
		delete(st.searchText, id)
		delete(st.posts, id)
		return nil
	})
	return result, err
}
