package repositories

import (
	"slices"
	"strings"

	"blog-api/models"
)

type TagRepository interface {
	Create(tag models.Tag) (*models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	GetByName(name string) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	Update(id uint, patch models.TagPatch) (*models.Tag, error)
	Delete(id uint) (int, error)
}

type tagRepository struct {
	store *Store
}

func NewTagRepository(store *Store) TagRepository {
	return &tagRepository{store: store}
}

// prepareTagName trims the name and derives its folded key and slug.
func prepareTagName(name string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", "", models.NewValidation("name", "must not be empty")
	}
	slug := models.Slugify(name)
	if slug == "" {
		return "", "", "", models.NewValidation("name", "must contain at least one letter or digit")
	}
	return name, models.Fold(name), slug, nil
}

func (r *tagRepository) Create(tag models.Tag) (*models.Tag, error) {
	name, key, slug, err := prepareTagName(tag.Name)
	if err != nil {
		return nil, err
	}

	var created models.Tag
	err = r.store.write(func(st *state) error {
		if _, taken := st.tagNames[key]; taken {
			return models.NewConflict("tag '%s' already exists", name)
		}
		created = models.Tag{ID: st.nextTagID, Name: name, Slug: slug}
		st.nextTagID++
		st.tags[created.ID] = created
		st.tagNames[key] = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.store.read(func(st *state) error {
		t, ok := st.tags[id]
		if !ok {
			return models.NewNotFound("tag", id)
		}
		tag = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByName matches names caselessly, the same way uniqueness is enforced.
func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.store.read(func(st *state) error {
		id, ok := st.tagNames[models.Fold(strings.TrimSpace(name))]
		if !ok {
			return models.NewNotFoundKey("tag", name)
		}
		tag = st.tags[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetBySlug returns the oldest tag carrying the slug.
func (r *tagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.store.read(func(st *state) error {
		for _, id := range sortedKeys(st.tags) {
			if st.tags[id].Slug == slug {
				tag = st.tags[id]
				return nil
			}
		}
		return models.NewNotFoundKey("tag", slug)
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.store.read(func(st *state) error {
		tags = make([]models.Tag, 0, len(st.tags))
		for _, id := range sortedKeys(st.tags) {
			tags = append(tags, st.tags[id])
		}
		return nil
	})
	return tags, err
}

func (r *tagRepository) Update(id uint, patch models.TagPatch) (*models.Tag, error) {
	var updated models.Tag
	err := r.store.write(func(st *state) error {
		tag, ok := st.tags[id]
		if !ok {
			return models.NewNotFound("tag", id)
		}
		if patch.Name == nil {
			updated = tag
			return nil
		}
		name, key, slug, err := prepareTagName(*patch.Name)
		if err != nil {
			return err
		}
		if owner, taken := st.tagNames[key]; taken && owner != id {
			return models.NewConflict("tag '%s' already exists", name)
		}

		delete(st.tagNames, models.Fold(tag.Name))
		tag.Name = name
		tag.Slug = slug
		st.tagNames[key] = id
		st.tags[id] = tag
		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the tag and unlinks it from every post carrying it. The
// posts themselves stay. It returns the number of posts that were unlinked.
func (r *tagRepository) Delete(id uint) (int, error) {
	unlinked := 0
	err := r.store.write(func(st *state) error {
		tag, ok := st.tags[id]
		if !ok {
			return models.NewNotFound("tag", id)
		}
		for postID := range st.postsByTag[id] {
			post := st.posts[postID]
			post.TagIDs = slices.DeleteFunc(clonePost(post).TagIDs, func(t uint) bool { return t == id })
			post.UpdatedAt = r.store.touch(post.CreatedAt)
			st.posts[postID] = post
			unlinked++
		}
		delete(st.postsByTag, id)
		delete(st.tagNames, models.Fold(tag.Name))
		delete(st.tags, id)
		return nil
	})
	return unlinked, err
}
