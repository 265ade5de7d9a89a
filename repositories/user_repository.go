package repositories

import (
	"strings"

	"blog-api/models"
)

type UserRepository interface {
	Create(user models.User) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(id uint, patch models.UserPatch) (*models.User, error)
	Delete(id uint) error
	Exists(id uint) bool
}

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(user models.User) (*models.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if user.Username == "" {
		return nil, models.NewValidation("username", "must not be empty")
	}
	if user.Email == "" {
		return nil, models.NewValidation("email", "must not be empty")
	}

	var created models.User
	err := r.store.write(func(st *state) error {
		if _, taken := st.usernames[user.Username]; taken {
			return models.NewConflict("username '%s' already exists", user.Username)
		}

		user.ID = st.nextUserID
		st.nextUserID++
		user.IsActive = true
		user.CreatedAt = r.store.now()
		user.UpdatedAt = user.CreatedAt

		st.users[user.ID] = user
		st.usernames[user.Username] = user.ID
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.store.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return models.NewNotFound("user", id)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.store.read(func(st *state) error {
		id, ok := st.usernames[username]
		if !ok {
			return models.NewNotFoundKey("user", username)
		}
		user = st.users[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.store.read(func(st *state) error {
		users = make([]models.User, 0, len(st.users))
		for _, id := range sortedKeys(st.users) {
			users = append(users, st.users[id])
		}
		return nil
	})
	return users, err
}

func (r *userRepository) Update(id uint, patch models.UserPatch) (*models.User, error) {
	var updated models.User
	err := r.store.write(func(st *state) error {
		user, ok := st.users[id]
		if !ok {
			return models.NewNotFound("user", id)
		}

		oldUsername := user.Username
		if patch.Username != nil {
			name := strings.TrimSpace(*patch.Username)
			if name == "" {
				return models.NewValidation("username", "must not be empty")
			}
			if owner, taken := st.usernames[name]; taken && owner != id {
				return models.NewConflict("username '%s' already exists", name)
			}
			user.Username = name
		}
		if patch.Email != nil {
			email := strings.TrimSpace(*patch.Email)
			if email == "" {
				return models.NewValidation("email", "must not be empty")
			}
			user.Email = email
		}
		if patch.FullName != nil {
			user.FullName = *patch.FullName
		}
		if patch.IsActive != nil {
			user.IsActive = *patch.IsActive
		}
		user.UpdatedAt = r.store.touch(user.CreatedAt)

		if user.Username != oldUsername {
			delete(st.usernames, oldUsername)
			st.usernames[user.Username] = id
		}
		st.users[id] = user
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete refuses to remove a user still referenced by posts or comments.
func (r *userRepository) Delete(id uint) error {
	return r.store.write(func(st *state) error {
		user, ok := st.users[id]
		if !ok {
			return models.NewNotFound("user", id)
		}
		if len(st.postsByAuthor[id]) > 0 || len(st.commentsByAuthor[id]) > 0 {
			return models.NewConflict("user has dependents")
		}
		delete(st.usernames, user.Username)
		delete(st.users, id)
		return nil
	})
}

func (r *userRepository) Exists(id uint) bool {
	err := r.store.read(func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return models.NewNotFound("user", id)
		}
		return nil
	})
	return err == nil
}
