package memory

import (
	"context"
	"sort"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
)

type userRepository struct {
	store  *Store
	staged *data
}

// NewUserRepository is the constructor for the in-memory userRepository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByUID(ctx context.Context, uid string) (*entity.User, error) {
	var found *entity.User
	err := repo.store.read(repo.staged, func(d *data) error {
		u, ok := d.users[uid]
		if !ok {
			return repository.ErrUserNotFound
		}
		c := *u
		found = &c

		return nil
	})

	return found, err
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, u := range d.users {
			if u.Email == email {
				c := *u
				found = &c

				return nil
			}
		}

		return repository.ErrUserNotFound
	})

	return found, err
}

func (repo *userRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, u := range d.users {
			if u.Slug == slug {
				exists = true

				return nil
			}
		}

		return nil
	})

	return exists, err
}

func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, u := range d.users {
			c := *u
			users = append(users, &c)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].UID < users[j].UID })

	return users, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	return repo.store.write(repo.staged, "user.create", func(d *data) error {
		user.CreatedAt = repo.store.serverTimeLocked()
		c := *user
		d.users[user.UID] = &c

		return nil
	})
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	return repo.store.write(repo.staged, "user.update", func(d *data) error {
		if _, ok := d.users[user.UID]; !ok {
			return repository.ErrUserNotFound
		}
		c := *user
		d.users[user.UID] = &c

		return nil
	})
}
