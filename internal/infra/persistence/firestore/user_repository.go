package firestore

import (
	"context"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	client *firestore.Client
}

// NewUserRepository is the constructor for the Firestore userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (repo *userRepository) doc(uid string) *firestore.DocumentRef {
	return repo.client.Collection(collUsers).Doc(uid)
}

func (repo *userRepository) FindByUID(ctx context.Context, uid string) (*entity.User, error) {
	snap, err := repo.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by uid")
	}

	var user entity.User
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Wrap(err, "failed to decode user")
	}

	return &user, nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := repo.client.Collection(collUsers).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	var user entity.User
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Wrap(err, "failed to decode user")
	}

	return &user, nil
}

func (repo *userRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	iter := repo.client.Collection(collUsers).
		Where("slug", "==", slug).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check user slug")
	}

	return true, nil
}

func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	iter := repo.client.Collection(collUsers).
		OrderBy("uid", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var users []*entity.User
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list users")
		}

		var user entity.User
		if err := snap.DataTo(&user); err != nil {
			return nil, errors.Wrap(err, "failed to decode user")
		}
		users = append(users, &user)
	}

	return users, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	wr, err := repo.doc(user.UID).Create(ctx, map[string]any{
		"uid":       user.UID,
		"email":     user.Email,
		"name":      user.Name,
		"slug":      user.Slug,
		"photoUrl":  user.PhotoURL,
		"admin":     user.Admin,
		"stamps":    user.Stamps,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	user.CreatedAt = wr.UpdateTime

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	_, err := repo.doc(user.UID).Update(ctx, []firestore.Update{
		{Path: "email", Value: user.Email},
		{Path: "name", Value: user.Name},
		{Path: "photoUrl", Value: user.PhotoURL},
		{Path: "admin", Value: user.Admin},
		{Path: "stamps", Value: user.Stamps},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}
