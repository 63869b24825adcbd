package memory

import (
	"context"
	"sort"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	store  *Store
	staged *data
}

// NewNotificationRepository is the constructor for the in-memory notificationRepository.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (repo *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return repo.store.write(repo.staged, "notification.create", func(d *data) error {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		n.CreatedAt = repo.store.serverTimeLocked()
		c := *n
		d.notifications[n.ID] = &c

		return nil
	})
}

func (repo *notificationRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	var found *entity.Notification
	err := repo.store.read(repo.staged, func(d *data) error {
		n, ok := d.notifications[id]
		if !ok {
			return repository.ErrNotificationNotFound
		}
		c := *n
		found = &c

		return nil
	})

	return found, err
}

func (repo *notificationRepository) FindByRecipient(ctx context.Context, toUID string, limit int) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, n := range d.notifications {
			if n.ToUID == toUID {
				c := *n
				notifications = append(notifications, &c)
			}
		}

		return nil
	})
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}

	return notifications, err
}

// MarkRead only ever sets the flag. There is deliberately no inverse write,
// so read stays monotonic at the storage layer.
func (repo *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return repo.store.write(repo.staged, "notification.markRead", func(d *data) error {
		n, ok := d.notifications[id]
		if !ok {
			return repository.ErrNotificationNotFound
		}
		if n.Read {
			return nil
		}
		c := *n
		c.Read = true
		d.notifications[id] = &c

		return nil
	})
}

func (repo *notificationRepository) ResolveInvite(ctx context.Context, id string, status entity.NotificationStatus) error {
	return repo.store.write(repo.staged, "notification.resolveInvite", func(d *data) error {
		n, ok := d.notifications[id]
		if !ok {
			return repository.ErrNotificationNotFound
		}
		if n.Status != entity.NotificationStatusPending {
			return repository.ErrInviteAlreadyResolved
		}
		c := *n
		c.Status = status
		c.Read = true
		d.notifications[id] = &c

		return nil
	})
}

func (repo *notificationRepository) WatchByRecipient(ctx context.Context, toUID string) (<-chan repository.Snapshot[*entity.Notification], error) {
	compute := func(d *data) []*entity.Notification {
		var notifications []*entity.Notification
		for _, n := range d.notifications {
			if n.ToUID == toUID {
				c := *n
				notifications = append(notifications, &c)
			}
		}
		sort.Slice(notifications, func(i, j int) bool {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		})

		return notifications
	}

	return addWatch(ctx, repo.store, compute, func(n *entity.Notification) string { return n.ID })
}
