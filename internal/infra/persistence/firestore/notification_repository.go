package firestore

import (
	"context"
	"log/slog"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// notificationRepository stores notifications as one flat collection, each
// document addressed to a single recipient. When tx is set, all reads and
// writes go through that transaction.
type notificationRepository struct {
	client *firestore.Client
	logger *slog.Logger
	tx     *firestore.Transaction
}

// NewNotificationRepository is the constructor for the Firestore notificationRepository.
func NewNotificationRepository(client *firestore.Client, logger *slog.Logger) repository.NotificationRepository {
	return &notificationRepository{client: client, logger: logger}
}

func (repo *notificationRepository) doc(id string) *firestore.DocumentRef {
	return repo.client.Collection(collNotifications).Doc(id)
}

func (repo *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	ref := repo.client.Collection(collNotifications).NewDoc()
	if n.ID != "" {
		ref = repo.doc(n.ID)
	}
	n.ID = ref.ID

	value := map[string]any{
		"id":        n.ID,
		"toUid":     n.ToUID,
		"type":      n.Type,
		"read":      n.Read,
		"status":    n.Status,
		"data":      n.Data,
		"createdAt": firestore.ServerTimestamp,
	}

	if repo.tx != nil {
		if err := repo.tx.Create(ref, value); err != nil {
			return errors.Wrap(err, "failed to create notification")
		}

		return nil
	}

	wr, err := ref.Create(ctx, value)
	if err != nil {
		return errors.Wrap(err, "failed to create notification")
	}
	n.CreatedAt = wr.UpdateTime

	return nil
}

func (repo *notificationRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	var snap *firestore.DocumentSnapshot
	var err error
	if repo.tx != nil {
		snap, err = repo.tx.Get(repo.doc(id))
	} else {
		snap, err = repo.doc(id).Get(ctx)
	}
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification by id")
	}

	var n entity.Notification
	if err := snap.DataTo(&n); err != nil {
		return nil, errors.Wrap(err, "failed to decode notification")
	}

	return &n, nil
}

func (repo *notificationRepository) FindByRecipient(ctx context.Context, toUID string, limit int) ([]*entity.Notification, error) {
	query := repo.client.Collection(collNotifications).
		Where("toUid", "==", toUID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var notifications []*entity.Notification
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list notifications")
		}

		var n entity.Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, errors.Wrap(err, "failed to decode notification")
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

// MarkRead writes read=true unconditionally; there is no path that writes
// false, which keeps the flag monotonic at the storage layer.
func (repo *notificationRepository) MarkRead(ctx context.Context, id string) error {
	updates := []firestore.Update{{Path: "read", Value: true}}

	ref := repo.doc(id)
	var err error
	if repo.tx != nil {
		err = repo.tx.Update(ref, updates)
	} else {
		_, err = ref.Update(ctx, updates)
	}
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

// ResolveInvite runs read-check-write in a transaction when not already
// inside one, so pending -> accepted/rejected happens exactly once even
// under concurrent accept and reject.
func (repo *notificationRepository) ResolveInvite(ctx context.Context, id string, outcome entity.NotificationStatus) error {
	if repo.tx != nil {
		return repo.resolveInviteTx(repo.tx, id, outcome)
	}

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return repo.resolveInviteTx(tx, id, outcome)
	})
	if err != nil {
		return err
	}

	return nil
}

func (repo *notificationRepository) resolveInviteTx(tx *firestore.Transaction, id string, outcome entity.NotificationStatus) error {
	ref := repo.doc(id)
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to read invite notification")
	}

	var n entity.Notification
	if err := snap.DataTo(&n); err != nil {
		return errors.Wrap(err, "failed to decode notification")
	}
	if n.Status != entity.NotificationStatusPending {
		return repository.ErrInviteAlreadyResolved
	}

	if err := tx.Update(ref, []firestore.Update{
		{Path: "status", Value: outcome},
		{Path: "read", Value: true},
	}); err != nil {
		return errors.Wrap(err, "failed to resolve invite")
	}

	return nil
}

func (repo *notificationRepository) WatchByRecipient(ctx context.Context, toUID string) (<-chan repository.Snapshot[*entity.Notification], error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	snaps := repo.client.Collection(collNotifications).
		Where("toUid", "==", toUID).
		OrderBy("createdAt", firestore.Desc).
		Snapshots(ctx)

	ch := make(chan repository.Snapshot[*entity.Notification])
	go func() {
		defer close(ch)
		defer snaps.Stop()

		for {
			qs, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					repo.logger.Error("notification watch stream failed", slog.Any("error", err))
				}

				return
			}

			snap, err := repo.toSnapshot(qs)
			if err != nil {
				repo.logger.Error("notification watch decode failed", slog.Any("error", err))

				continue
			}

			select {
			case ch <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// toSnapshot maps the store's native snapshot, including its per-document
// change classification, onto the repository snapshot type.
func (repo *notificationRepository) toSnapshot(qs *firestore.QuerySnapshot) (repository.Snapshot[*entity.Notification], error) {
	var out repository.Snapshot[*entity.Notification]

	docs, err := qs.Documents.GetAll()
	if err != nil {
		return out, errors.Wrap(err, "failed to read notification snapshot")
	}
	for _, doc := range docs {
		var n entity.Notification
		if err := doc.DataTo(&n); err != nil {
			return out, errors.Wrap(err, "failed to decode notification")
		}
		out.Docs = append(out.Docs, &n)
	}

	for _, change := range qs.Changes {
		var n entity.Notification
		if err := change.Doc.DataTo(&n); err != nil {
			return out, errors.Wrap(err, "failed to decode notification change")
		}

		var kind repository.ChangeKind
		switch change.Kind {
		case firestore.DocumentAdded:
			kind = repository.ChangeAdded
		case firestore.DocumentModified:
			kind = repository.ChangeModified
		case firestore.DocumentRemoved:
			kind = repository.ChangeRemoved
		}
		out.Changes = append(out.Changes, repository.Change[*entity.Notification]{Kind: kind, Doc: &n})
	}

	return out, nil
}
