package memory

import (
	"context"

	"focuspit/internal/domain/repository"
)

// transactionManager implements repository.TransactionManager over the
// in-process store. Execute stages a clone of the data, runs fn against
// repositories bound to the clone, and swaps it in atomically on success;
// watchers observe either all of the transaction's writes or none.
type transactionManager struct {
	store *Store
}

// NewTransactionManager is the constructor for the in-memory transactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	staged := tm.store.data.clone()
	factory := &repositoryFactory{store: tm.store, staged: staged}

	if err := fn(factory); err != nil {
		return err
	}

	tm.store.data = staged
	tm.store.notifyLocked()

	return nil
}

// repositoryFactory hands out repositories bound to one staged clone.
type repositoryFactory struct {
	store  *Store
	staged *data
}

func (f *repositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{store: f.store, staged: f.staged}
}

func (f *repositoryFactory) NewMembershipRepository() repository.MembershipRepository {
	return &membershipRepository{store: f.store, staged: f.staged}
}
