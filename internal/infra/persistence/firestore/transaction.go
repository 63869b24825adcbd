package firestore

import (
	"context"
	"log/slog"

	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"

	"cloud.google.com/go/firestore"
)

type transactionManager struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewTransactionManager is the constructor for the Firestore transactionManager.
func NewTransactionManager(client *firestore.Client, logger *slog.Logger) repository.TransactionManager {
	return &transactionManager{client: client, logger: logger}
}

// Execute runs fn inside a single Firestore transaction. The repositories
// handed out by the factory route every read and write through that
// transaction, so Firestore retries or aborts them as one unit.
func (manager *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	err := manager.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		factory := &repositoryFactory{client: manager.client, logger: manager.logger, tx: tx}

		return fn(factory)
	})
	if err != nil {
		return errors.Wrap(err, "transaction failed")
	}

	return nil
}

// repositoryFactory creates repositories bound to one Firestore transaction.
type repositoryFactory struct {
	client *firestore.Client
	logger *slog.Logger
	tx     *firestore.Transaction
}

func (factory *repositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{client: factory.client, logger: factory.logger, tx: factory.tx}
}

func (factory *repositoryFactory) NewMembershipRepository() repository.MembershipRepository {
	return &membershipRepository{client: factory.client, tx: factory.tx}
}
