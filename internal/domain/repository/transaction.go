package repository

import "context"

// TransactionManager defines the interface for multi-document transitions.
// Accept-invite is two writes that must land or fail together; wrapping them
// here closes the accepted-without-membership gap instead of pretending two
// independent writes are atomic.
type TransactionManager interface {
	// Execute runs a function within a single store transaction. If the
	// function returns an error, every write made through the factory's
	// repositories is rolled back. Otherwise all writes commit together.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction,
// so all operations inside Execute share the same transactional context.
type RepositoryFactory interface {
	// NewNotificationRepository returns a NotificationRepository bound to the current transaction.
	NewNotificationRepository() NotificationRepository

	// NewMembershipRepository returns a MembershipRepository bound to the current transaction.
	NewMembershipRepository() MembershipRepository
}
