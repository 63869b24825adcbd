// Package persistence wires the configured document store provider into the
// repository interfaces the rest of the core depends on.
package persistence

import (
	"context"
	"log/slog"

	"focuspit/config"
	"focuspit/internal/domain/constants"
	"focuspit/internal/domain/repository"
	fstore "focuspit/internal/infra/persistence/firestore"
	"focuspit/internal/infra/persistence/memory"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the store provider, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Repositories bundles every repository bound to one store provider, so the
// whole set always comes from the same backend.
type Repositories struct {
	fx.Out

	Users         repository.UserRepository
	Groups        repository.GroupRepository
	Memberships   repository.MembershipRepository
	Notifications repository.NotificationRepository
	Widgets       repository.WidgetRepository
	TxManager     repository.TransactionManager

	// App is non-nil only for the firestore provider; Auth and Messaging
	// reuse it.
	App *firebase.App
}

// NewRepositories creates the repository set for the configured store provider.
func NewRepositories(params Params) (Repositories, error) {
	provider := constants.StoreProviderMemory
	if params.Config.Store != nil && params.Config.Store.Provider != "" {
		provider = params.Config.Store.Provider
	}

	switch provider {
	case constants.StoreProviderMemory:
		params.Logger.Info("Using in-memory document store")

		store := memory.NewStore()

		return Repositories{
			Users:         memory.NewUserRepository(store),
			Groups:        memory.NewGroupRepository(store),
			Memberships:   memory.NewMembershipRepository(store),
			Notifications: memory.NewNotificationRepository(store),
			Widgets:       memory.NewWidgetRepository(store),
			TxManager:     memory.NewTransactionManager(store),
		}, nil

	case constants.StoreProviderFirestore:
		params.Logger.Info("Using Firestore document store")

		fsParams := fstore.Params{
			Lifecycle: params.Lifecycle,
			Ctx:       params.Ctx,
			Config:    params.Config,
			Logger:    params.Logger,
		}

		app, err := fstore.NewApp(fsParams)
		if err != nil {
			return Repositories{}, err
		}

		client, err := fstore.NewClient(fsParams, app)
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Users:         fstore.NewUserRepository(client),
			Groups:        fstore.NewGroupRepository(client, params.Logger),
			Memberships:   fstore.NewMembershipRepository(client),
			Notifications: fstore.NewNotificationRepository(client, params.Logger),
			Widgets:       fstore.NewWidgetRepository(client),
			TxManager:     fstore.NewTransactionManager(client, params.Logger),
			App:           app,
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown store provider: %s", provider)
	}
}
