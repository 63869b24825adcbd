// Package firestore contains the concrete implementation of the persistence
// layer on the hosted Firestore document store.
package firestore

import (
	"context"
	"log/slog"

	"focuspit/config"
	"focuspit/internal/domain/lifecycle"
	"focuspit/internal/errors"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Collection names. Members and widgets are per-group subcollections, so a
// membership document's path is deterministic in (group id, uid).
const (
	collUsers         = "users"
	collGroups        = "groups"
	collMembers       = "members"
	collWidgets       = "widgets"
	collNotifications = "notifications"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewApp initializes the Firebase app shared by Firestore, Auth and Messaging.
func NewApp(params Params) (*firebase.App, error) {
	cfg := params.Config.Firebase
	if cfg == nil {
		return nil, errors.New("firebase config is required for the firestore store provider")
	}

	opts := []option.ClientOption{}
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	return app, nil
}

// NewClient creates the Firestore client with lifecycle management.
func NewClient(params Params, app *firebase.App) (*firestore.Client, error) {
	ctx, cancel := context.WithTimeout(params.Ctx, lifecycle.DefaultTimeout)
	defer cancel()

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}
