package alert

import (
	"context"
	"fmt"
	"log/slog"

	"focuspit/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
)

// fcmSink implements AlertSink using Firebase Cloud Messaging. Each user is
// subscribed to a per-uid topic by the client, so the core can address alerts
// by uid without tracking device tokens. Badge and icon state travel as data
// messages the client renders locally.
type fcmSink struct {
	client *messaging.Client
	logger *slog.Logger
}

// NewFCMSink creates an AlertSink backed by Firebase Cloud Messaging.
func NewFCMSink(ctx context.Context, app *firebase.App, logger *slog.Logger) (service.AlertSink, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &fcmSink{client: client, logger: logger}, nil
}

func userTopic(uid string) string {
	return "user-" + uid
}

// RequestPermission always grants: permission prompts happen on the client
// when it registers for push, not here.
func (s *fcmSink) RequestPermission(_ context.Context) (service.AlertPermission, error) {
	return service.AlertPermissionGranted, nil
}

func (s *fcmSink) SendNotification(ctx context.Context, toUID, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: userTopic(toUID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	return nil
}

func (s *fcmSink) UpdateOverlayBadge(_ context.Context, hasUnread bool) error {
	// Overlay badges are a desktop shell concept. Push clients derive badge
	// state from the unread count instead.
	s.logger.Debug("[FCM] overlay badge not supported, skipping",
		slog.Bool("has_unread", hasUnread),
	)

	return nil
}

func (s *fcmSink) UpdateAppIcon(ctx context.Context, count int) error {
	// Data-only message; the client updates its own badge.
	message := &messaging.Message{
		Topic: "badge-updates",
		Data: map[string]string{
			"kind":  "app_icon",
			"count": fmt.Sprintf("%d", count),
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return errors.Wrap(err, "failed to send badge update")
	}

	return nil
}
