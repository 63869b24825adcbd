package impl

import (
	"context"
	"log/slog"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
	"focuspit/internal/domain/service"
	"focuspit/internal/usecase"
)

type feedService struct {
	notificationRepo repository.NotificationRepository
	sink             service.AlertSink
	logger           *slog.Logger
}

// NewFeedService creates a new feed service instance
func NewFeedService(
	notificationRepo repository.NotificationRepository,
	sink service.AlertSink,
	logger *slog.Logger,
) usecase.FeedUsecase {
	return &feedService{
		notificationRepo: notificationRepo,
		sink:             sink,
		logger:           logger,
	}
}

// Subscribe opens a live feed of the caller's notifications and drives the
// OS-level side effects. The first snapshot is the catch-up of existing
// documents and fires no alerts; from the second snapshot on, every added
// document raises one. Badge state follows the derived unread count. Alert
// permission is resolved lazily on the first alert and cached for the
// lifetime of the subscription.
func (s *feedService) Subscribe(ctx context.Context, uid string) (<-chan usecase.FeedUpdate, error) {
	snaps, err := s.notificationRepo.WatchByRecipient(ctx, uid)
	if err != nil {
		return nil, err
	}

	out := make(chan usecase.FeedUpdate, 1)

	go func() {
		defer close(out)

		first := true
		permission := service.AlertPermissionUndetermined
		prevUnread := -1

		for snap := range snaps {
			if !first {
				permission = s.dispatchAlerts(ctx, uid, snap.Changes, permission)
			}

			unread := 0
			for _, n := range snap.Docs {
				if !n.Read {
					unread++
				}
			}
			if unread != prevUnread {
				s.updateBadges(ctx, unread)
				prevUnread = unread
			}

			update := usecase.FeedUpdate{
				Notifications: snap.Docs,
				UnreadCount:   unread,
			}
			select {
			case out <- update:
			case <-ctx.Done():
				return
			}

			first = false
		}
	}()

	return out, nil
}

// dispatchAlerts raises one OS-level alert per newly added notification and
// returns the (possibly freshly resolved) permission. Alert failures are
// logged and never interrupt the feed.
func (s *feedService) dispatchAlerts(ctx context.Context, uid string, changes []repository.Change[*entity.Notification], permission service.AlertPermission) service.AlertPermission {
	for _, change := range changes {
		if change.Kind != repository.ChangeAdded {
			continue
		}

		if permission == service.AlertPermissionUndetermined {
			p, err := s.sink.RequestPermission(ctx)
			if err != nil {
				s.logger.Warn("alert permission request failed", slog.Any("error", err))

				continue
			}
			permission = p
		}
		if permission != service.AlertPermissionGranted {
			continue
		}

		n := change.Doc
		title, body := n.Summary()
		data := map[string]string{
			"notification_id": n.ID,
			"type":            string(n.Type),
		}
		if n.Data.GroupID != "" {
			data["group_id"] = n.Data.GroupID
		}

		if err := s.sink.SendNotification(ctx, uid, title, body, data); err != nil {
			s.logger.Warn("alert delivery failed",
				slog.String("notification_id", n.ID),
				slog.Any("error", err),
			)
		}
	}

	return permission
}

func (s *feedService) updateBadges(ctx context.Context, unread int) {
	if err := s.sink.UpdateOverlayBadge(ctx, unread > 0); err != nil {
		s.logger.Warn("overlay badge update failed", slog.Any("error", err))
	}
	if err := s.sink.UpdateAppIcon(ctx, unread); err != nil {
		s.logger.Warn("app icon update failed", slog.Any("error", err))
	}
}
