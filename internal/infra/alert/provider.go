package alert

import (
	"context"
	"log/slog"

	"focuspit/config"
	"focuspit/internal/domain/constants"
	"focuspit/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopSink is wired when no alert provider is configured, so the feed
// service never branches on nil. Permission reports denied, which makes
// callers skip alerts without treating it as an error.
type noopSink struct {
	logger *slog.Logger
}

func (s *noopSink) RequestPermission(_ context.Context) (service.AlertPermission, error) {
	return service.AlertPermissionDenied, nil
}

func (s *noopSink) SendNotification(_ context.Context, toUID, title, _ string, _ map[string]string) error {
	s.logger.Debug("[NoopAlert] alerts disabled, dropping",
		slog.String("to_uid", toUID),
		slog.String("title", title),
	)

	return nil
}

func (s *noopSink) UpdateOverlayBadge(_ context.Context, _ bool) error {
	return nil
}

func (s *noopSink) UpdateAppIcon(_ context.Context, _ int) error {
	return nil
}

// SinkParams holds dependencies for AlertSink, injected by Fx
type SinkParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewAlertSink creates an AlertSink based on configuration
func NewAlertSink(params SinkParams) (service.AlertSink, error) {
	cfg := params.Config.Alert
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Alerts not configured, using no-op sink")

		return &noopSink{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.AlertProviderDesktop:
		if cfg.BridgeEndpoint == "" {
			return nil, errors.New("bridge endpoint is required for desktop provider")
		}
		logger.Info("Using desktop bridge for alerts",
			slog.String("endpoint", cfg.BridgeEndpoint),
		)

		return NewDesktopBridge(cfg.BridgeEndpoint, logger), nil

	case constants.AlertProviderFCM:
		if params.App == nil {
			return nil, errors.New("firebase app is required for fcm provider")
		}
		logger.Info("Using FCM for alerts")

		return NewFCMSink(params.Ctx, params.App, logger)

	default:
		return nil, errors.Errorf("unknown alert provider: %s", cfg.Provider)
	}
}
