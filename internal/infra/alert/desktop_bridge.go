package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"focuspit/internal/domain/service"

	"github.com/pkg/errors"
)

// desktopBridge implements AlertSink by POSTing to the local HTTP endpoint
// the desktop shell listens on. The shell owns the OS notification center,
// the taskbar overlay badge and the app icon; the core only tells it what to
// render.
type desktopBridge struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// bridgeRequest is the envelope for every bridge call. Kind selects the
// operation; the shell ignores fields that do not apply.
type bridgeRequest struct {
	Kind      string            `json:"kind"`
	ToUID     string            `json:"to_uid,omitempty"`
	Title     string            `json:"title,omitempty"`
	Body      string            `json:"body,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	HasUnread bool              `json:"has_unread,omitempty"`
	Count     int               `json:"count,omitempty"`
}

// bridgePermissionResponse is the shell's answer to a permission request.
type bridgePermissionResponse struct {
	Permission string `json:"permission"`
}

// NewDesktopBridge creates an AlertSink that talks to the desktop shell.
func NewDesktopBridge(endpoint string, logger *slog.Logger) service.AlertSink {
	return &desktopBridge{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (b *desktopBridge) RequestPermission(ctx context.Context) (service.AlertPermission, error) {
	resp, err := b.post(ctx, bridgeRequest{Kind: "request_permission"})
	if err != nil {
		return service.AlertPermissionUndetermined, err
	}
	defer resp.Body.Close()

	var answer bridgePermissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return service.AlertPermissionUndetermined, errors.WithStack(err)
	}

	switch answer.Permission {
	case "granted":
		return service.AlertPermissionGranted, nil
	case "denied":
		return service.AlertPermissionDenied, nil
	default:
		return service.AlertPermissionUndetermined, nil
	}
}

func (b *desktopBridge) SendNotification(ctx context.Context, toUID, title, body string, data map[string]string) error {
	b.logger.Debug("[DesktopBridge] Sending notification",
		slog.String("to_uid", toUID),
		slog.String("title", title),
	)

	resp, err := b.post(ctx, bridgeRequest{
		Kind:  "notification",
		ToUID: toUID,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}

func (b *desktopBridge) UpdateOverlayBadge(ctx context.Context, hasUnread bool) error {
	resp, err := b.post(ctx, bridgeRequest{
		Kind:      "overlay_badge",
		HasUnread: hasUnread,
	})
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}

func (b *desktopBridge) UpdateAppIcon(ctx context.Context, count int) error {
	resp, err := b.post(ctx, bridgeRequest{
		Kind:  "app_icon",
		Count: count,
	})
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}

func (b *desktopBridge) post(ctx context.Context, payload bridgeRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()

		return nil, errors.Errorf("bridge returned non-success status: %d", resp.StatusCode)
	}

	return resp, nil
}
