package alert

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"focuspit/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopBridge_SendNotification(t *testing.T) {
	var got bridgeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewDesktopBridge(srv.URL, slog.Default())

	err := sink.SendNotification(context.Background(), "u1", "Invite", "alice invited you", map[string]string{"group_id": "g1"})
	require.NoError(t, err)

	assert.Equal(t, "notification", got.Kind)
	assert.Equal(t, "u1", got.ToUID)
	assert.Equal(t, "Invite", got.Title)
	assert.Equal(t, "g1", got.Data["group_id"])
}

func TestDesktopBridge_RequestPermission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(bridgePermissionResponse{Permission: "granted"})
	}))
	defer srv.Close()

	sink := NewDesktopBridge(srv.URL, slog.Default())

	perm, err := sink.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.AlertPermissionGranted, perm)
}

func TestDesktopBridge_BridgeDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewDesktopBridge(srv.URL, slog.Default())

	err := sink.UpdateOverlayBadge(context.Background(), true)
	assert.Error(t, err)
}
