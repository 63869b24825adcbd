package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"focuspit/internal/delivery/http/middleware"
	"focuspit/internal/delivery/http/validator"
	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/service"
	"focuspit/internal/infra/persistence/memory"
	"focuspit/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dropPublisher struct{}

func (dropPublisher) PublishBroadcastEvent(context.Context, *service.BroadcastEvent) error {
	return nil
}

func (dropPublisher) Close() error { return nil }

func newNotificationHandler(t *testing.T) (*NotificationHandler, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	uc := impl.NewNotificationService(
		memory.NewNotificationRepository(store),
		memory.NewMembershipRepository(store),
		memory.NewUserRepository(store),
		memory.NewTransactionManager(store),
		dropPublisher{},
		slog.Default(),
	)

	return NewNotificationHandler(uc, slog.Default()), store
}

func newJSONContext(t *testing.T, method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUID, uid)

	return c, rec
}

func TestNotificationHandler_Send(t *testing.T) {
	handler, store := newNotificationHandler(t)

	c, rec := newJSONContext(t, http.MethodPost, "/notifications",
		`{"to_uid":"bob","type":"reminder","data":{"text":"stand-up in 5"}}`, "alice")

	require.NoError(t, handler.Send(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	stored, err := memory.NewNotificationRepository(store).FindByRecipient(context.Background(), "bob", 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	// The sender comes from the token, not the request body.
	assert.Equal(t, "alice", stored[0].Data.FromUID)
}

func TestNotificationHandler_Send_ValidationError(t *testing.T) {
	handler, _ := newNotificationHandler(t)

	c, rec := newJSONContext(t, http.MethodPost, "/notifications",
		`{"to_uid":"bob","type":"no_such_type","data":{}}`, "alice")

	require.NoError(t, handler.Send(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestNotificationHandler_ListAndUnreadCount(t *testing.T) {
	handler, store := newNotificationHandler(t)

	repo := memory.NewNotificationRepository(store)
	for _, text := range []string{"first", "second"} {
		err := repo.Create(context.Background(), &entity.Notification{
			ToUID:  "alice",
			Type:   entity.NotificationTypeReminder,
			Status: entity.NotificationStatusPending,
			Data:   entity.NotificationData{FromUID: "bob", Text: text},
		})
		require.NoError(t, err)
	}

	c, rec := newJSONContext(t, http.MethodGet, "/notifications?limit=1", "", "alice")
	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "second")
	assert.NotContains(t, rec.Body.String(), "first")

	c, rec = newJSONContext(t, http.MethodGet, "/notifications/unread-count", "", "alice")
	require.NoError(t, handler.UnreadCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unread_count":2`)
}

func TestNotificationHandler_MarkAsRead_NotRecipient(t *testing.T) {
	handler, store := newNotificationHandler(t)

	repo := memory.NewNotificationRepository(store)
	n := &entity.Notification{
		ToUID:  "alice",
		Type:   entity.NotificationTypeReminder,
		Status: entity.NotificationStatusPending,
		Data:   entity.NotificationData{FromUID: "bob", Text: "hi"},
	}
	require.NoError(t, repo.Create(context.Background(), n))

	c, rec := newJSONContext(t, http.MethodPost, "/notifications/"+n.ID+"/read", "", "mallory")
	c.SetParamNames("id")
	c.SetParamValues(n.ID)

	require.NoError(t, handler.MarkAsRead(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNotificationHandler_Broadcast_RequiresText(t *testing.T) {
	handler, _ := newNotificationHandler(t)

	c, rec := newJSONContext(t, http.MethodPost, "/notifications/broadcast", `{"text":""}`, "alice")

	err := handler.Broadcast(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, http.StatusOK, rec.Code) // handler returned before writing
}
