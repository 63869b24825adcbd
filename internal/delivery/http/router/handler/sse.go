package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// startSSE prepares the response for server-sent events and returns the
// flusher used after each event.
func startSSE(c echo.Context) (http.Flusher, error) {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set(echo.HeaderCacheControl, "no-cache")
	h.Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming unsupported by response writer")
	}
	flusher.Flush()

	return flusher, nil
}

// writeSSE writes one named event with a JSON payload and flushes it out.
func writeSSE(c echo.Context, flusher http.Flusher, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode event payload")
	}

	if _, err := c.Response().Write([]byte("event: " + event + "\ndata: " + string(data) + "\n\n")); err != nil {
		return errors.Wrap(err, "failed to write event")
	}
	flusher.Flush()

	return nil
}
