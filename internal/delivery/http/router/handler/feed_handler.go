package handler

import (
	"log/slog"

	"focuspit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// FeedHandler streams the live notification feed
type FeedHandler struct {
	uc     usecase.FeedUsecase
	logger *slog.Logger
}

// NewFeedHandler is the constructor for FeedHandler
func NewFeedHandler(uc usecase.FeedUsecase, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		uc:     uc,
		logger: logger,
	}
}

// Stream opens the caller's live feed as server-sent events. The first event
// is the catch-up snapshot; subsequent events follow store changes. The
// stream ends when the client disconnects.
func (h *FeedHandler) Stream(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	updates, err := h.uc.Subscribe(ctx, uid)
	if err != nil {
		return handleAppError(c, err)
	}

	flusher, err := startSSE(c)
	if err != nil {
		return err
	}

	for update := range updates {
		if err := writeSSE(c, flusher, "feed", update); err != nil {
			h.logger.Debug("Feed stream closed", slog.String("uid", uid), slog.Any("error", err))

			return nil
		}
	}

	return nil
}
