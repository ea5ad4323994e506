package httpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/letteringshop/storefront/internal/events"
	"github.com/letteringshop/storefront/pkg/logging"
)

// GetID reads the authenticated user id placed in the context by the auth
// middleware.
func GetID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}

	return userID, nil
}

// publish sends a domain event, logging failures instead of failing the
// request.
func publish(c echo.Context, p *events.Producer, topic string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event_publish_error", "topic", topic, "error", err)
	}
}
