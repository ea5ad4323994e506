package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letteringshop/storefront/internal/service"
	"github.com/letteringshop/storefront/internal/transport"
	"github.com/letteringshop/storefront/pkg/logging"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.profile")

	userID, err := GetID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	account, err := h.Svc.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, "account not found")
		}
		l.Error("get_profile_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, account)
}

func (h *AccountHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.profile")

	userID, err := GetID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateProfile(ctx, userID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, "account not found")
		default:
			l.Error("update_profile_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("profile updated")
	return c.JSON(http.StatusOK, map[string]any{"updated": true})
}
