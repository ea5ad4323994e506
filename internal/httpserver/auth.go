package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letteringshop/storefront/internal/events"
	"github.com/letteringshop/storefront/internal/service"
	"github.com/letteringshop/storefront/internal/transport"
	"github.com/letteringshop/storefront/pkg/jwtutil"
	"github.com/letteringshop/storefront/pkg/logging"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Email, req.Password, req.Name); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusConflict, "account already exists")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	publish(c, h.Producer, events.TopicAccountEvents, map[string]any{
		"type":  "account_registered",
		"email": req.Email,
	})

	l.Info("account registered", "email", req.Email)
	return c.JSON(http.StatusOK, map[string]any{"registered": true})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	setAuthCookies(c, res)

	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		AccessExp:    res.AccessExp.Unix(),
		RefreshExp:   res.RefreshExp.Unix(),
		IsAdmin:      res.IsAdmin,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil || refreshCookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, "refresh token missing")
	}

	res, err := h.Svc.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			clearAuthCookies(c)
			return c.JSON(http.StatusUnauthorized, "invalid refresh token")
		}
		l.Error("refresh_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	setAuthCookies(c, res)

	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		AccessExp:    res.AccessExp.Unix(),
		RefreshExp:   res.RefreshExp.Unix(),
		IsAdmin:      res.IsAdmin,
	})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil || refreshCookie.Value == "" {
		clearAuthCookies(c)
		return c.JSON(http.StatusOK, map[string]any{"logged_out": true})
	}

	if err := h.Svc.LogOut(ctx, refreshCookie.Value); err != nil {
		l.Error("logout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	clearAuthCookies(c)
	return c.JSON(http.StatusOK, map[string]any{"logged_out": true})
}

func setAuthCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(jwtutil.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(jwtutil.CreateCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(jwtutil.DeleteCookie("accessToken", "/"))
	c.SetCookie(jwtutil.DeleteCookie("refreshToken", "/"))
}
