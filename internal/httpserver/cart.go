package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/letteringshop/storefront/internal/cartcount"
	"github.com/letteringshop/storefront/internal/events"
	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/service"
	"github.com/letteringshop/storefront/internal/transport"
	"github.com/letteringshop/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc      *service.CartService
	Counts   *cartcount.Cache
	Producer *events.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := GetID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCartItems(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal server error")
	}

	// The badge count is re-derived from the authoritative list on every
	// fetch, never updated incrementally.
	total := 0
	for _, it := range items {
		total += int(it.Quantity)
	}
	h.Counts.Set(userID, total)

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := GetID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.VariantID == uuid.Nil {
		l.Warn("add_to_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, "variant_id required")
	}

	item := models.CartItem{
		UserID:    userID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	}
	if err := h.Svc.AddToCart(ctx, &item); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"variantID": req.VariantID,
		"quantity":  item.Quantity,
	})

	l.Info("item added to cart", "variant_id", req.VariantID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart.item")

	userID, err := GetID(c)
	if err != nil {
		l.Error("update_cart_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	item, removed, err := h.Svc.UpdateCartItem(ctx, lineID, userID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_cart_item_not_found", "status", 404, "line_id", lineID)
			return c.JSON(http.StatusNotFound, "item not found")
		}
		l.Error("update_cart_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":    "cart_item_updated",
		"userID":  userID,
		"lineID":  lineID,
		"removed": removed,
	})

	if removed {
		return c.JSON(http.StatusOK, map[string]any{"deleted_item": lineID})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.from.cart")

	userID, err := GetID(c)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveFromCart(ctx, lineID, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_not_found", "status", 404, "line_id", lineID)
			return c.JSON(http.StatusNotFound, "item not found")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":   "cart_item_deleted",
		"userID": userID,
		"lineID": lineID,
	})

	return c.JSON(http.StatusOK, map[string]any{"deleted_item": lineID})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	userID, err := GetID(c)
	if err != nil {
		l.Error("clear_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.Counts.Clear(userID)

	publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, "cart successfully cleared")
}

// GetCartCount serves the advisory badge count. It reads the cache only and
// may lag the store until the next full cart fetch.
func (h *CartHTTP) GetCartCount(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(http.StatusOK, transport.CartCountResponse{Count: h.Counts.Get(userID)})
}

// Checkout is a placeholder. Payment is not wired up; the endpoint only
// reports that checkout is unavailable and mutates nothing.
func (h *CartHTTP) Checkout(c echo.Context) error {
	if _, err := GetID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "checkout is not available yet",
	})
}
