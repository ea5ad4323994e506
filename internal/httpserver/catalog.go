package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/letteringshop/storefront/internal/events"
	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/service"
	"github.com/letteringshop/storefront/internal/transport"
	"github.com/letteringshop/storefront/internal/util"
	"github.com/letteringshop/storefront/pkg/logging"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.products")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.ProductListResponse{Total: total, Items: items})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	prod := models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DeliveryDate: req.DeliveryDate,
	}
	for _, v := range req.Variants {
		prod.Variants = append(prod.Variants, models.ProductVariant{
			Color:    v.Color,
			ImageURL: v.ImageURL,
			Stock:    v.Stock,
		})
	}

	if err := h.Svc.CreateProduct(ctx, &prod); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicProductEvents, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product created", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, "product not found")
		default:
			l.Error("patch_product_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	publish(c, h.Producer, events.TopicProductEvents, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicProductEvents, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}
