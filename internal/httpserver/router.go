package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/letteringshop/storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	AccountHandler *AccountHTTP
	AuthMW         *authmw.AuthMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	admin := v1.Group("/admin", d.AuthMW.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	cart := v1.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.GET("/count", d.CartHandler.GetCartCount)
	cart.POST("/checkout", d.CartHandler.Checkout)
	cart.PATCH("/items/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/items/:id", d.CartHandler.RemoveFromCart)

	profile := v1.Group("/profile", d.AuthMW.RequireAuth)
	profile.GET("", d.AccountHandler.GetProfile)
	profile.PATCH("", d.AccountHandler.UpdateProfile)
}
