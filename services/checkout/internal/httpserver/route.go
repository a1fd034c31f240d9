package httpserver

import (
	"context"
	"net/http"
	"time"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	CartHandler      *CartHTTP
	OrderHandler     *OrderHTTP
	AdminHandler     *AdminHTTP
	InventoryHandler *InventoryHTTP
	JWTSecret        []byte
	DB               *gorm.DB
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB == nil {
			return c.NoContent(http.StatusOK)
		}
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAuthMiddleware(d.JWTSecret)

	cart := e.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("", d.CartHandler.Clear)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items/:product_id", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:product_id", d.CartHandler.RemoveItem)

	orders := e.Group("/orders", authMW.RequireAuth)
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("", d.OrderHandler.ListMyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/cancel", d.OrderHandler.CancelOrder)

	checkout := e.Group("/checkout", authMW.RequireAuth)
	checkout.PUT("/intent", d.OrderHandler.SaveIntent)
	checkout.POST("/confirm", d.OrderHandler.ConfirmIntent)

	e.GET("/inventory/:product_id", d.InventoryHandler.GetStock, authMW.RequireAuth)

	admin := e.Group("/admin", authMW.RequireAdmin)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PATCH("/products/:id/price", d.AdminHandler.UpdatePrice)
	admin.PATCH("/products/:id/visibility", d.AdminHandler.UpdateVisibility)
	admin.POST("/inventory/:product_id/restock", d.InventoryHandler.Restock)
	admin.POST("/inventory/:product_id/adjust", d.InventoryHandler.Adjust)
	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.PATCH("/orders/:id/status", d.AdminHandler.UpdateStatus)
	admin.POST("/orders/:id/cancel", d.OrderHandler.CancelOrder)
}
