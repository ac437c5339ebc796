package httpserver

import (
	"context"
	"net/http"

	middleware "github.com/Skotchmaster/bookstore/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
)

const APIVersion = "1.0.0"

type Deps struct {
	AuthHandler     *AuthHTTP
	BookHandler     *BookHTTP
	ReviewHandler   *ReviewHTTP
	CartHandler     *CartHTTP
	WishlistHandler *WishlistHTTP
	OrderHandler    *OrderHTTP
	JWTSecret       []byte
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"message": "Welcome to Bookstore API", "version": APIVersion})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewBearerAuth(d.JWTSecret)
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/me", d.AuthHandler.Me, authMW.RequireAuth)

	books := api.Group("/books")
	books.GET("", d.BookHandler.ListBooks)
	books.GET("/new-releases", d.BookHandler.NewReleases)
	books.GET("/search", d.BookHandler.SearchBooks)
	books.GET("/:id", d.BookHandler.GetBook)
	books.POST("", d.BookHandler.CreateBook, authMW.RequireAdmin)
	books.PUT("/:id", d.BookHandler.UpdateBook, authMW.RequireAdmin)

	reviews := api.Group("/reviews")
	reviews.GET("/book/:bookId", d.ReviewHandler.ListForBook)
	reviews.POST("/book/:bookId", d.ReviewHandler.Create, authMW.RequireAuth)
	reviews.PUT("/:id", d.ReviewHandler.Update, authMW.RequireAuth)
	reviews.DELETE("/:id", d.ReviewHandler.Delete, authMW.RequireAuth)

	cart := api.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	wishlist := api.Group("/wishlist", authMW.RequireAuth)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.AddToWishlist)
	wishlist.DELETE("/:id", d.WishlistHandler.RemoveFromWishlist)

	orders := api.Group("/orders", authMW.RequireAuth)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PUT("/:id/cancel", d.OrderHandler.CancelOrder)
	orders.PUT("/:id/status", d.OrderHandler.UpdateOrderStatus, authMW.RequireAdmin)
}
