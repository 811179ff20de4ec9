package routes

import (
	"time"

	"memberbase/api/handler"
	"memberbase/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Discounts      *handler.DiscountHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	discountHandler *handler.DiscountHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		Discounts:      discountHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	auth := r.AuthMiddleware.RequireAuth

	e.POST("/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/refresh-token", r.Auth.Refresh, r.AuthRate.Middleware(), auth)
	e.GET("/me", r.Auth.Me, auth)

	e.GET("/users", r.Users.List, auth, middleware.RequireStaff)
	e.PATCH("/users/:id", r.Users.Update, auth)
	e.PATCH("/users/:id/staff", r.Users.SetStaff, auth, middleware.RequireStaff)
	e.PATCH("/users/:id/activate", r.Users.SetActive, auth, middleware.RequireStaff)
	e.PATCH("/users/:id/password", r.Users.ChangePassword, auth, middleware.RequireStaff)
	e.DELETE("/users/:id", r.Users.Delete, auth)

	discounts := e.Group("/discounts", auth, middleware.RequireStaff)
	discounts.GET("", r.Discounts.List)
	discounts.POST("", r.Discounts.Create)
	discounts.PATCH("/:id", r.Discounts.Update)
	discounts.DELETE("/:id", r.Discounts.Delete)
}
