// Package router wires handlers and middleware to HTTP routes.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Ramez23/Movies-System/internal/config"
	"github.com/Ramez23/Movies-System/internal/handler"
	"github.com/Ramez23/Movies-System/internal/middleware"
)

// Handlers collects every handler the router needs.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Movies       *handler.MovieHandler
	Halls        *handler.HallHandler
	Showtimes    *handler.ShowtimeHandler
	Reservations *handler.ReservationHandler
}

// Register wires all routes. Public catalog reads may be served from
// the Redis cache; seat availability is always live. Auth endpoints
// are rate limited so credential stuffing has a ceiling.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
	e.GET("/healthz", handler.Health)

	limited := middleware.NewTokenBucket(rlCfg, rdb)
	authGroup := e.Group("/v1/auth", limited)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)

	// Public browsing. These responses change only on admin writes, so
	// a short cache TTL is safe.
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	pub := e.Group("/v1", cached)
	pub.GET("/genres", h.Movies.Genres)
	pub.GET("/movies", h.Movies.List)
	pub.GET("/movies/:id", h.Movies.Get)
	pub.GET("/halls", h.Halls.List)
	pub.GET("/halls/:id", h.Halls.Get)
	pub.GET("/halls/:id/seats", h.Halls.Seats)
	pub.GET("/showtimes", h.Showtimes.List)
	pub.GET("/showtimes/:id", h.Showtimes.Get)

	// Availability bypasses the cache; a stale seat map would invite
	// doomed booking attempts.
	e.GET("/v1/showtimes/:id/seats", h.Reservations.Availability)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", h.Users.Me)
	auth.PATCH("/me", h.Users.UpdateMe)
	auth.DELETE("/me", h.Users.DeleteMe)
	auth.POST("/reservations", h.Reservations.Create)
	auth.GET("/reservations", h.Reservations.ListMine)
	auth.DELETE("/reservations/:id", h.Reservations.Cancel)

	admin := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	admin.POST("/movies", h.Movies.Create)
	admin.PUT("/movies/:id", h.Movies.Update)
	admin.DELETE("/movies/:id", h.Movies.Delete)
	admin.POST("/halls", h.Halls.Create)
	admin.PUT("/halls/:id", h.Halls.Update)
	admin.DELETE("/halls/:id", h.Halls.Delete)
	admin.POST("/showtimes", h.Showtimes.Create)
	admin.PUT("/showtimes/:id", h.Showtimes.Update)
	admin.DELETE("/showtimes/:id", h.Showtimes.Delete)
	admin.GET("/reservations", h.Reservations.ListAll)
	admin.GET("/users/:id", h.Users.Get)
	admin.PATCH("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)
}
