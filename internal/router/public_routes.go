package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mzigo/insurance-brokerage-portal/internal/config"
	"github.com/mzigo/insurance-brokerage-portal/internal/handler"
	"github.com/mzigo/insurance-brokerage-portal/internal/middleware"
)

// RegisterPublic registers the unauthenticated customer-facing endpoints:
// form submissions, the resource library and document downloads. With a
// Redis client the submission endpoints are rate limited and the resource
// list is response-cached; without one both switch off.
func RegisterPublic(e *echo.Echo, s *handler.SubmitHandler, r *handler.ResourceHandler, rdb *redis.Client) {
	var limit, cache echo.MiddlewareFunc
	if rdb != nil {
		limit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}
	registerPublic(e, s, r, limit, cache)
}

// registerPublic wires the public routes with the given middlewares; a nil
// middleware switches that concern off. Only the form submissions are rate
// limited, the library and download reads stay open.
func registerPublic(e *echo.Echo, s *handler.SubmitHandler, r *handler.ResourceHandler, limit, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")

	// ---- Submissions ----
	var limited []echo.MiddlewareFunc
	if limit != nil {
		limited = append(limited, limit)
	}
	g.POST("/claims", s.SubmitClaim, limited...)
	g.POST("/quotes", s.SubmitQuote, limited...)
	g.POST("/consultations", s.SubmitConsultation, limited...)
	g.POST("/outsourcing", s.SubmitOutsourcing, limited...)
	g.POST("/diaspora", s.SubmitDiaspora, limited...)
	g.POST("/payments", s.SubmitPayment, limited...)

	// ---- Resource library and downloads ----
	if cache != nil {
		g.GET("/resources", r.ListResources, cache)
	} else {
		g.GET("/resources", r.ListResources)
	}
	g.GET("/resources/:id/download", r.DownloadResource)
	g.GET("/documents/:id/download", r.DownloadDocument)
}

// RegisterAuth registers the authentication endpoints. Register, login,
// refresh and logout live on the open group; /v1/auth/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// With a refresh_token body only that session ends; without one every
	// session of the caller is revoked.
	auth.POST("/logout", a.Logout)
}
