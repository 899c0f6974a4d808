package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Registers the swagger document served under /swagger.
	_ "github.com/Shmhzr/ai-voice/docs"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// NewRouter builds the echo instance with every route mounted. Failing health
// checks turn GET /health into a 503.
func NewRouter(server ServerInterface, checks ...HealthCheck) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		for _, check := range checks {
			if err := check(c.Request().Context()); err != nil {
				return c.String(http.StatusServiceUnavailable, "Unhealthy: "+err.Error())
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server)
	return e
}
