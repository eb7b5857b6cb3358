package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceName = "product-service"

// RegisterHealthRoutes registers liveness/info endpoints. Neither checks
// storage connectivity.
func RegisterHealthRoutes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "ElectroZone Product Service is running",
			"service": serviceName,
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": serviceName,
		})
	})
}
