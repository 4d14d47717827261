package handlers

import (
	"net/http"

	"livre_manager_go/services"

	"github.com/labstack/echo/v4"
)

// GetTimezonesHandler returns the timezone options for form dropdowns,
// ordered UTC first, then by offset and name.
func GetTimezonesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.TimezoneOptions())
}
