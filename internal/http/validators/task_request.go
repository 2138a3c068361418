package validators

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

// ValidateTitle rejects requests before they reach the core: missing and
// oversized titles never make it past the handler. The core re-checks both
// anyway; this is just the earliest friendly answer.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(title)) > 200 {
		return echo.NewHTTPError(http.StatusBadRequest, "title must be at most 200 characters")
	}
	return nil
}
