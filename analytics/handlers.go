package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the aggregate stats endpoint.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the analytics API on the Echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/analytics/stats", h.handleStats)
}

// handleStats returns per-path view counts. Only aggregates leave the store;
// individual visits are never exposed.
func (h *Handler) handleStats(c echo.Context) error {
	days := 30
	switch c.QueryParam("period") {
	case "day":
		days = 1
	case "week":
		days = 7
	case "year":
		days = 365
	}
	since := time.Now().AddDate(0, 0, -days)
	stats, err := h.store.StatsByPath(since)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = []PathStat{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"since": since,
		"pages": stats,
	})
}

// Middleware records a visit for every successful post-page request.
func Middleware(store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}
			path := c.Request().URL.Path
			if c.Request().Method != http.MethodGet || !trackable(path) {
				return nil
			}
			if c.Response().Status >= 300 {
				return nil
			}
			v := Visit{
				Path:      path,
				IPHash:    HashIP(c.RealIP()),
				Referrer:  c.Request().Referer(),
				Timestamp: time.Now().UTC(),
			}
			if err := store.RecordVisit(v); err != nil {
				c.Logger().Warnf("analytics: %v", err)
			}
			return nil
		}
	}
}

func trackable(path string) bool {
	return path == "/" || strings.HasPrefix(path, "/blog/")
}
