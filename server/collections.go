package server

import (
	"log/slog"
	"net/http"

	"motohub/collection"
	"motohub/store"

	"github.com/labstack/echo/v4"
)

// registerCollection mounts the shared list/upsert/delete routes for one
// single-backing-file collection. Bikes has its own handlers because of the
// brand routing and slug lookup.
func (s *server) registerCollection(e *echo.Echo, col *collection.Collection) {
	base := "/" + col.Name()
	e.GET(base, s.handleList(col))
	e.POST(base, s.handleUpsert(col))
	e.DELETE(base+"/:id", s.handleDelete(col))
}

func (s *server) handleList(col *collection.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := col.List()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		return c.JSON(http.StatusOK, records)
	}
}

func (s *server) handleUpsert(col *collection.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var rec store.Record
		if err := c.Bind(&rec); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
		}

		stored, created, err := col.Upsert(rec)
		if err != nil {
			storeFailuresTotal.WithLabelValues("upsert").Inc()
			return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		if created {
			return c.JSON(http.StatusCreated, stored)
		}
		return c.JSON(http.StatusOK, stored)
	}
}

func (s *server) handleDelete(col *collection.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := col.DeleteByID(c.Param("id")); err != nil {
			storeFailuresTotal.WithLabelValues("delete").Inc()
			slog.Error("delete: save failed", "collection", col.Name(), "id", c.Param("id"), "err", err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (s *server) handleGetNotice(c echo.Context) error {
	rec, found, err := s.notices.GetByID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "notice not found")
	}
	return c.JSON(http.StatusOK, rec)
}
