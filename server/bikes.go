package server

import (
	"log/slog"
	"net/http"

	"motohub/store"

	"github.com/labstack/echo/v4"
)

func (s *server) handleListBikes(c echo.Context) error {
	records, err := s.bikes.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return c.JSON(http.StatusOK, records)
}

func (s *server) handleGetBikeBySlug(c echo.Context) error {
	rec, found, err := s.bikes.GetBySlug(c.Param("key"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "bike not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *server) handleUpsertBike(c echo.Context) error {
	var rec store.Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	stored, created, err := s.bikes.Upsert(rec)
	if err != nil {
		storeFailuresTotal.WithLabelValues("upsert").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if created {
		return c.JSON(http.StatusCreated, stored)
	}
	return c.JSON(http.StatusOK, stored)
}

// handleDeleteBike answers 204 no matter what: the admin UI treats delete as
// idempotent and a missing id is not an error it can act on. Save failures
// are logged and counted but not surfaced.
func (s *server) handleDeleteBike(c echo.Context) error {
	id := c.Param("key")
	if _, err := s.bikes.DeleteByID(id); err != nil {
		storeFailuresTotal.WithLabelValues("delete").Inc()
		slog.Error("bike delete: save failed", "id", id, "err", err)
	}
	return c.NoContent(http.StatusNoContent)
}
