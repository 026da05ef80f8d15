package server

import (
	"net/http"

	"motohub/inquiry"

	"github.com/labstack/echo/v4"
)

// handleInquiry always answers 200 with a success/failure envelope. The
// contact form shows its own error message; an HTTP error status would only
// trip generic client error handling.
func (s *server) handleInquiry(c echo.Context) error {
	var form map[string]any
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusOK, inquiry.Result{Success: false, Message: "invalid request body"})
	}

	return c.JSON(http.StatusOK, s.relay.Forward(c.Request().Context(), form))
}
