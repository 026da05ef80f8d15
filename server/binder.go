package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Binder struct {
	defaultBinder *echo.DefaultBinder
}

// Bind decodes JSON bodies with UseNumber so record ids keep their exact
// numeric representation instead of collapsing to float64.
func (cb *Binder) Bind(i interface{}, c echo.Context) error {
	if c.Request().Method == http.MethodPost || c.Request().Method == http.MethodPut {
		contentType := c.Request().Header.Get(echo.HeaderContentType)

		if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
			dec := json.NewDecoder(c.Request().Body)
			dec.UseNumber()

			if err := dec.Decode(i); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return nil
		}
	}

	return cb.defaultBinder.Bind(i, c)
}
