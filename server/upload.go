package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleUpload accepts a multipart image and returns its public URL. No
// content-type or size checks beyond the transport body limit; the admin UI
// is the only client.
func (s *server) handleUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "upload failed")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "upload failed")
	}

	url, err := s.blobs.Save(data, file.Filename)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "upload failed")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
