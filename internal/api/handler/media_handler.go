package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketkit/marketplace-system/internal/core/ports"
	"github.com/marketkit/marketplace-system/internal/core/service"
)

// MediaHandler handles HTTP requests for media operations.
type MediaHandler struct {
	service ports.MediaService
}

func NewMediaHandler(service ports.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload handles POST /api/media/upload. Sellers only. Expects a multipart
// form with a "file" part and a "productId" field.
//
// @Summary      Upload a product image
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file             formData  file    true   "Image file (png, jpeg, or gif, max 2MB)"
// @Param        productId        formData  string  true   "Product the image belongs to"
// @Param        Idempotency-Key  header    string  false  "Idempotency key to prevent duplicate uploads"
// @Success      200              {object}  domain.Media
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /api/media/upload [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	// Read one byte past the cap so the service can tell "exactly at the
	// limit" from "over it" without buffering arbitrarily large bodies.
	data, err := io.ReadAll(io.LimitReader(src, service.MaxUploadSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}

	media, err := h.service.Upload(c.Request().Context(), currentIdentity(c), ports.UploadInput{
		FileName:       fileHeader.Filename,
		ContentType:    fileHeader.Header.Get("Content-Type"),
		Data:           data,
		ProductID:      c.FormValue("productId"),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, media)
}

// ByProduct handles GET /api/media/product/:productId. Open by design.
//
// @Summary      List media for a product
// @Tags         media
// @Produce      json
// @Param        productId  path     string  true  "Product id"
// @Success      200        {array}  domain.Media
// @Router       /api/media/product/{productId} [get]
func (h *MediaHandler) ByProduct(c echo.Context) error {
	list, err := h.service.ListByProduct(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// File handles GET /api/media/file/:filename. Open by design.
//
// @Summary      Download a stored file
// @Tags         media
// @Produce      octet-stream
// @Param        filename  path  string  true  "File locator"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /api/media/file/{filename} [get]
func (h *MediaHandler) File(c echo.Context) error {
	data, contentType, err := h.service.GetFile(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, data)
}
