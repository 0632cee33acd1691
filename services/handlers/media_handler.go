package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almaqal-media/almaqal_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

type MediaUploadResponse struct {
	URL string `json:"url"`
}

// @Summary Upload Media (Admin)
// @Description Upload an image for ad creatives, article covers or tool logos
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param folder path string true "Destination folder: ads, covers or logos"
// @Param file formData file true "Image file (JPG, PNG, GIF, WEBP, SVG)"
// @Success 200 {object} shared.Response{data=handlers.MediaUploadResponse}
// @Router /api/v1/admin/media/{folder} [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	folder := c.Params("folder")
	switch folder {
	case "ads", "covers", "logos":
	default:
		return shared.NewBadRequestError(nil, "Unknown media folder")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	defer file.Close()

	url, err := h.mediaSvc.UploadCreative(folder, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return shared.NewBadRequestError(err, "Upload failed")
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "File uploaded successfully", MediaUploadResponse{URL: url})
}
