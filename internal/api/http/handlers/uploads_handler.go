package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// UploadsHandler proxies admin image uploads to the asset host.
type UploadsHandler struct {
	assets *service.AssetService
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(assetService *service.AssetService) *UploadsHandler {
	return &UploadsHandler{assets: assetService}
}

// Upload POST /api/admin/uploads. Expects a multipart "file" field and an
// optional "folder" field.
func (h *UploadsHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unable to read uploaded file")
	}
	defer file.Close()

	result, err := h.assets.Upload(
		c.Context(),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		c.FormValue("folder"),
	)
	if err != nil {
		return err
	}

	return created(c, dto.UploadResponse{URL: result.URL, PublicID: result.PublicID})
}
