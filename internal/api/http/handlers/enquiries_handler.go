package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/repository"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// EnquiriesHandler serves the public enquiry form and the admin inbox.
type EnquiriesHandler struct {
	enquiries *service.EnquiryService
}

// NewEnquiriesHandler constructs handler.
func NewEnquiriesHandler(enquiryService *service.EnquiryService) *EnquiriesHandler {
	return &EnquiriesHandler{enquiries: enquiryService}
}

// Submit POST /api/enquiries (public).
func (h *EnquiriesHandler) Submit(c *fiber.Ctx) error {
	var req dto.EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	enquiry, err := h.enquiries.Submit(c.Context(), service.EnquiryInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		ProductID: req.ProductID,
	})
	if err != nil {
		return err
	}
	return created(c, fiber.Map{"reference": enquiry.Reference})
}

// List GET /api/admin/enquiries?status=&limit=&offset=.
func (h *EnquiriesHandler) List(c *fiber.Ctx) error {
	filter := repository.EnquiryFilter{}
	filter.Limit, filter.Offset = pagination(c)
	if raw := c.Query("status"); raw != "" {
		status := domain.EnquiryStatus(raw)
		if !domain.ValidEnquiryStatus(status) {
			return apperrors.NewValidationError("status must be one of new, read, resolved")
		}
		filter.Status = &status
	}

	list, err := h.enquiries.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return ok(c, dto.EnquiriesFromDomain(list))
}

// Get GET /api/admin/enquiries/:id.
func (h *EnquiriesHandler) Get(c *fiber.Ctx) error {
	enquiry, err := h.enquiries.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.EnquiryFromDomain(enquiry))
}

// UpdateStatus PUT /api/admin/enquiries/:id.
func (h *EnquiriesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.EnquiryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	enquiry, err := h.enquiries.UpdateStatus(c.Context(), c.Params("id"), domain.EnquiryStatus(req.Status))
	if err != nil {
		return err
	}
	return ok(c, dto.EnquiryFromDomain(enquiry))
}

// Delete DELETE /api/admin/enquiries/:id.
func (h *EnquiriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.enquiries.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "enquiry deleted")
}
