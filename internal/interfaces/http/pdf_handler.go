package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/accountsy/billing-api/internal/application/dto"
	"github.com/accountsy/billing-api/internal/application/render"
	"github.com/accountsy/billing-api/internal/domain"
	"github.com/accountsy/billing-api/internal/domain/invoice"
)

// PDFHandler serves invoice document rendering and delivery.
type PDFHandler struct {
	uc *render.UseCase
}

// NewPDFHandler builds the handler.
func NewPDFHandler(uc *render.UseCase) *PDFHandler {
	return &PDFHandler{uc: uc}
}

// Create renders the payload and stores it as the latest document.
// POST /create-pdf
func (h *PDFHandler) Create(c *fiber.Ctx) error {
	var payload invoice.Payload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if _, err := h.uc.CreateDocument(c.Context(), &payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER_FAILED", Message: "failed to create invoice PDF"})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Fetch streams the latest rendered document as a download.
// GET /fetch-pdf
func (h *PDFHandler) Fetch(c *fiber.Ctx) error {
	buf, err := h.uc.LatestDocument()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no invoice PDF available, create one first"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+render.AttachmentName)
	return c.Send(buf)
}

// Send renders the payload and emails it to the payload's recipient address.
// POST /send-pdf
func (h *PDFHandler) Send(c *fiber.Ctx) error {
	var payload invoice.Payload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.uc.SendDocument(c.Context(), &payload, payload.Email); err != nil {
		if errors.Is(err, domain.ErrMissingRecipient) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "recipient email is required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SEND_FAILED", Message: "failed to send invoice email"})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
