package handlers

import (
	"errors"
	"strconv"

	"civicfix/internal/adapters/http/middleware"
	"civicfix/internal/core/domain"
	"civicfix/internal/core/services"
	"civicfix/internal/pkg/response"
	"civicfix/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// maxUploadFiles caps the number of media files per complaint
const maxUploadFiles = 10

// ComplaintHandler handles citizen complaint endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
	mediaStore       services.MediaStore
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *services.ComplaintService, mediaStore services.MediaStore) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		mediaStore:       mediaStore,
	}
}

// FeedbackRequest represents feedback submission body
type FeedbackRequest struct {
	Rating  string `json:"rating"`
	Comment string `json:"comment"`
}

// Create files a new complaint
// @Summary Create complaint
// @Description File a new complaint with optional media attachments
// @Tags Complaints
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param category formData string true "Complaint category"
// @Param description formData string true "Description"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Param address formData string false "Address"
// @Param media formData file false "Media files (images/videos)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	latitude, latErr := strconv.ParseFloat(c.FormValue("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.FormValue("longitude"), 64)
	if latErr != nil || lngErr != nil {
		return response.BadRequest(c, "Latitude and longitude must be valid coordinates")
	}

	results, err := uploadFormFiles(c, h.mediaStore, "media", services.FolderComplaints, maxUploadFiles, upload.AllowedMedia)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(c, err.Error())
		}
		return response.BadGateway(c, "File upload failed")
	}

	complaint, err := h.complaintService.Create(c.Context(), principal, &services.CreateComplaintInput{
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
		Latitude:    latitude,
		Longitude:   longitude,
		Address:     c.FormValue("address"),
		Media:       results,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCategory):
			return response.BadRequest(c, "Invalid complaint category")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Description is required")
		default:
			return response.FromDomainError(c, err)
		}
	}

	return response.Created(c, "Complaint created successfully", complaint)
}

// ListOwn returns the current user's complaints
// @Summary My complaints
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /complaints/my-complaints [get]
func (h *ComplaintHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	complaints, err := h.complaintService.ListOwn(c.Context(), principal)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "", complaints)
}

// Stats returns the current user's complaint counts
// @Summary My complaint statistics
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /complaints/stats/summary [get]
func (h *ComplaintHandler) Stats(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.complaintService.Stats(c.Context(), principal)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "", stats)
}

// GetByID returns a single complaint, owner or admin only
// @Summary Get complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetByID(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid complaint id")
	}

	complaint, err := h.complaintService.GetByID(c.Context(), principal, uint(id))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "", complaint)
}

// SubmitFeedback records the owner's feedback on a complaint
// @Summary Submit feedback
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body FeedbackRequest true "Rating and comment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/feedback [post]
func (h *ComplaintHandler) SubmitFeedback(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid complaint id")
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.SubmitFeedback(c.Context(), principal, uint(id), req.Rating, req.Comment)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Feedback submitted successfully", complaint)
}
