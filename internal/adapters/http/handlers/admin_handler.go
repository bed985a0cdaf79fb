package handlers

import (
	"errors"

	"civicfix/internal/adapters/http/middleware"
	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"
	"civicfix/internal/core/services"
	"civicfix/internal/pkg/pagination"
	"civicfix/internal/pkg/response"
	"civicfix/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// maxEvidenceFiles caps the number of resolution-proof files per request,
// half the complaint media cap
const maxEvidenceFiles = 5

// AdminHandler handles administrator endpoints
type AdminHandler struct {
	authService      *services.AuthService
	complaintService *services.ComplaintService
	mediaStore       services.MediaStore
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authService *services.AuthService,
	complaintService *services.ComplaintService,
	mediaStore services.MediaStore,
) *AdminHandler {
	return &AdminHandler{
		authService:      authService,
		complaintService: complaintService,
		mediaStore:       mediaStore,
	}
}

// AdminRegisterRequest represents admin registration body
type AdminRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateStatusRequest represents status update body
type UpdateStatusRequest struct {
	Status         string `json:"status"`
	OfficerRemarks string `json:"officer_remarks"`
}

// Register creates a persisted administrator record (initial setup)
// @Summary Register admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminRegisterRequest true "Admin data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/register [post]
func (h *AdminHandler) Register(c *fiber.Ctx) error {
	var req AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.RegisterAdmin(c.Context(), &services.AdminRegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAdminAlreadyExists) {
			return response.Conflict(c, "Admin already exists")
		}
		return response.FromDomainError(c, err)
	}

	return response.Created(c, "Admin registered successfully", fiber.Map{
		"token": result.Token,
		"admin": result.Admin,
	})
}

// ListComplaints lists all complaints with filters and pagination
// @Summary List complaints
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/complaints [get]
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := repositories.ComplaintFilter{
		Status:   domain.Status(c.Query("status")),
		Category: domain.Category(c.Query("category")),
	}
	params := pagination.GetParams(c)

	complaints, total, err := h.complaintService.ListAll(c.Context(), principal, filter, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "", pagination.NewPage(complaints, params, total))
}

// GetComplaint returns a single complaint
// @Summary Get complaint
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/complaints/{id} [get]
func (h *AdminHandler) GetComplaint(c *fiber.Ctx) error {
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

// UpdateStatus changes a complaint's status
// @Summary Update complaint status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body UpdateStatusRequest true "Target status and optional remarks"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/complaints/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid complaint id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.UpdateStatus(c.Context(), principal, uint(id), req.Status, req.OfficerRemarks)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status value")
		}
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Status updated successfully", complaint)
}

// UploadEvidence attaches resolution proof, force-resolving the complaint
// @Summary Upload resolution proof
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param proof formData file true "Evidence images"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /admin/complaints/{id}/resolution-proof [post]
func (h *AdminHandler) UploadEvidence(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid complaint id")
	}

	results, err := uploadFormFiles(c, h.mediaStore, "proof", services.FolderEvidence, maxEvidenceFiles, upload.AllowedImage)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(c, err.Error())
		}
		return response.BadGateway(c, "File upload failed")
	}

	complaint, err := h.complaintService.AttachEvidence(c.Context(), principal, uint(id), results)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(c, "No valid evidence files uploaded")
		}
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Resolution proof uploaded successfully", complaint)
}

// Me returns the current admin's record
// @Summary Current admin
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/me [get]
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	admin, err := h.authService.CurrentAdmin(c.Context(), principal)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "", admin)
}
