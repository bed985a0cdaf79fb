package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"
	"civicfix/internal/pkg/upload"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintService governs the complaint lifecycle: creation, the status
// state machine, evidence attachment, and feedback. Every mutating
// operation authorizes the acting principal before touching the record.
type ComplaintService struct {
	complaintRepo repositories.ComplaintRepository
}

// NewComplaintService creates a new complaint service
func NewComplaintService(complaintRepo repositories.ComplaintRepository) *ComplaintService {
	return &ComplaintService{complaintRepo: complaintRepo}
}

// CreateComplaintInput represents complaint creation input. Media holds
// upload results already produced by the media store.
type CreateComplaintInput struct {
	Category    string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Media       []upload.Result
}

// UserStats represents a user's complaint counts
type UserStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

// Create files a new complaint for the acting user. Status is forced to
// Pending and media is partitioned into images and videos. Zero media is
// valid.
func (s *ComplaintService) Create(ctx context.Context, p domain.Principal, input *CreateComplaintInput) (*models.Complaint, error) {
	user, ok := p.(domain.UserPrincipal)
	if !ok {
		return nil, domain.ErrForbidden
	}

	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.ErrValidation
	}

	images, videos := upload.Partition(input.Media)

	complaint := &models.Complaint{
		Code:        generateComplaintCode(),
		UserID:      user.ID,
		Category:    category,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     input.Address,
		Images:      images,
		Videos:      videos,
		Status:      domain.StatusPending,
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	log.Printf("✅ Complaint created: %s (user %d)", complaint.Code, user.ID)
	return s.reload(ctx, complaint.ID)
}

// GetByID returns a single complaint, visible to its owner and to admins
func (s *ComplaintService) GetByID(ctx context.Context, p domain.Principal, id uint) (*models.Complaint, error) {
	complaint, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Authorize(p, domain.ActionViewComplaint, complaint.UserID); err != nil {
		return nil, err
	}
	return complaint, nil
}

// ListOwn returns the acting user's complaints, newest first
func (s *ComplaintService) ListOwn(ctx context.Context, p domain.Principal) ([]*models.Complaint, error) {
	user, ok := p.(domain.UserPrincipal)
	if !ok {
		return nil, domain.ErrForbidden
	}
	return s.complaintRepo.ListByUser(ctx, user.ID)
}

// ListAll returns complaints matching the filter with pagination.
// Admin only.
func (s *ComplaintService) ListAll(ctx context.Context, p domain.Principal, filter repositories.ComplaintFilter, offset, limit int) ([]*models.Complaint, int64, error) {
	if err := domain.Authorize(p, domain.ActionListAllComplaints, 0); err != nil {
		return nil, 0, err
	}
	return s.complaintRepo.List(ctx, filter, offset, limit)
}

// UpdateStatus performs the explicit status transition. Any target status
// is accepted from any source status. Resolving stamps ResolvedAt; the
// assignee is recorded only when the acting admin has a persisted id.
func (s *ComplaintService) UpdateStatus(ctx context.Context, p domain.Principal, id uint, statusStr, remarks string) (*models.Complaint, error) {
	if err := domain.Authorize(p, domain.ActionUpdateStatus, 0); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}

	complaint, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var assignee *uint
	if adminID, ok := domain.AdminID(p); ok {
		assignee = &adminID
	}

	complaint.ApplyStatus(status, remarks, assignee, time.Now())

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	log.Printf("✅ Complaint %s status updated to %s", complaint.Code, status)
	return s.reload(ctx, complaint.ID)
}

// AttachEvidence records resolution evidence and force-resolves the
// complaint. Evidence replaces any prior set and this transition fires
// from any state, outranking an explicit status in the same request.
func (s *ComplaintService) AttachEvidence(ctx context.Context, p domain.Principal, id uint, uploads []upload.Result) (*models.Complaint, error) {
	if err := domain.Authorize(p, domain.ActionAttachEvidence, 0); err != nil {
		return nil, err
	}

	// Evidence is images only
	for _, r := range uploads {
		if r.IsVideo() {
			return nil, domain.ErrValidation
		}
	}

	urls := upload.URLs(uploads)
	if len(urls) == 0 {
		return nil, domain.ErrValidation
	}

	complaint, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	complaint.AttachEvidence(urls, time.Now())

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	log.Printf("✅ Complaint %s resolved with %d evidence file(s)", complaint.Code, len(urls))
	return s.reload(ctx, complaint.ID)
}

// SubmitFeedback records the owner's rating and comment. Gated on
// ownership only; status is not consulted.
func (s *ComplaintService) SubmitFeedback(ctx context.Context, p domain.Principal, id uint, rating, comment string) (*models.Complaint, error) {
	complaint, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Authorize(p, domain.ActionSubmitFeedback, complaint.UserID); err != nil {
		return nil, err
	}

	complaint.SetFeedback(rating, comment, time.Now())

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return s.reload(ctx, complaint.ID)
}

// Stats returns the acting user's complaint counts by status
func (s *ComplaintService) Stats(ctx context.Context, p domain.Principal) (*UserStats, error) {
	user, ok := p.(domain.UserPrincipal)
	if !ok {
		return nil, domain.ErrForbidden
	}

	stats := &UserStats{}
	var err error
	if stats.Total, err = s.complaintRepo.CountByUser(ctx, user.ID, ""); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.complaintRepo.CountByUser(ctx, user.ID, domain.StatusPending); err != nil {
		return nil, err
	}
	if stats.InProgress, err = s.complaintRepo.CountByUser(ctx, user.ID, domain.StatusInProgress); err != nil {
		return nil, err
	}
	if stats.Resolved, err = s.complaintRepo.CountByUser(ctx, user.ID, domain.StatusResolved); err != nil {
		return nil, err
	}
	return stats, nil
}

// get fetches a complaint, mapping the store's not-found error
func (s *ComplaintService) get(ctx context.Context, id uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}

// reload re-reads a complaint so responses carry fresh relations
func (s *ComplaintService) reload(ctx context.Context, id uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

// generateComplaintCode builds the citizen-facing complaint identifier,
// unique and never reused
func generateComplaintCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:9]
	return fmt.Sprintf("CMP-%d-%s", time.Now().UnixMilli(), suffix)
}
