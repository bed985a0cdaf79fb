package repositories

import (
	"context"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/core/domain"

	"gorm.io/gorm"
)

// complaintRepository implements ComplaintRepository interface
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// Create creates a new complaint
func (r *complaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// GetByID gets a complaint by ID with its relations
func (r *complaintRepository) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("AssignedTo").
		Where("id = ?", id).
		First(&complaint).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Update saves a complaint. Last write wins: no version check is held
// across the read-modify-write of concurrent admin actions.
func (r *complaintRepository) Update(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// ListByUser lists a user's complaints, newest first
func (r *complaintRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

// List lists complaints with filters and pagination, newest first
func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter, offset, limit int) ([]*models.Complaint, int64, error) {
	var complaints []*models.Complaint
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Complaint{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Preload("AssignedTo").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

// Recent lists the most recently created complaints
func (r *complaintRepository) Recent(ctx context.Context, limit int) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&complaints).Error
	return complaints, err
}

// Count counts complaints matching the filter
func (r *complaintRepository) Count(ctx context.Context, filter ComplaintFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Complaint{}), filter).Count(&count).Error
	return count, err
}

// CountByUser counts a user's complaints, optionally by status
func (r *complaintRepository) CountByUser(ctx context.Context, userID uint, status domain.Status) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Complaint{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *complaintRepository) applyFilter(query *gorm.DB, filter ComplaintFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	return query
}
