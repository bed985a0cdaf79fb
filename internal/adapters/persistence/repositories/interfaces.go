package repositories

import (
	"context"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/core/domain"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
}

// AdminRepository defines admin persistence operations
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ComplaintFilter narrows admin complaint listings
type ComplaintFilter struct {
	Status   domain.Status
	Category domain.Category
}

// ComplaintRepository defines complaint persistence operations
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id uint) (*models.Complaint, error)
	Update(ctx context.Context, complaint *models.Complaint) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter, offset, limit int) ([]*models.Complaint, int64, error)
	Recent(ctx context.Context, limit int) ([]*models.Complaint, error)
	Count(ctx context.Context, filter ComplaintFilter) (int64, error)
	CountByUser(ctx context.Context, userID uint, status domain.Status) (int64, error)
}
