package services

import (
	"context"
	"sync"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// In-memory repository fakes
// ============================================================

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByMobile(_ context.Context, mobile string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Mobile != nil && *user.Mobile == mobile {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	_, err := r.GetByMobile(ctx, mobile)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	nextID uint
	admins map[uint]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{nextID: 1, admins: make(map[uint]*models.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin.ID = r.nextID
	r.nextID++
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id uint) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	nextID     uint
	complaints map[uint]*models.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{nextID: 1, complaints: make(map[uint]*models.Complaint)}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *models.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint.ID = r.nextID
	r.nextID++
	copied := *complaint
	r.complaints[complaint.ID] = &copied
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id uint) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *complaint
	return &copied, nil
}

func (r *fakeComplaintRepo) Update(_ context.Context, complaint *models.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *complaint
	r.complaints[complaint.ID] = &copied
	return nil
}

func (r *fakeComplaintRepo) ListByUser(_ context.Context, userID uint) ([]*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*models.Complaint
	for _, complaint := range r.complaints {
		if complaint.UserID == userID {
			copied := *complaint
			list = append(list, &copied)
		}
	}
	return list, nil
}

func (r *fakeComplaintRepo) List(_ context.Context, filter repositories.ComplaintFilter, offset, limit int) ([]*models.Complaint, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*models.Complaint
	for _, complaint := range r.complaints {
		if r.matches(complaint, filter) {
			copied := *complaint
			list = append(list, &copied)
		}
	}
	total := int64(len(list))
	if offset > len(list) {
		offset = len(list)
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, total, nil
}

func (r *fakeComplaintRepo) Recent(ctx context.Context, limit int) ([]*models.Complaint, error) {
	list, _, err := r.List(ctx, repositories.ComplaintFilter{}, 0, limit)
	return list, err
}

func (r *fakeComplaintRepo) Count(_ context.Context, filter repositories.ComplaintFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, complaint := range r.complaints {
		if r.matches(complaint, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakeComplaintRepo) CountByUser(_ context.Context, userID uint, status domain.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, complaint := range r.complaints {
		if complaint.UserID == userID && (status == "" || complaint.Status == status) {
			count++
		}
	}
	return count, nil
}

func (r *fakeComplaintRepo) matches(complaint *models.Complaint, filter repositories.ComplaintFilter) bool {
	if filter.Status != "" && complaint.Status != filter.Status {
		return false
	}
	if filter.Category != "" && complaint.Category != filter.Category {
		return false
	}
	return true
}
