package services

import (
	"context"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"
)

// DashboardService aggregates complaint counts for the admin dashboard
type DashboardService struct {
	complaintRepo repositories.ComplaintRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(complaintRepo repositories.ComplaintRepository) *DashboardService {
	return &DashboardService{complaintRepo: complaintRepo}
}

// DashboardStats represents admin dashboard data
type DashboardStats struct {
	Total            int64               `json:"total"`
	Pending          int64               `json:"pending"`
	InProgress       int64               `json:"in_progress"`
	Resolved         int64               `json:"resolved"`
	RecentComplaints []*models.Complaint `json:"recent_complaints"`
}

// recentLimit caps the recent-complaints list on the dashboard
const recentLimit = 5

// Stats returns dashboard aggregates. Admin only.
func (s *DashboardService) Stats(ctx context.Context, p domain.Principal) (*DashboardStats, error) {
	if err := domain.Authorize(p, domain.ActionViewDashboard, 0); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	var err error

	if stats.Total, err = s.complaintRepo.Count(ctx, repositories.ComplaintFilter{}); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.complaintRepo.Count(ctx, repositories.ComplaintFilter{Status: domain.StatusPending}); err != nil {
		return nil, err
	}
	if stats.InProgress, err = s.complaintRepo.Count(ctx, repositories.ComplaintFilter{Status: domain.StatusInProgress}); err != nil {
		return nil, err
	}
	if stats.Resolved, err = s.complaintRepo.Count(ctx, repositories.ComplaintFilter{Status: domain.StatusResolved}); err != nil {
		return nil, err
	}

	if stats.RecentComplaints, err = s.complaintRepo.Recent(ctx, recentLimit); err != nil {
		return nil, err
	}

	return stats, nil
}
