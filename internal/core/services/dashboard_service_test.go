package services

import (
	"context"
	"testing"

	"civicfix/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeComplaintRepo()
	complaints := NewComplaintService(repo)
	dashboard := NewDashboardService(repo)
	admin := domain.AdminPrincipal{ID: 1}

	first, err := complaints.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Road", Description: "Pothole"})
	require.NoError(t, err)
	_, err = complaints.Create(ctx, domain.UserPrincipal{ID: 2}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	_, err = complaints.UpdateStatus(ctx, admin, first.ID, "In Progress", "")
	require.NoError(t, err)

	stats, err := dashboard.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.InProgress)
	assert.Equal(t, int64(0), stats.Resolved)
	assert.Len(t, stats.RecentComplaints, 2)
}

func TestDashboardStatsForbiddenForUsers(t *testing.T) {
	dashboard := NewDashboardService(newFakeComplaintRepo())

	_, err := dashboard.Stats(context.Background(), domain.UserPrincipal{ID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
