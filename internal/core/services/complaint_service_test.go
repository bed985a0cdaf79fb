package services

import (
	"context"
	"strings"
	"testing"

	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"
	"civicfix/internal/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplaintFixture() (*ComplaintService, *fakeComplaintRepo) {
	repo := newFakeComplaintRepo()
	return NewComplaintService(repo), repo
}

func TestCreateComplaint(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()
	citizen := domain.UserPrincipal{ID: 1}

	complaint, err := svc.Create(ctx, citizen, &CreateComplaintInput{
		Category:    "Water",
		Description: "Burst pipe flooding the street",
		Latitude:    12.97,
		Longitude:   77.59,
		Address:     "5th Cross, Jayanagar",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, complaint.Status)
	assert.Equal(t, domain.CategoryWater, complaint.Category)
	assert.Equal(t, uint(1), complaint.UserID)
	assert.True(t, strings.HasPrefix(complaint.Code, "CMP-"))
	assert.Empty(t, complaint.Images)
	assert.Empty(t, complaint.Videos)
	assert.Nil(t, complaint.ResolvedAt)
}

func TestCreateComplaintPartitionsMedia(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	complaint, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{
		Category:    "Road",
		Description: "Pothole near the bus stop",
		Media: []upload.Result{
			{SecureURL: "https://cdn/a", MimeType: "image/jpeg"},
			{SecureURL: "https://cdn/b", ResourceType: "video"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn/a"}, complaint.Images)
	assert.Equal(t, []string{"https://cdn/b"}, complaint.Videos)
}

func TestCreateComplaintValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()
	citizen := domain.UserPrincipal{ID: 1}

	_, err := svc.Create(ctx, citizen, &CreateComplaintInput{Category: "Sewage", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.Create(ctx, citizen, &CreateComplaintInput{Category: "Road", Description: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, domain.AdminPrincipal{ID: 1}, &CreateComplaintInput{Category: "Road", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByIDVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()
	owner := domain.UserPrincipal{ID: 1}

	created, err := svc.Create(ctx, owner, &CreateComplaintInput{Category: "Road", Description: "Pothole"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(ctx, domain.UserPrincipal{ID: 2}, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(ctx, domain.AdminPrincipal{ID: 1}, created.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, owner, 999)
	assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestUpdateStatusByPersistedAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	created, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	admin := domain.AdminPrincipal{ID: 4}
	updated, err := svc.UpdateStatus(ctx, admin, created.ID, "In Progress", "crew dispatched")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, "crew dispatched", updated.OfficerRemarks)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, uint(4), *updated.AssignedToID)
	assert.Nil(t, updated.ResolvedAt)
}

func TestUpdateStatusByFallbackAdminSkipsAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	created, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	fallback := domain.FallbackAdmin{Sentinel: "static-admin"}
	updated, err := svc.UpdateStatus(ctx, fallback, created.ID, "Resolved", "")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusResolved, updated.Status)
	assert.Nil(t, updated.AssignedToID)
	assert.NotNil(t, updated.ResolvedAt)
}

func TestUpdateStatusRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	created, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, domain.UserPrincipal{ID: 1}, created.ID, "Resolved", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, domain.AdminPrincipal{ID: 1}, created.ID, "Closed", "")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, domain.AdminPrincipal{ID: 1}, 999, "Resolved", "")
	assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestAttachEvidenceResolves(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()
	admin := domain.AdminPrincipal{ID: 4}

	created, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, admin, created.ID, "In Progress", "crew dispatched")
	require.NoError(t, err)

	resolved, err := svc.AttachEvidence(ctx, admin, created.ID, []upload.Result{
		{SecureURL: "https://cdn/proof1.jpg"},
		{SecureURL: "https://cdn/proof2.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusResolved, resolved.Status)
	assert.Equal(t, []string{"https://cdn/proof1.jpg", "https://cdn/proof2.jpg"}, resolved.ResolutionProof)
	assert.Equal(t, "crew dispatched", resolved.OfficerRemarks)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestAttachEvidenceRejectsVideo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	created, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	_, err = svc.AttachEvidence(ctx, domain.AdminPrincipal{ID: 1}, created.ID, []upload.Result{
		{SecureURL: "https://cdn/clip.mp4", ResourceType: "video", OriginalName: "clip.mp4"},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The complaint stays untouched: no proof, still pending.
	unchanged, err := svc.GetByID(ctx, domain.AdminPrincipal{ID: 1}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, unchanged.Status)
	assert.Empty(t, unchanged.ResolutionProof)
}

func TestAttachEvidenceRequiresUploads(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	created, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	_, err = svc.AttachEvidence(ctx, domain.AdminPrincipal{ID: 1}, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AttachEvidence(ctx, domain.UserPrincipal{ID: 1}, created.ID, []upload.Result{{SecureURL: "https://cdn/x"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmitFeedbackOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()
	owner := domain.UserPrincipal{ID: 1}

	created, err := svc.Create(ctx, owner, &CreateComplaintInput{Category: "Road", Description: "Pothole"})
	require.NoError(t, err)

	// Feedback is not gated on status; a pending complaint accepts it.
	updated, err := svc.SubmitFeedback(ctx, owner, created.ID, "Good", "quick response")
	require.NoError(t, err)
	assert.Equal(t, "Good", updated.FeedbackRating)
	assert.Equal(t, "quick response", updated.FeedbackComment)

	_, err = svc.SubmitFeedback(ctx, domain.UserPrincipal{ID: 2}, created.ID, "Bad", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListAllRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	_, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Road", Description: "Pothole"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.UserPrincipal{ID: 2}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	list, total, err := svc.ListAll(ctx, domain.AdminPrincipal{ID: 1}, repositories.ComplaintFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = svc.ListAll(ctx, domain.AdminPrincipal{ID: 1}, repositories.ComplaintFilter{Category: domain.CategoryWater}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, _, err = svc.ListAll(ctx, domain.UserPrincipal{ID: 1}, repositories.ComplaintFilter{}, 0, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListOwn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()

	_, err := svc.Create(ctx, domain.UserPrincipal{ID: 1}, &CreateComplaintInput{Category: "Road", Description: "Pothole"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.UserPrincipal{ID: 2}, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	list, err := svc.ListOwn(ctx, domain.UserPrincipal{ID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListOwn(ctx, domain.AdminPrincipal{ID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newComplaintFixture()
	citizen := domain.UserPrincipal{ID: 1}
	admin := domain.AdminPrincipal{ID: 4}

	first, err := svc.Create(ctx, citizen, &CreateComplaintInput{Category: "Road", Description: "Pothole"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, citizen, &CreateComplaintInput{Category: "Water", Description: "Burst pipe"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, admin, first.ID, "Resolved", "patched")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, citizen)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(0), stats.InProgress)
	assert.Equal(t, int64(1), stats.Resolved)
}

func TestComplaintCodesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateComplaintCode()
		assert.False(t, seen[code], code)
		seen[code] = true
	}
}
