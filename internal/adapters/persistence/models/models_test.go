package models

import (
	"testing"
	"time"

	"civicfix/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatus(t *testing.T) {
	now := time.Now()
	complaint := &Complaint{Status: domain.StatusPending}

	adminID := uint(4)
	complaint.ApplyStatus(domain.StatusInProgress, "crew dispatched", &adminID, now)

	assert.Equal(t, domain.StatusInProgress, complaint.Status)
	assert.Equal(t, "crew dispatched", complaint.OfficerRemarks)
	require.NotNil(t, complaint.AssignedToID)
	assert.Equal(t, adminID, *complaint.AssignedToID)
	assert.Nil(t, complaint.ResolvedAt)
}

func TestApplyStatusKeepsRemarksWhenEmpty(t *testing.T) {
	complaint := &Complaint{Status: domain.StatusPending, OfficerRemarks: "crew dispatched"}

	complaint.ApplyStatus(domain.StatusResolved, "", nil, time.Now())

	assert.Equal(t, "crew dispatched", complaint.OfficerRemarks)
}

func TestApplyStatusNilAssigneeLeavesAssignment(t *testing.T) {
	adminID := uint(2)
	complaint := &Complaint{Status: domain.StatusPending, AssignedToID: &adminID}

	// The fallback admin acts without a persisted id.
	complaint.ApplyStatus(domain.StatusInProgress, "", nil, time.Now())

	require.NotNil(t, complaint.AssignedToID)
	assert.Equal(t, adminID, *complaint.AssignedToID)
}

func TestApplyStatusRestampsResolvedAt(t *testing.T) {
	complaint := &Complaint{Status: domain.StatusPending}

	first := time.Now().Add(-time.Hour)
	complaint.ApplyStatus(domain.StatusResolved, "", nil, first)
	require.NotNil(t, complaint.ResolvedAt)
	assert.Equal(t, first, *complaint.ResolvedAt)

	second := time.Now()
	complaint.ApplyStatus(domain.StatusResolved, "", nil, second)
	require.NotNil(t, complaint.ResolvedAt)
	assert.Equal(t, second, *complaint.ResolvedAt)
}

func TestAttachEvidenceForcesResolution(t *testing.T) {
	now := time.Now()
	complaint := &Complaint{
		Status:          domain.StatusPending,
		OfficerRemarks:  "crew dispatched",
		ResolutionProof: []string{"https://cdn/old"},
	}

	complaint.AttachEvidence([]string{"https://cdn/a", "https://cdn/b"}, now)

	assert.Equal(t, domain.StatusResolved, complaint.Status)
	assert.Equal(t, []string{"https://cdn/a", "https://cdn/b"}, complaint.ResolutionProof)
	assert.Equal(t, "crew dispatched", complaint.OfficerRemarks)
	require.NotNil(t, complaint.ResolvedAt)
	assert.Equal(t, now, *complaint.ResolvedAt)
	assert.Nil(t, complaint.AssignedToID)
}

func TestSetFeedbackOverwrites(t *testing.T) {
	complaint := &Complaint{}

	complaint.SetFeedback("Good", "quick turnaround", time.Now())
	complaint.SetFeedback("Excellent", "road is fixed", time.Now())

	assert.Equal(t, "Excellent", complaint.FeedbackRating)
	assert.Equal(t, "road is fixed", complaint.FeedbackComment)
}

func TestUserToResponse(t *testing.T) {
	email := "citizen@example.com"
	user := &User{ID: 1, Name: "Asha", Email: &email, Language: "english"}

	resp := user.ToResponse()
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "citizen@example.com", resp.Email)
	assert.Empty(t, resp.Mobile)
}
