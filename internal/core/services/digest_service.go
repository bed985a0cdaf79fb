package services

import (
	"context"
	"log"

	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// DigestService logs a morning backlog digest of unresolved complaints.
// Pure operational logging; it sends nothing anywhere.
type DigestService struct {
	complaintRepo repositories.ComplaintRepository
	cron          *cron.Cron
}

// NewDigestService creates a new digest service
func NewDigestService(complaintRepo repositories.ComplaintRepository) *DigestService {
	return &DigestService{
		complaintRepo: complaintRepo,
		cron:          cron.New(),
	}
}

// Start schedules the daily digest (08:30)
func (s *DigestService) Start() {
	_, err := s.cron.AddFunc("30 8 * * *", s.logBacklog)
	if err != nil {
		log.Printf("❌ Failed to schedule backlog digest: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 Backlog digest scheduled (08:30 daily)")
}

// Stop stops the scheduler
func (s *DigestService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Backlog digest stopped")
}

func (s *DigestService) logBacklog() {
	ctx := context.Background()

	pending, err := s.complaintRepo.Count(ctx, repositories.ComplaintFilter{Status: domain.StatusPending})
	if err != nil {
		log.Printf("❌ Backlog digest query error: %v", err)
		return
	}
	inProgress, err := s.complaintRepo.Count(ctx, repositories.ComplaintFilter{Status: domain.StatusInProgress})
	if err != nil {
		log.Printf("❌ Backlog digest query error: %v", err)
		return
	}

	log.Printf("📋 Complaint backlog: %d pending, %d in progress", pending, inProgress)
}
