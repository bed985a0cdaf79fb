package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"civicfix/internal/core/domain"
)

// OTP policy
const (
	otpLength      = 6
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
	otpResendAfter = 1 * time.Minute
)

// OTPService handles OTP generation and verification. The store is
// pluggable: in-memory for single-instance deployments, Redis otherwise.
type OTPService struct {
	store OTPStore
}

// NewOTPService creates a new OTP service
func NewOTPService(store OTPStore) *OTPService {
	return &OTPService{store: store}
}

// Generate creates a new 6-digit OTP for a phone number and returns the
// code. SMS delivery is the caller's concern.
func (s *OTPService) Generate(ctx context.Context, phone string) (string, error) {
	existing, err := s.store.Get(ctx, phone)
	if err != nil {
		return "", err
	}

	// Rate limit: a challenge younger than one minute blocks a new request
	if existing != nil && time.Until(existing.ExpiresAt) > otpTTL-otpResendAfter {
		return "", domain.ErrOTPRateLimited
	}

	code, err := secureOTP(otpLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	entry := &OTPEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
		Attempts:  0,
	}
	if err := s.store.Put(ctx, phone, entry); err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks the provided OTP against the pending challenge. A correct
// code consumes the challenge; expiry or too many wrong attempts discard it.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	entry, err := s.store.Get(ctx, phone)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrOTPNotFound
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = s.store.Delete(ctx, phone)
		return domain.ErrOTPExpired
	}

	if entry.Attempts >= otpMaxAttempts {
		_ = s.store.Delete(ctx, phone)
		return domain.ErrOTPTooMany
	}

	if entry.Code != code {
		entry.Attempts++
		if err := s.store.Put(ctx, phone, entry); err != nil {
			return err
		}
		return domain.ErrOTPInvalid
	}

	return s.store.Delete(ctx, phone)
}

// secureOTP generates a crypto-random numeric code of the given length
func secureOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// ============================================================
// In-memory OTP store
// ============================================================

// memoryOTPStore keeps challenges in a mutex-guarded map with a
// background sweep of expired entries.
type memoryOTPStore struct {
	mu      sync.RWMutex
	entries map[string]*OTPEntry
}

// NewMemoryOTPStore creates an in-memory OTP store
func NewMemoryOTPStore() OTPStore {
	s := &memoryOTPStore{entries: make(map[string]*OTPEntry)}
	go s.cleanupLoop()
	return s
}

func (s *memoryOTPStore) Put(_ context.Context, phone string, entry *OTPEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries[phone] = &copied
	return nil
}

func (s *memoryOTPStore) Get(_ context.Context, phone string) (*OTPEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[phone]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (s *memoryOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
	return nil
}

// cleanupLoop removes expired challenges every 5 minutes
func (s *memoryOTPStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for phone, entry := range s.entries {
			if now.After(entry.ExpiresAt) {
				delete(s.entries, phone)
			}
		}
		s.mu.Unlock()
	}
}
