package config

import (
	"log"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin seeds a default persisted admin for development. The fallback
// admin needs no seeding; it lives in configuration only.
func (s *Seeder) seedAdmin() error {
	var count int64
	s.db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	email := getEnv("SEED_ADMIN_EMAIL", "admin@city.gov")
	plain := getEnv("SEED_ADMIN_PASSWORD", "admin123456")

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Name:     getEnv("SEED_ADMIN_NAME", "Municipal Admin"),
		Email:    email,
		Password: hashed,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("🌱 Seeded default admin: %s", email)
	return nil
}
