package models

import (
	"time"

	"civicfix/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity Tables
// ============================================================

// User represents the users table. Users register with email/password or
// are auto-provisioned through the OTP flow with only a mobile number.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100" json:"name"`
	Email     *string        `gorm:"uniqueIndex;size:100" json:"email"`
	Mobile    *string        `gorm:"uniqueIndex;size:20" json:"mobile"`
	Password  string         `gorm:"size:255" json:"-"`
	Language  string         `gorm:"size:20;default:'english'" json:"language"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Language string `json:"language"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Language: u.Language,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	if u.Mobile != nil {
		resp.Mobile = *u.Mobile
	}
	return resp
}

// Admin represents the admins table: persisted administrator records.
// The fallback admin never appears here; it exists only in configuration.
type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminResponse DTO
type AdminResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}

// ============================================================
// Complaint Table
// ============================================================

// Complaint is the central record. Code is the citizen-facing identifier,
// distinct from the storage-assigned primary key.
type Complaint struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Code            string          `gorm:"uniqueIndex;size:40;not null" json:"complaint_id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	Category        domain.Category `gorm:"size:20;not null" json:"category"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Latitude        float64         `gorm:"not null" json:"latitude"`
	Longitude       float64         `gorm:"not null" json:"longitude"`
	Address         string          `gorm:"size:255" json:"address"`
	Images          []string        `gorm:"serializer:json" json:"images"`
	Videos          []string        `gorm:"serializer:json" json:"videos"`
	Status          domain.Status   `gorm:"size:20;default:'Pending';index" json:"status"`
	OfficerRemarks  string          `gorm:"type:text" json:"officer_remarks"`
	ResolutionProof []string        `gorm:"serializer:json" json:"resolution_proof"`
	FeedbackRating  string          `gorm:"size:50" json:"feedback_rating"`
	FeedbackComment string          `gorm:"type:text" json:"feedback_comment"`
	AssignedToID    *uint           `gorm:"index" json:"assigned_to_id"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	ResolvedAt      *time.Time      `json:"resolved_at"`

	// Relations
	User       *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedTo *Admin `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ApplyStatus performs the explicit status transition. Any target is
// accepted from any source state. A transition into Resolved re-stamps
// ResolvedAt on every occurrence. The assignee is recorded only when the
// acting admin has a persisted id; the fallback admin passes nil.
func (c *Complaint) ApplyStatus(target domain.Status, remarks string, assignee *uint, now time.Time) {
	c.Status = target
	if remarks != "" {
		c.OfficerRemarks = remarks
	}
	if target == domain.StatusResolved {
		resolvedAt := now
		c.ResolvedAt = &resolvedAt
	}
	if assignee != nil {
		c.AssignedToID = assignee
	}
	c.UpdatedAt = now
}

// AttachEvidence performs the implicit resolution transition: evidence
// URIs replace any prior set and the status is force-set to Resolved,
// regardless of the prior state. Evidence upload outranks any explicit
// status carried by the same request.
func (c *Complaint) AttachEvidence(uris []string, now time.Time) {
	c.ResolutionProof = uris
	c.Status = domain.StatusResolved
	resolvedAt := now
	c.ResolvedAt = &resolvedAt
	c.UpdatedAt = now
}

// SetFeedback records the owner's rating and comment. At most one pair is
// kept; a resubmission overwrites the previous one.
func (c *Complaint) SetFeedback(rating, comment string, now time.Time) {
	c.FeedbackRating = rating
	c.FeedbackComment = comment
	c.UpdatedAt = now
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Admin{},
		&Complaint{},
	)
}
