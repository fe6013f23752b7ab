package model

import (
	"time"

	"github.com/google/uuid"
)

// Specialty is a medical specialty (cardiology, oncology, …) used to target
// both reps and stock items at a prescriber audience.
type Specialty struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Specialty) TableName() string { return "specialties" }
