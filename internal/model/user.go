package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values for role-based access control. The CEO role bypasses the
// permission table entirely (see service.HasPermission).
const (
	RoleCEO          = "ceo"
	RoleAdmin        = "admin"
	RoleStockManager = "stockManager"
	RoleMedicalRep   = "medicalRep"
)

// User stores system users with role-based access.
// Role: "ceo" | "admin" | "stockManager" | "medicalRep"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	// Region restricts a rep to a sales territory; nil = unassigned
	Region      *string
	AvatarURL   *string
	SpecialtyID *uuid.UUID `gorm:"type:uuid;index"`
	Active      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Specialty *Specialty `gorm:"foreignKey:SpecialtyID"`
}
