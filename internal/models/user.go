// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Plan codes accepted by signup, edit and checkout.
const (
	PlanMensal  = "mensal"
	Plan3Meses  = "3m"
	Plan6Meses  = "6m"
	Plan12Meses = "12m"
)

// User statuses. New accounts default to ativo.
const (
	UserStatusAtivo   = "ativo"
	UserStatusInativo = "inativo"
)

// User represents a subscriber account. Email and login are unique keys.
// The password column holds a bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Login     string    `gorm:"uniqueIndex;not null" json:"login"`
	Senha     string    `gorm:"not null" json:"-"`
	Plano     string    `gorm:"not null" json:"plano"`
	Status    string    `gorm:"not null;default:ativo" json:"status"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidPlan reports whether the given plan code is one of the known tiers.
func IsValidPlan(plano string) bool {
	switch plano {
	case PlanMensal, Plan3Meses, Plan6Meses, Plan12Meses:
		return true
	default:
		return false
	}
}
