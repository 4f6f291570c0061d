package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "CONFIRMADO"
	StatusCancelled AppointmentStatus = "CANCELADO"
	StatusCompleted AppointmentStatus = "CONCLUIDO"
)

// Appointment represents a booked consultation. Rows are never deleted;
// cancellation and completion are status transitions.
//
// The composite unique index on (nutritionist_id, start_at, active) is
// the double-booking guard. Active is 1 while the appointment is
// CONFIRMADO and NULL otherwise; NULLs never collide in MySQL or SQLite,
// so cancelled rows free their slot while confirmed rows stay unique.
// Conflict detection happens at insert time through this constraint, not
// through a prior read.
type Appointment struct {
	BaseModel
	NutritionistID string            `gorm:"size:36;index;uniqueIndex:idx_confirmed_slot" json:"nutritionistId"`
	ClientID       string            `gorm:"size:36;index" json:"clientId"`
	StartAt        time.Time         `gorm:"not null;uniqueIndex:idx_confirmed_slot" json:"startAt"`
	Modality       Modality          `gorm:"size:20" json:"modality"`
	Status         AppointmentStatus `gorm:"size:20;default:'CONFIRMADO'" json:"status"`
	Active         *int8             `gorm:"uniqueIndex:idx_confirmed_slot" json:"-"`

	// Relations
	Nutritionist Nutritionist `gorm:"foreignKey:NutritionistID" json:"-"`
	Client       Client       `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeSave keeps the Active marker in sync with the status so the
// uniqueness constraint only applies to confirmed rows.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if a.Status == StatusConfirmed {
		one := int8(1)
		a.Active = &one
	} else {
		a.Active = nil
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}
