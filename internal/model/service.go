package model

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	DurationMin *int      `db:"duration_min" json:"duration_min,omitempty"` // current open-ended duration, in minutes
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ServiceDuration is a dated override of a service's length.
type ServiceDuration struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ServiceID     uuid.UUID  `db:"service_id" json:"service_id"`
	DurationMin   int        `db:"duration_min" json:"duration_min"`
	EffectiveFrom time.Time  `db:"effective_from" json:"effective_from"`
	EffectiveTo   *time.Time `db:"effective_to" json:"effective_to,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
