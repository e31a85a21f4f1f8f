package directory

import (
	"time"

	"github.com/google/uuid"
)

type Professional struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	Specialties []string
	CreatedAt   time.Time
	CreatedBy   *uuid.UUID
}

// Specialty rows are deduplicated by name; the free-text specialty
// typed into the professional form is upserted against that uniqueness
// constraint.
type Specialty struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

func (p Professional) HasSpecialty(name string) bool {
	for _, s := range p.Specialties {
		if s == name {
			return true
		}
	}
	return false
}
