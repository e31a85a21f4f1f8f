package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status values are stored with the Portuguese wire values the clinic
// frontend displays.
type Status string

const (
	StatusPendente  Status = "pendente"
	StatusAprovada  Status = "aprovada"
	StatusRejeitada Status = "rejeitada"
)

// Action is an intent emitted by the staff/admin consulta table.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionReschedule Action = "reschedule"
	ActionDelete     Action = "delete"
)

type Appointment struct {
	ID             uuid.UUID
	PatientName    string
	PatientEmail   string
	Date           time.Time
	Description    string
	Specialty      string
	ProfessionalID uuid.UUID
	Status         Status
	CreatedAt      time.Time
}
