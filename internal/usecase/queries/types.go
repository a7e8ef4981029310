package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is the full read model served to clients.
type ReservationView struct {
	ID                 uuid.UUID
	Zone               string
	Date               string
	StartTime          string
	EndTime            string
	PartySize          int
	Comment            string
	ResidentEmail      string
	ResidentName       string
	ResidentUnit       string
	ResidentNationalID string
	Status             string
	RespondedBy        *string
	RespondedAt        *time.Time
	RejectReason       *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CalendarEntry is the trimmed projection the mobile calendar colors slots
// with; only approved reservations appear here.
type CalendarEntry struct {
	ID           uuid.UUID `json:"id"`
	Zone         string    `json:"zona"`
	Date         string    `json:"fecha"`
	StartTime    string    `json:"horaInicio"`
	EndTime      string    `json:"horaFin"`
	PartySize    int       `json:"numeroPersonas"`
	ResidentName string    `json:"residenteNombre"`
	ResidentUnit string    `json:"residenteApartamento"`
}

// ReservationFilter narrows List; zero values mean "any". Results are
// always ordered by (date, start time) ascending.
type ReservationFilter struct {
	Status        string
	ResidentEmail string
	Zone          string
	Date          string
}

type AuthorizedUserView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"correo"`
	Role       string     `json:"rol"`
	Name       string     `json:"nombre"`
	Unit       string     `json:"apartamento"`
	NationalID string     `json:"identificacion"`
	IsActive   bool       `json:"activo"`
	LastLogin  *time.Time `json:"ultimoAcceso,omitempty"`
}
