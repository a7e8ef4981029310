package response

import (
	"time"

	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Zone               string     `json:"zona"`
	Date               string     `json:"fecha"`
	StartTime          string     `json:"horaInicio"`
	EndTime            string     `json:"horaFin"`
	PartySize          int        `json:"numeroPersonas"`
	Comment            string     `json:"comentarios,omitempty"`
	ResidentEmail      string     `json:"residenteCorreo"`
	ResidentName       string     `json:"residenteNombre"`
	ResidentUnit       string     `json:"residenteApartamento"`
	ResidentNationalID string     `json:"residenteIdentificacion"`
	Status             string     `json:"estado"`
	RespondedBy        *string    `json:"administradorCorreo,omitempty"`
	RespondedAt        *time.Time `json:"fechaRespuesta,omitempty"`
	RejectReason       *string    `json:"razonRechazo,omitempty"`
	CreatedAt          time.Time  `json:"fechaCreacion"`
	UpdatedAt          time.Time  `json:"fechaActualizacion"`
}

// MessageReservationResponse is the {mensaje, reserva} envelope the mobile
// client expects on mutations.
type MessageReservationResponse struct {
	Message     string               `json:"mensaje"`
	Reservation *ReservationResponse `json:"reserva"`
}

type MessageResponse struct {
	Message string `json:"mensaje"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                 rm.ID,
		Zone:               rm.Zone,
		Date:               rm.Date,
		StartTime:          rm.StartTime,
		EndTime:            rm.EndTime,
		PartySize:          rm.PartySize,
		Comment:            rm.Comment,
		ResidentEmail:      rm.ResidentEmail,
		ResidentName:       rm.ResidentName,
		ResidentUnit:       rm.ResidentUnit,
		ResidentNationalID: rm.ResidentNationalID,
		Status:             rm.Status,
		RespondedBy:        rm.RespondedBy,
		RespondedAt:        rm.RespondedAt,
		RejectReason:       rm.RejectReason,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromReservationViews(rms []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromReservationView(rm)
	}
	return out
}
