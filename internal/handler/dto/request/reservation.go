package request

import (
	"resione-server/internal/domain/reservation"
)

// Wire names stay in Spanish for the existing mobile client.
type CreateReservationRequest struct {
	Zone      string `json:"zona" binding:"required"`
	Date      string `json:"fecha" binding:"required"`
	StartTime string `json:"horaInicio" binding:"required"`
	EndTime   string `json:"horaFin" binding:"required"`
	PartySize int    `json:"numeroPersonas" binding:"required"`
	Comment   string `json:"comentarios"`
}

// ToDomain validates the slot fields and builds a pending reservation for
// the authenticated requester.
func (r CreateReservationRequest) ToDomain(requester reservation.Requester) (*reservation.Reservation, error) {
	date, timeRange, partySize, err := parseSlot(r.Date, r.StartTime, r.EndTime, r.PartySize)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(
		r.Zone,
		date,
		timeRange,
		partySize,
		reservation.NewComment(r.Comment),
		requester,
	), nil
}

type EditReservationRequest struct {
	Zone      string `json:"zona" binding:"required"`
	Date      string `json:"fecha" binding:"required"`
	StartTime string `json:"horaInicio" binding:"required"`
	EndTime   string `json:"horaFin" binding:"required"`
	PartySize int    `json:"numeroPersonas" binding:"required"`
	Comment   string `json:"comentarios"`
}

type RejectReservationRequest struct {
	Reason string `json:"razonRechazo" binding:"required"`
}

func parseSlot(dateStr, startStr, endStr string, size int) (reservation.DayDate, reservation.TimeRange, reservation.PartySize, error) {
	date, err := reservation.NewDayDate(dateStr)
	if err != nil {
		return reservation.DayDate{}, reservation.TimeRange{}, 0, err
	}
	start, err := reservation.NewMinuteTime(startStr)
	if err != nil {
		return reservation.DayDate{}, reservation.TimeRange{}, 0, err
	}
	end, err := reservation.NewMinuteTime(endStr)
	if err != nil {
		return reservation.DayDate{}, reservation.TimeRange{}, 0, err
	}
	timeRange, err := reservation.NewTimeRange(start, end)
	if err != nil {
		return reservation.DayDate{}, reservation.TimeRange{}, 0, err
	}
	partySize, err := reservation.NewPartySize(size)
	if err != nil {
		return reservation.DayDate{}, reservation.TimeRange{}, 0, err
	}
	return date, timeRange, partySize, nil
}

// ParseSlot is the shared validation path for create and edit payloads.
func (r EditReservationRequest) ParseSlot() (reservation.DayDate, reservation.TimeRange, reservation.PartySize, error) {
	return parseSlot(r.Date, r.StartTime, r.EndTime, r.PartySize)
}
