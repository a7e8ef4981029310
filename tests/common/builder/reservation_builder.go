//go:build unit || e2e

package builder

import (
	"time"

	"resione-server/internal/domain/reservation"
	reqdto "resione-server/internal/handler/dto/request"
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
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
	Status             reservation.Status
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:                 uuid.New(),
		Zone:               "Salón Social",
		Date:               "2026-09-15",
		StartTime:          "10:00",
		EndTime:            "12:00",
		PartySize:          8,
		Comment:            "Cumpleaños",
		ResidentEmail:      "maria@example.com",
		ResidentName:       "María Gómez",
		ResidentUnit:       "Torre 2 Apto 503",
		ResidentNationalID: "1032456789",
		Status:             reservation.StatusPending,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	date, err := reservation.NewDayDate(b.Date)
	if err != nil {
		return nil, err
	}
	start, err := reservation.NewMinuteTime(b.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := reservation.NewMinuteTime(b.EndTime)
	if err != nil {
		return nil, err
	}
	timeRange, err := reservation.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	partySize, err := reservation.NewPartySize(b.PartySize)
	if err != nil {
		return nil, err
	}
	requester, err := reservation.NewRequester(b.ResidentEmail, b.ResidentName, b.ResidentUnit, b.ResidentNationalID)
	if err != nil {
		return nil, err
	}

	if b.Status == reservation.StatusPending {
		return reservation.NewReservation(b.Zone, date, timeRange, partySize, reservation.NewComment(b.Comment), requester), nil
	}
	return reservation.ReconstructReservation(
		b.ID, b.Zone, date, timeRange, partySize,
		reservation.NewComment(b.Comment), requester,
		b.Status, "admin@example.com", nil, "",
		time.Now(), time.Now(),
	), nil
}

func (b *ReservationBuilder) BuildDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Zone:      b.Zone,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		PartySize: b.PartySize,
		Comment:   b.Comment,
	}
}

func (b *ReservationBuilder) BuildEditDTO() reqdto.EditReservationRequest {
	return reqdto.EditReservationRequest{
		Zone:      b.Zone,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		PartySize: b.PartySize,
		Comment:   b.Comment,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	now := time.Now()
	return &queries.ReservationView{
		ID:                 b.ID,
		Zone:               b.Zone,
		Date:               b.Date,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		PartySize:          b.PartySize,
		Comment:            b.Comment,
		ResidentEmail:      b.ResidentEmail,
		ResidentName:       b.ResidentName,
		ResidentUnit:       b.ResidentUnit,
		ResidentNationalID: b.ResidentNationalID,
		Status:             b.Status.String(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
