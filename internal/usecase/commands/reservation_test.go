//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/pkg/clock"
	"resione-server/internal/usecase/commands"
	"resione-server/tests/common/builder"
	commandsmock "resione-server/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// passthroughUoW runs the callback directly; the ports are mocked, so no
// real transaction is needed.
type passthroughUoW struct{}

func (passthroughUoW) Within(ctx context.Context, fn func(context.Context, pg.DBTX) error) error {
	return fn(ctx, nil)
}

func (passthroughUoW) WithDB(ctx context.Context, fn func(context.Context, pg.DBTX) error) error {
	return fn(ctx, nil)
}

type ReservationCommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	reservationRepo  *commandsmock.MockReservationRepository
	notificationRepo *commandsmock.MockNotificationRepository
	reservationReads *commandsmock.MockReservationReads
	userReads        *commandsmock.MockUserReads
	calendarCache    *commandsmock.MockCalendarInvalidator
	clock            *clock.FixedClock
	commands         commands.ReservationCommands

	resident commands.Actor
	admin    commands.Actor
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.reservationRepo = commandsmock.NewMockReservationRepository(s.mockCtrl)
	s.notificationRepo = commandsmock.NewMockNotificationRepository(s.mockCtrl)
	s.reservationReads = commandsmock.NewMockReservationReads(s.mockCtrl)
	s.userReads = commandsmock.NewMockUserReads(s.mockCtrl)
	s.calendarCache = commandsmock.NewMockCalendarInvalidator(s.mockCtrl)

	// Two days before the builder's default slot (2026-09-15 10:00 local).
	s.clock = clock.NewFixedClock(time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

	loc, err := time.LoadLocation("America/Bogota")
	s.Require().NoError(err)

	s.commands = commands.NewReservationCommands(
		passthroughUoW{},
		s.reservationRepo,
		s.notificationRepo,
		s.reservationReads,
		s.userReads,
		s.calendarCache,
		reservation.NewCancellationPolicy(loc),
		s.clock,
	)

	s.resident = commands.Actor{ID: uuid.New(), Email: "maria@example.com", Role: "residente"}
	s.admin = commands.Actor{ID: uuid.New(), Email: "admin@example.com", Role: "administrador"}
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) pendingReservation() *reservation.Reservation {
	res, err := builder.NewReservationBuilder().BuildDomain()
	s.Require().NoError(err)
	return res
}

func (s *ReservationCommandsTestSuite) approvedReservation() *reservation.Reservation {
	res := s.pendingReservation()
	s.Require().NoError(res.Approve(s.admin.Email, s.clock.Now()))
	return res
}

func (s *ReservationCommandsTestSuite) TestSubmit() {
	b := builder.NewReservationBuilder()
	req := b.BuildDTO()
	userView := builder.NewUserBuilder().BuildView()
	s.resident.ID = userView.ID

	s.Run("persists a pending reservation when the slot is free", func() {
		s.userReads.EXPECT().FindByID(gomock.Any(), userView.ID).Return(userView, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), b.Zone, b.Date, b.StartTime, b.EndTime, uuid.Nil).
			Return(false, nil)
		s.reservationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(b.ID, nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_submitted", gomock.Any(), gomock.Any()).
			Return(nil)
		s.reservationReads.EXPECT().FindByID(gomock.Any(), b.ID).Return(b.BuildView(), nil)

		view, err := s.commands.Submit(context.Background(), req, s.resident)
		s.Require().NoError(err)
		s.Equal("pendiente", view.Status)
	})

	s.Run("fails with conflict when the slot overlaps an approved reservation", func() {
		s.userReads.EXPECT().FindByID(gomock.Any(), userView.ID).Return(userView, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), b.Zone, b.Date, b.StartTime, b.EndTime, uuid.Nil).
			Return(true, nil)

		_, err := s.commands.Submit(context.Background(), req, s.resident)
		s.ErrorIs(err, commands.ErrReservationConflict)
	})

	s.Run("fails validation on a malformed slot", func() {
		bad := req
		bad.EndTime = "09:00"
		s.userReads.EXPECT().FindByID(gomock.Any(), userView.ID).Return(userView, nil)

		_, err := s.commands.Submit(context.Background(), bad, s.resident)
		s.ErrorIs(err, commands.ErrDomainValidation)
	})

	s.Run("fails when the resident profile is incomplete", func() {
		incomplete := builder.NewUserBuilder().With(func(u *builder.UserBuilder) {
			u.ID = userView.ID
			u.Unit = ""
		}).BuildView()
		s.userReads.EXPECT().FindByID(gomock.Any(), userView.ID).Return(incomplete, nil)

		_, err := s.commands.Submit(context.Background(), req, s.resident)
		s.ErrorIs(err, commands.ErrRequesterIncomplete)
	})
}

func (s *ReservationCommandsTestSuite) TestApprove() {
	s.Run("approves a pending reservation with no overlap", func() {
		res := s.pendingReservation()
		view := builder.NewReservationBuilder().BuildView()
		view.ID = res.ID()
		view.Status = "aprobada"

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), res.Zone(), res.Date().String(), "10:00", "12:00", res.ID()).
			Return(false, nil)
		s.reservationRepo.EXPECT().SaveDecision(gomock.Any(), gomock.Any(), res).Return(nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_approved", gomock.Any(), gomock.Any()).
			Return(nil)
		s.calendarCache.EXPECT().Invalidate(gomock.Any(), res.Zone(), res.Date().String())
		s.reservationReads.EXPECT().FindByID(gomock.Any(), res.ID()).Return(view, nil)

		got, err := s.commands.Approve(context.Background(), res.ID(), s.admin)
		s.Require().NoError(err)
		s.Equal("aprobada", got.Status)
		s.Equal(s.admin.Email, res.RespondedBy())
	})

	s.Run("fails with conflict when a competing approval won the slot", func() {
		res := s.pendingReservation()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), res.Zone(), res.Date().String(), "10:00", "12:00", res.ID()).
			Return(true, nil)

		_, err := s.commands.Approve(context.Background(), res.ID(), s.admin)
		s.ErrorIs(err, commands.ErrReservationConflict)
	})

	s.Run("maps the exclusion constraint to conflict", func() {
		res := s.pendingReservation()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.reservationRepo.EXPECT().SaveDecision(gomock.Any(), gomock.Any(), res).
			Return(infra.WrapRepoErr("exclusion", nil, infra.KindConflict))

		_, err := s.commands.Approve(context.Background(), res.ID(), s.admin)
		s.ErrorIs(err, commands.ErrReservationConflict)
	})

	s.Run("fails when the reservation is already approved", func() {
		res := s.approvedReservation()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Approve(context.Background(), res.ID(), s.admin)
		s.ErrorIs(err, commands.ErrReservationNotPending)
	})

	s.Run("fails when the reservation does not exist", func() {
		id := uuid.New()
		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("missing", nil, infra.KindNotFound))

		_, err := s.commands.Approve(context.Background(), id, s.admin)
		s.ErrorIs(err, commands.ErrReservationNotFound)
	})
}

func (s *ReservationCommandsTestSuite) TestReject() {
	s.Run("rejects with a reason and keeps the record", func() {
		res := s.pendingReservation()
		view := builder.NewReservationBuilder().BuildView()
		view.Status = "rechazada"

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().SaveDecision(gomock.Any(), gomock.Any(), res).Return(nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_rejected", gomock.Any(), gomock.Any()).
			Return(nil)
		s.reservationReads.EXPECT().FindByID(gomock.Any(), res.ID()).Return(view, nil)

		got, err := s.commands.Reject(context.Background(), res.ID(), "mantenimiento", s.admin)
		s.Require().NoError(err)
		s.Equal("rechazada", got.Status)
		s.Equal("mantenimiento", res.RejectReason())
	})

	s.Run("requires a reason", func() {
		res := s.pendingReservation()
		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Reject(context.Background(), res.ID(), "", s.admin)
		s.ErrorIs(err, commands.ErrEmptyRejectReason)
	})
}

func (s *ReservationCommandsTestSuite) TestEdit() {
	newSlot := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.StartTime = "14:00"
		b.EndTime = "16:00"
	})
	req := newSlot.BuildEditDTO()

	s.Run("reschedules an approved reservation owned by the caller", func() {
		res := s.approvedReservation()
		view := newSlot.BuildView()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), req.Zone, req.Date, "14:00", "16:00", res.ID()).
			Return(false, nil)
		s.reservationRepo.EXPECT().SaveFields(gomock.Any(), gomock.Any(), res).Return(nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_rescheduled", gomock.Any(), gomock.Any()).
			Return(nil)
		s.calendarCache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any())
		s.reservationReads.EXPECT().FindByID(gomock.Any(), res.ID()).Return(view, nil)

		_, err := s.commands.Edit(context.Background(), res.ID(), req, s.resident)
		s.Require().NoError(err)
		s.Equal("14:00", res.TimeRange().Start().String())
	})

	s.Run("refuses another resident's reservation", func() {
		res := s.approvedReservation()
		stranger := commands.Actor{ID: uuid.New(), Email: "otro@example.com", Role: "residente"}

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Edit(context.Background(), res.ID(), req, stranger)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("refuses a pending reservation", func() {
		res := s.pendingReservation()
		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Edit(context.Background(), res.ID(), req, s.resident)
		s.ErrorIs(err, commands.ErrReservationNotApproved)
	})

	s.Run("fails with conflict and leaves nothing saved when the new slot collides", func() {
		res := s.approvedReservation()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().
			HasApprovedOverlap(gomock.Any(), gomock.Any(), req.Zone, req.Date, "14:00", "16:00", res.ID()).
			Return(true, nil)

		_, err := s.commands.Edit(context.Background(), res.ID(), req, s.resident)
		s.ErrorIs(err, commands.ErrReservationConflict)
	})
}

func (s *ReservationCommandsTestSuite) TestCancel() {
	s.Run("withdraws a pending request without policy checks", func() {
		res := s.pendingReservation()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().Delete(gomock.Any(), gomock.Any(), res.ID()).Return(true, nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_cancelled", gomock.Any(), gomock.Any()).
			Return(nil)

		result, err := s.commands.Cancel(context.Background(), res.ID(), s.resident)
		s.Require().NoError(err)
		s.False(result.WasApproved)
	})

	s.Run("cancels an approved reservation well ahead as normal", func() {
		res := s.approvedReservation()

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().Delete(gomock.Any(), gomock.Any(), res.ID()).Return(true, nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_cancelled", gomock.Any(), gomock.Any()).
			Return(nil)
		s.calendarCache.EXPECT().Invalidate(gomock.Any(), res.Zone(), res.Date().String())

		result, err := s.commands.Cancel(context.Background(), res.ID(), s.resident)
		s.Require().NoError(err)
		s.True(result.WasApproved)
		s.Equal(reservation.CancelNormal, result.Class)
	})

	s.Run("classifies a cancellation inside 24 hours as late", func() {
		res := s.approvedReservation()
		// 2026-09-15 10:00 America/Bogota is 15:00 UTC; 12h before start.
		s.clock.Set(time.Date(2026, 9, 15, 3, 0, 0, 0, time.UTC))

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().Delete(gomock.Any(), gomock.Any(), res.ID()).Return(true, nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_cancelled", gomock.Any(), gomock.Any()).
			Return(nil)
		s.calendarCache.EXPECT().Invalidate(gomock.Any(), res.Zone(), res.Date().String())

		result, err := s.commands.Cancel(context.Background(), res.ID(), s.resident)
		s.Require().NoError(err)
		s.Equal(reservation.CancelLate, result.Class)
	})

	s.Run("refuses a cancellation two hours before start", func() {
		res := s.approvedReservation()
		s.clock.Set(time.Date(2026, 9, 15, 13, 30, 0, 0, time.UTC))

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Cancel(context.Background(), res.ID(), s.resident)
		s.ErrorIs(err, commands.ErrTooLateToCancel)
	})

	s.Run("refuses another resident's reservation", func() {
		res := s.approvedReservation()
		stranger := commands.Actor{ID: uuid.New(), Email: "otro@example.com", Role: "residente"}

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Cancel(context.Background(), res.ID(), stranger)
		s.ErrorIs(err, commands.ErrForbidden)
	})

	s.Run("admin may cancel any reservation", func() {
		res := s.approvedReservation()
		s.clock.Set(time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)
		s.reservationRepo.EXPECT().Delete(gomock.Any(), gomock.Any(), res.ID()).Return(true, nil)
		s.notificationRepo.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), "email", "reservation_cancelled", gomock.Any(), gomock.Any()).
			Return(nil)
		s.calendarCache.EXPECT().Invalidate(gomock.Any(), res.Zone(), res.Date().String())

		_, err := s.commands.Cancel(context.Background(), res.ID(), s.admin)
		s.NoError(err)
	})

	s.Run("rejected reservation cannot be cancelled", func() {
		res := s.pendingReservation()
		s.Require().NoError(res.Reject("mantenimiento", s.admin.Email, s.clock.Now()))

		s.reservationRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).Return(res, nil)

		_, err := s.commands.Cancel(context.Background(), res.ID(), s.resident)
		s.ErrorIs(err, commands.ErrReservationTerminal)
	})
}
