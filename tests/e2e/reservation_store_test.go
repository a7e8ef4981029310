//go:build e2e

package e2e

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/infra/repository"
	"resione-server/internal/infra/uow"
	"resione-server/internal/usecase/shared"
	"resione-server/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

// errSlotTaken is the in-transaction re-check outcome; the workflow maps it
// to its conflict error before it reaches a handler.
var errSlotTaken = errors.New("slot already taken by an approved reservation")

type ReservationStoreTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *repository.ReservationRepository
	uow  shared.UnitOfWork
}

func TestReservationStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationStoreTestSuite))
}

func (s *ReservationStoreTestSuite) SetupSuite() {
	s.pool = setupDatabase(s.T())
	s.repo = repository.NewReservationRepository()
	s.uow = uow.NewPostgresUoW(s.pool)
}

func (s *ReservationStoreTestSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE reservations")
	s.Require().NoError(err)
}

func (s *ReservationStoreTestSuite) createPending(mutate func(*builder.ReservationBuilder)) uuid.UUID {
	s.T().Helper()

	b := builder.NewReservationBuilder()
	if mutate != nil {
		b.With(mutate)
	}
	res, err := b.BuildDomain()
	s.Require().NoError(err)

	id, err := s.repo.Create(context.Background(), s.pool, res)
	s.Require().NoError(err)
	return id
}

// approve runs the same transaction shape as the approval workflow: lock
// the row, re-check approved overlaps under the lock, persist the decision.
func (s *ReservationStoreTestSuite) approve(id uuid.UUID) error {
	return s.uow.Within(context.Background(), func(ctx context.Context, tx pg.DBTX) error {
		res, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		overlap, err := s.repo.HasApprovedOverlap(ctx, tx,
			res.Zone(), res.Date().String(),
			res.TimeRange().Start().String(), res.TimeRange().End().String(),
			res.ID())
		if err != nil {
			return err
		}
		if overlap {
			return errSlotTaken
		}
		if err := res.Approve("admin@example.com", time.Now()); err != nil {
			return err
		}
		return s.repo.SaveDecision(ctx, tx, res)
	})
}

// approveWithoutReCheck skips the in-transaction overlap check, leaving the
// exclusion constraint as the only guard.
func (s *ReservationStoreTestSuite) approveWithoutReCheck(id uuid.UUID) error {
	return s.uow.Within(context.Background(), func(ctx context.Context, tx pg.DBTX) error {
		res, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := res.Approve("admin@example.com", time.Now()); err != nil {
			return err
		}
		return s.repo.SaveDecision(ctx, tx, res)
	})
}

func (s *ReservationStoreTestSuite) status(id uuid.UUID) reservation.Status {
	s.T().Helper()
	res, err := s.repo.FindByID(context.Background(), s.pool, id)
	s.Require().NoError(err)
	return res.Status()
}

func (s *ReservationStoreTestSuite) TestCreateAndFindRoundTrip() {
	id := s.createPending(nil)

	res, err := s.repo.FindByID(context.Background(), s.pool, id)
	s.Require().NoError(err)
	s.Equal("Salón Social", res.Zone())
	s.Equal("2026-09-15", res.Date().String())
	s.Equal("10:00", res.TimeRange().Start().String())
	s.Equal("12:00", res.TimeRange().End().String())
	s.Equal(8, res.PartySize().Int())
	s.Equal("maria@example.com", res.Requester().Email())
	s.Equal(reservation.StatusPending, res.Status())
}

func (s *ReservationStoreTestSuite) TestOverlapReCheckUnderLock() {
	first := s.createPending(nil) // 10:00-12:00
	second := s.createPending(func(b *builder.ReservationBuilder) {
		b.StartTime = "11:00"
		b.EndTime = "13:00"
	})

	s.Require().NoError(s.approve(first))

	err := s.approve(second)
	s.ErrorIs(err, errSlotTaken)
	s.Equal(reservation.StatusPending, s.status(second))
}

func (s *ReservationStoreTestSuite) TestExclusionConstraintBackstop() {
	first := s.createPending(nil) // 10:00-12:00
	second := s.createPending(func(b *builder.ReservationBuilder) {
		b.StartTime = "11:00"
		b.EndTime = "13:00"
	})

	s.Require().NoError(s.approve(first))

	// Bypassing the re-check must not get past the database.
	err := s.approveWithoutReCheck(second)
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindConflict))
	s.Equal(reservation.StatusPending, s.status(second))
}

func (s *ReservationStoreTestSuite) TestTouchingSlotsDoNotConflict() {
	first := s.createPending(nil) // 10:00-12:00
	second := s.createPending(func(b *builder.ReservationBuilder) {
		b.StartTime = "12:00"
		b.EndTime = "13:00"
	})

	s.Require().NoError(s.approve(first))
	s.Require().NoError(s.approve(second))

	s.Equal(reservation.StatusApproved, s.status(first))
	s.Equal(reservation.StatusApproved, s.status(second))
}

func (s *ReservationStoreTestSuite) TestOtherZoneAndDateDoNotConflict() {
	first := s.createPending(nil)
	otherZone := s.createPending(func(b *builder.ReservationBuilder) {
		b.Zone = "Cancha de Tenis"
	})
	otherDate := s.createPending(func(b *builder.ReservationBuilder) {
		b.Date = "2026-09-16"
	})

	s.Require().NoError(s.approve(first))
	s.Require().NoError(s.approve(otherZone))
	s.Require().NoError(s.approve(otherDate))
}

func (s *ReservationStoreTestSuite) TestConcurrentApprovalsOnlyOneWins() {
	first := s.createPending(nil) // 10:00-12:00
	second := s.createPending(func(b *builder.ReservationBuilder) {
		b.StartTime = "11:00"
		b.EndTime = "13:00"
	})

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = s.approve(first)
	}()
	go func() {
		defer wg.Done()
		errs[1] = s.approve(second)
	}()
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err == nil {
			continue
		}
		failures++
		// The loser is stopped by the re-check or by the constraint,
		// depending on commit order.
		s.True(errors.Is(err, errSlotTaken) || infra.IsKind(err, infra.KindConflict),
			"unexpected error: %v", err)
	}
	s.Equal(1, failures)

	var approved int
	err := s.pool.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE zone = $1 AND date = $2::date AND status = 'aprobada'",
		"Salón Social", "2026-09-15").Scan(&approved)
	s.Require().NoError(err)
	s.Equal(1, approved)
}
