// Package commandsmock holds gomock mocks for the write-side ports.
package commandsmock

import (
	"context"
	"reflect"
	"time"

	"resione-server/internal/domain/reservation"
	"resione-server/internal/domain/user"
	"resione-server/internal/infra/pg"
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

type MockReservationRepository struct {
	ctrl     *gomock.Controller
	recorder *MockReservationRepositoryMockRecorder
}

type MockReservationRepositoryMockRecorder struct {
	mock *MockReservationRepository
}

func NewMockReservationRepository(ctrl *gomock.Controller) *MockReservationRepository {
	mock := &MockReservationRepository{ctrl: ctrl}
	mock.recorder = &MockReservationRepositoryMockRecorder{mock}
	return mock
}

func (m *MockReservationRepository) EXPECT() *MockReservationRepositoryMockRecorder {
	return m.recorder
}

func (m *MockReservationRepository) Create(ctx context.Context, db pg.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, db, res)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationRepositoryMockRecorder) Create(ctx, db, res any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockReservationRepository)(nil).Create), ctx, db, res)
}

func (m *MockReservationRepository) FindByIDForUpdate(ctx context.Context, tx pg.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByIDForUpdate", ctx, tx, id)
	ret0, _ := ret[0].(*reservation.Reservation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationRepositoryMockRecorder) FindByIDForUpdate(ctx, tx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByIDForUpdate", reflect.TypeOf((*MockReservationRepository)(nil).FindByIDForUpdate), ctx, tx, id)
}

func (m *MockReservationRepository) HasApprovedOverlap(ctx context.Context, db pg.DBTX, zone, date, start, end string, excludeID uuid.UUID) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasApprovedOverlap", ctx, db, zone, date, start, end, excludeID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationRepositoryMockRecorder) HasApprovedOverlap(ctx, db, zone, date, start, end, excludeID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasApprovedOverlap", reflect.TypeOf((*MockReservationRepository)(nil).HasApprovedOverlap), ctx, db, zone, date, start, end, excludeID)
}

func (m *MockReservationRepository) SaveDecision(ctx context.Context, tx pg.DBTX, res *reservation.Reservation) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveDecision", ctx, tx, res)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockReservationRepositoryMockRecorder) SaveDecision(ctx, tx, res any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveDecision", reflect.TypeOf((*MockReservationRepository)(nil).SaveDecision), ctx, tx, res)
}

func (m *MockReservationRepository) SaveFields(ctx context.Context, tx pg.DBTX, res *reservation.Reservation) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveFields", ctx, tx, res)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockReservationRepositoryMockRecorder) SaveFields(ctx, tx, res any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveFields", reflect.TypeOf((*MockReservationRepository)(nil).SaveFields), ctx, tx, res)
}

func (m *MockReservationRepository) Delete(ctx context.Context, db pg.DBTX, id uuid.UUID) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, db, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationRepositoryMockRecorder) Delete(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockReservationRepository)(nil).Delete), ctx, db, id)
}

type MockNotificationRepository struct {
	ctrl     *gomock.Controller
	recorder *MockNotificationRepositoryMockRecorder
}

type MockNotificationRepositoryMockRecorder struct {
	mock *MockNotificationRepository
}

func NewMockNotificationRepository(ctrl *gomock.Controller) *MockNotificationRepository {
	mock := &MockNotificationRepository{ctrl: ctrl}
	mock.recorder = &MockNotificationRepositoryMockRecorder{mock}
	return mock
}

func (m *MockNotificationRepository) EXPECT() *MockNotificationRepositoryMockRecorder {
	return m.recorder
}

func (m *MockNotificationRepository) CreateJob(ctx context.Context, tx pg.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateJob", ctx, tx, kind, topic, payload, runAt)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockNotificationRepositoryMockRecorder) CreateJob(ctx, tx, kind, topic, payload, runAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateJob", reflect.TypeOf((*MockNotificationRepository)(nil).CreateJob), ctx, tx, kind, topic, payload, runAt)
}

type MockReservationReads struct {
	ctrl     *gomock.Controller
	recorder *MockReservationReadsMockRecorder
}

type MockReservationReadsMockRecorder struct {
	mock *MockReservationReads
}

func NewMockReservationReads(ctrl *gomock.Controller) *MockReservationReads {
	mock := &MockReservationReads{ctrl: ctrl}
	mock.recorder = &MockReservationReadsMockRecorder{mock}
	return mock
}

func (m *MockReservationReads) EXPECT() *MockReservationReadsMockRecorder {
	return m.recorder
}

func (m *MockReservationReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationReadsMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockReservationReads)(nil).FindByID), ctx, id)
}

type MockUserReads struct {
	ctrl     *gomock.Controller
	recorder *MockUserReadsMockRecorder
}

type MockUserReadsMockRecorder struct {
	mock *MockUserReads
}

func NewMockUserReads(ctrl *gomock.Controller) *MockUserReads {
	mock := &MockUserReads{ctrl: ctrl}
	mock.recorder = &MockUserReadsMockRecorder{mock}
	return mock
}

func (m *MockUserReads) EXPECT() *MockUserReadsMockRecorder {
	return m.recorder
}

func (m *MockUserReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*queries.AuthorizedUserView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockUserReadsMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockUserReads)(nil).FindByID), ctx, id)
}

func (m *MockUserReads) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByEmail", ctx, email)
	ret0, _ := ret[0].(*queries.AuthorizedUserView)
	ret1, _ := ret[1].(string)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockUserReadsMockRecorder) FindByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByEmail", reflect.TypeOf((*MockUserReads)(nil).FindByEmail), ctx, email)
}

type MockUserWriter struct {
	ctrl     *gomock.Controller
	recorder *MockUserWriterMockRecorder
}

type MockUserWriterMockRecorder struct {
	mock *MockUserWriter
}

func NewMockUserWriter(ctrl *gomock.Controller) *MockUserWriter {
	mock := &MockUserWriter{ctrl: ctrl}
	mock.recorder = &MockUserWriterMockRecorder{mock}
	return mock
}

func (m *MockUserWriter) EXPECT() *MockUserWriterMockRecorder {
	return m.recorder
}

func (m *MockUserWriter) Create(ctx context.Context, db pg.DBTX, u *user.User) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, db, u)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockUserWriterMockRecorder) Create(ctx, db, u any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockUserWriter)(nil).Create), ctx, db, u)
}

func (m *MockUserWriter) UpdateLastLogin(ctx context.Context, db pg.DBTX, userID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateLastLogin", ctx, db, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockUserWriterMockRecorder) UpdateLastLogin(ctx, db, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateLastLogin", reflect.TypeOf((*MockUserWriter)(nil).UpdateLastLogin), ctx, db, userID)
}

type MockCalendarInvalidator struct {
	ctrl     *gomock.Controller
	recorder *MockCalendarInvalidatorMockRecorder
}

type MockCalendarInvalidatorMockRecorder struct {
	mock *MockCalendarInvalidator
}

func NewMockCalendarInvalidator(ctrl *gomock.Controller) *MockCalendarInvalidator {
	mock := &MockCalendarInvalidator{ctrl: ctrl}
	mock.recorder = &MockCalendarInvalidatorMockRecorder{mock}
	return mock
}

func (m *MockCalendarInvalidator) EXPECT() *MockCalendarInvalidatorMockRecorder {
	return m.recorder
}

func (m *MockCalendarInvalidator) Invalidate(ctx context.Context, zone, date string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Invalidate", ctx, zone, date)
}

func (mr *MockCalendarInvalidatorMockRecorder) Invalidate(ctx, zone, date any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Invalidate", reflect.TypeOf((*MockCalendarInvalidator)(nil).Invalidate), ctx, zone, date)
}
