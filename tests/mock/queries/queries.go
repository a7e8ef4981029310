// Package queriesmock holds gomock mocks for the read-side services.
package queriesmock

import (
	"context"
	"reflect"

	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

type MockReservationQueries struct {
	ctrl     *gomock.Controller
	recorder *MockReservationQueriesMockRecorder
}

type MockReservationQueriesMockRecorder struct {
	mock *MockReservationQueries
}

func NewMockReservationQueries(ctrl *gomock.Controller) *MockReservationQueries {
	mock := &MockReservationQueries{ctrl: ctrl}
	mock.recorder = &MockReservationQueriesMockRecorder{mock}
	return mock
}

func (m *MockReservationQueries) EXPECT() *MockReservationQueriesMockRecorder {
	return m.recorder
}

func (m *MockReservationQueries) GetByID(ctx context.Context, viewer queries.Viewer, id uuid.UUID) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, viewer, id)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationQueriesMockRecorder) GetByID(ctx, viewer, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockReservationQueries)(nil).GetByID), ctx, viewer, id)
}

func (m *MockReservationQueries) List(ctx context.Context, viewer queries.Viewer, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, viewer, filter)
	ret0, _ := ret[0].([]*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationQueriesMockRecorder) List(ctx, viewer, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockReservationQueries)(nil).List), ctx, viewer, filter)
}

func (m *MockReservationQueries) Calendar(ctx context.Context, zone, date string) ([]queries.CalendarEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Calendar", ctx, zone, date)
	ret0, _ := ret[0].([]queries.CalendarEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationQueriesMockRecorder) Calendar(ctx, zone, date any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Calendar", reflect.TypeOf((*MockReservationQueries)(nil).Calendar), ctx, zone, date)
}

type MockUserQueries struct {
	ctrl     *gomock.Controller
	recorder *MockUserQueriesMockRecorder
}

type MockUserQueriesMockRecorder struct {
	mock *MockUserQueries
}

func NewMockUserQueries(ctrl *gomock.Controller) *MockUserQueries {
	mock := &MockUserQueries{ctrl: ctrl}
	mock.recorder = &MockUserQueriesMockRecorder{mock}
	return mock
}

func (m *MockUserQueries) EXPECT() *MockUserQueriesMockRecorder {
	return m.recorder
}

func (m *MockUserQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*queries.AuthorizedUserView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockUserQueriesMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockUserQueries)(nil).GetByID), ctx, id)
}

type MockReservationViewRepo struct {
	ctrl     *gomock.Controller
	recorder *MockReservationViewRepoMockRecorder
}

type MockReservationViewRepoMockRecorder struct {
	mock *MockReservationViewRepo
}

func NewMockReservationViewRepo(ctrl *gomock.Controller) *MockReservationViewRepo {
	mock := &MockReservationViewRepo{ctrl: ctrl}
	mock.recorder = &MockReservationViewRepoMockRecorder{mock}
	return mock
}

func (m *MockReservationViewRepo) EXPECT() *MockReservationViewRepoMockRecorder {
	return m.recorder
}

func (m *MockReservationViewRepo) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationViewRepoMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockReservationViewRepo)(nil).FindByID), ctx, id)
}

func (m *MockReservationViewRepo) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationViewRepoMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockReservationViewRepo)(nil).List), ctx, filter)
}

func (m *MockReservationViewRepo) ApprovedForZoneDate(ctx context.Context, zone, date string) ([]queries.CalendarEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApprovedForZoneDate", ctx, zone, date)
	ret0, _ := ret[0].([]queries.CalendarEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationViewRepoMockRecorder) ApprovedForZoneDate(ctx, zone, date any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApprovedForZoneDate", reflect.TypeOf((*MockReservationViewRepo)(nil).ApprovedForZoneDate), ctx, zone, date)
}
