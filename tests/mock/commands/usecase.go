package commandsmock

import (
	"context"
	"reflect"

	"resione-server/internal/domain/user"
	reqdto "resione-server/internal/handler/dto/request"
	"resione-server/internal/usecase/commands"
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

type MockReservationCommands struct {
	ctrl     *gomock.Controller
	recorder *MockReservationCommandsMockRecorder
}

type MockReservationCommandsMockRecorder struct {
	mock *MockReservationCommands
}

func NewMockReservationCommands(ctrl *gomock.Controller) *MockReservationCommands {
	mock := &MockReservationCommands{ctrl: ctrl}
	mock.recorder = &MockReservationCommandsMockRecorder{mock}
	return mock
}

func (m *MockReservationCommands) EXPECT() *MockReservationCommandsMockRecorder {
	return m.recorder
}

func (m *MockReservationCommands) Submit(ctx context.Context, req reqdto.CreateReservationRequest, actor commands.Actor) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Submit", ctx, req, actor)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationCommandsMockRecorder) Submit(ctx, req, actor any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Submit", reflect.TypeOf((*MockReservationCommands)(nil).Submit), ctx, req, actor)
}

func (m *MockReservationCommands) Approve(ctx context.Context, id uuid.UUID, actor commands.Actor) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Approve", ctx, id, actor)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationCommandsMockRecorder) Approve(ctx, id, actor any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Approve", reflect.TypeOf((*MockReservationCommands)(nil).Approve), ctx, id, actor)
}

func (m *MockReservationCommands) Reject(ctx context.Context, id uuid.UUID, reason string, actor commands.Actor) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reject", ctx, id, reason, actor)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationCommandsMockRecorder) Reject(ctx, id, reason, actor any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reject", reflect.TypeOf((*MockReservationCommands)(nil).Reject), ctx, id, reason, actor)
}

func (m *MockReservationCommands) Edit(ctx context.Context, id uuid.UUID, req reqdto.EditReservationRequest, actor commands.Actor) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Edit", ctx, id, req, actor)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationCommandsMockRecorder) Edit(ctx, id, req, actor any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Edit", reflect.TypeOf((*MockReservationCommands)(nil).Edit), ctx, id, req, actor)
}

func (m *MockReservationCommands) Cancel(ctx context.Context, id uuid.UUID, actor commands.Actor) (*commands.CancelResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cancel", ctx, id, actor)
	ret0, _ := ret[0].(*commands.CancelResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReservationCommandsMockRecorder) Cancel(ctx, id, actor any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockReservationCommands)(nil).Cancel), ctx, id, actor)
}

type MockAuthCommands struct {
	ctrl     *gomock.Controller
	recorder *MockAuthCommandsMockRecorder
}

type MockAuthCommandsMockRecorder struct {
	mock *MockAuthCommands
}

func NewMockAuthCommands(ctrl *gomock.Controller) *MockAuthCommands {
	mock := &MockAuthCommands{ctrl: ctrl}
	mock.recorder = &MockAuthCommandsMockRecorder{mock}
	return mock
}

func (m *MockAuthCommands) EXPECT() *MockAuthCommandsMockRecorder {
	return m.recorder
}

func (m *MockAuthCommands) Login(ctx context.Context, req reqdto.LoginRequest) (*commands.LoginResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Login", ctx, req)
	ret0, _ := ret[0].(*commands.LoginResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAuthCommandsMockRecorder) Login(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Login", reflect.TypeOf((*MockAuthCommands)(nil).Login), ctx, req)
}

func (m *MockAuthCommands) RefreshToken(ctx context.Context, refreshToken string) (*commands.TokenPair, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RefreshToken", ctx, refreshToken)
	ret0, _ := ret[0].(*commands.TokenPair)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAuthCommandsMockRecorder) RefreshToken(ctx, refreshToken any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RefreshToken", reflect.TypeOf((*MockAuthCommands)(nil).RefreshToken), ctx, refreshToken)
}

func (m *MockAuthCommands) RegisterUser(ctx context.Context, req reqdto.RegisterUserRequest, role user.Role) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RegisterUser", ctx, req, role)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAuthCommandsMockRecorder) RegisterUser(ctx, req, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RegisterUser", reflect.TypeOf((*MockAuthCommands)(nil).RegisterUser), ctx, req, role)
}
