//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"resione-server/internal/domain/user"
	reqdto "resione-server/internal/handler/dto/request"
	"resione-server/internal/infra"
	"resione-server/internal/pkg/jwt"
	"resione-server/internal/pkg/password"
	"resione-server/internal/usecase/commands"
	"resione-server/tests/common/builder"
	commandsmock "resione-server/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	userRepo   *commandsmock.MockUserWriter
	userReads  *commandsmock.MockUserReads
	jwtService *jwt.Service
	commands   commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.userRepo = commandsmock.NewMockUserWriter(s.mockCtrl)
	s.userReads = commandsmock.NewMockUserReads(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret-key-for-tests-only", 15*time.Minute, 168*time.Hour)
	s.commands = commands.NewAuthCommands(passthroughUoW{}, s.userRepo, s.userReads, s.jwtService)
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) TestLogin() {
	userView := builder.NewUserBuilder().BuildView()
	hash, err := password.HashPassword("contrasena123")
	s.Require().NoError(err)
	req := reqdto.LoginRequest{Email: userView.Email, Password: "contrasena123"}

	s.Run("issues both tokens for valid credentials", func() {
		s.userReads.EXPECT().FindByEmail(gomock.Any(), userView.Email).Return(userView, hash, nil)
		s.userRepo.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), userView.ID).Return(nil)

		result, err := s.commands.Login(context.Background(), req)
		s.Require().NoError(err)
		s.Equal(userView.ID, result.UserID)
		s.Equal("residente", result.Role)

		claims, err := s.jwtService.ValidateToken(result.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeAccess, claims.TokenType)
		s.Equal(userView.ID, claims.UserID)

		claims, err = s.jwtService.ValidateToken(result.TokenPair.RefreshToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeRefresh, claims.TokenType)
	})

	s.Run("a failed last-login update does not fail the login", func() {
		s.userReads.EXPECT().FindByEmail(gomock.Any(), userView.Email).Return(userView, hash, nil)
		s.userRepo.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), userView.ID).
			Return(infra.WrapRepoErr("db down", nil))

		_, err := s.commands.Login(context.Background(), req)
		s.NoError(err)
	})

	s.Run("wrong password", func() {
		s.userReads.EXPECT().FindByEmail(gomock.Any(), userView.Email).Return(userView, hash, nil)

		bad := req
		bad.Password = "incorrecta"
		_, err := s.commands.Login(context.Background(), bad)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("unknown email maps to invalid credentials", func() {
		s.userReads.EXPECT().FindByEmail(gomock.Any(), userView.Email).
			Return(nil, "", infra.WrapRepoErr("missing", nil, infra.KindNotFound))

		_, err := s.commands.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("inactive account", func() {
		inactive := builder.NewUserBuilder().With(func(u *builder.UserBuilder) {
			u.Email = userView.Email
			u.IsActive = false
		}).BuildView()
		s.userReads.EXPECT().FindByEmail(gomock.Any(), userView.Email).Return(inactive, hash, nil)

		_, err := s.commands.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrUserInactive)
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	userView := builder.NewUserBuilder().BuildView()

	s.Run("rotates the pair for a valid refresh token", func() {
		token, err := s.jwtService.GenerateRefreshToken(userView.ID, userView.Email, user.RoleResident)
		s.Require().NoError(err)
		s.userReads.EXPECT().FindByID(gomock.Any(), userView.ID).Return(userView, nil)

		pair, err := s.commands.RefreshToken(context.Background(), token)
		s.Require().NoError(err)
		s.NotEmpty(pair.AccessToken)
		s.NotEmpty(pair.RefreshToken)
	})

	s.Run("an access token cannot be used to refresh", func() {
		token, err := s.jwtService.GenerateAccessToken(userView.ID, userView.Email, user.RoleResident)
		s.Require().NoError(err)

		_, err = s.commands.RefreshToken(context.Background(), token)
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("a deactivated account cannot refresh", func() {
		inactive := builder.NewUserBuilder().With(func(u *builder.UserBuilder) {
			u.IsActive = false
		}).BuildView()
		token, err := s.jwtService.GenerateRefreshToken(inactive.ID, inactive.Email, user.RoleResident)
		s.Require().NoError(err)
		s.userReads.EXPECT().FindByID(gomock.Any(), inactive.ID).Return(inactive, nil)

		_, err = s.commands.RefreshToken(context.Background(), token)
		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("garbage is rejected", func() {
		_, err := s.commands.RefreshToken(context.Background(), "not.a.token")
		s.ErrorIs(err, commands.ErrTokenValidation)
	})
}

func (s *AuthCommandsTestSuite) TestRegisterUser() {
	req := reqdto.RegisterUserRequest{
		Email:      "nuevo@example.com",
		Password:   "contrasena123",
		Name:       "Nuevo Residente",
		Unit:       "Torre 1 Apto 101",
		NationalID: "900123456",
	}

	s.Run("creates a resident account", func() {
		id := uuid.New()
		s.userRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(id, nil)

		got, err := s.commands.RegisterUser(context.Background(), req, user.RoleResident)
		s.Require().NoError(err)
		s.Equal(id, got)
	})

	s.Run("duplicate email", func() {
		s.userRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey))

		_, err := s.commands.RegisterUser(context.Background(), req, user.RoleResident)
		s.ErrorIs(err, commands.ErrDuplicateEmail)
	})

	s.Run("malformed email fails validation", func() {
		bad := req
		bad.Email = "not-an-email"

		_, err := s.commands.RegisterUser(context.Background(), bad, user.RoleResident)
		s.ErrorIs(err, commands.ErrDomainValidation)
	})
}
