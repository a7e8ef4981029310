package commands

import (
	"context"
	"log/slog"

	"resione-server/internal/domain/user"
	reqdto "resione-server/internal/handler/dto/request"
	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/pkg/errs"
	"resione-server/internal/pkg/jwt"
	"resione-server/internal/pkg/password"
	"resione-server/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrDuplicateEmail       = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	RegisterUser(ctx context.Context, req reqdto.RegisterUserRequest, role user.Role) (uuid.UUID, error)
}

type UserWriter interface {
	Create(ctx context.Context, db pg.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, db pg.DBTX, userID uuid.UUID) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	userRepo   UserWriter
	userReads  UserReads
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, userRepo UserWriter, userReads UserReads, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		userRepo:   userRepo,
		userReads:  userReads,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, passwordHash, err := a.userReads.FindByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(passwordHash, req.Password); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	pair, err := a.issueTokens(view.ID, view.Email, role)
	if err != nil {
		return nil, err
	}

	// Last-login bookkeeping never fails a successful login.
	if err := a.uow.WithDB(ctx, func(ctx context.Context, db pg.DBTX) error {
		return a.userRepo.UpdateLastLogin(ctx, db, view.ID)
	}); err != nil {
		slog.Warn("failed to update last login", "user_id", view.ID, "error", err)
	}

	return &LoginResult{
		UserID:    view.ID,
		Email:     view.Email,
		Role:      role.String(),
		TokenPair: pair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	view, err := a.userReads.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrUserNotFound)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	return a.issueTokens(view.ID, view.Email, role)
}

// RegisterUser creates an account with the given role. Registration of
// administrators is restricted at the routing layer.
func (a *authCommandsImpl) RegisterUser(ctx context.Context, req reqdto.RegisterUserRequest, role user.Role) (uuid.UUID, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	pw, err := user.NewPassword(req.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u := user.NewUser(email, hash, role, req.Name, req.Unit, req.NationalID)

	var id uuid.UUID
	err = a.uow.WithDB(ctx, func(ctx context.Context, db pg.DBTX) error {
		createdID, createErr := a.userRepo.Create(ctx, db, u)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return errs.Mark(createErr, ErrDuplicateEmail)
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		id = createdID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, email string, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
