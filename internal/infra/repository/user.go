package repository

import (
	"context"

	"resione-server/internal/domain/user"
	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, db pg.DBTX, u *user.User) (uuid.UUID, error) {
	const q = `
INSERT INTO users (id, email, password_hash, role, name, unit, national_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`
	var id uuid.UUID
	err := db.QueryRow(ctx, q,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.Name(),
		u.Unit(),
		u.NationalID(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, db pg.DBTX, userID uuid.UUID) error {
	const q = `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`
	if _, err := db.Exec(ctx, q, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
