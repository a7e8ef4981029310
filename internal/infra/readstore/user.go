package readstore

import (
	"context"

	"resione-server/internal/infra"
	"resione-server/internal/infra/pg"
	"resione-server/internal/pkg/pgconv"
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db pg.DBTX
}

func NewUserReadStore(db pg.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const userViewColumns = `
SELECT id, email, role, name, unit, national_id, is_active, last_login, password_hash
FROM users`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	q := userViewColumns + ` WHERE id = $1`
	view, _, err := scanUserView(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return view, nil
}

// FindByEmail also returns the stored password hash for credential checks.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	q := userViewColumns + ` WHERE email = $1`
	view, hash, err := scanUserView(r.db.QueryRow(ctx, q, email))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return view, hash, nil
}

func scanUserView(row interface{ Scan(dest ...any) error }) (*queries.AuthorizedUserView, string, error) {
	var (
		v         queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
		hash      string
	)
	err := row.Scan(&v.ID, &v.Email, &v.Role, &v.Name, &v.Unit, &v.NationalID, &v.IsActive, &lastLogin, &hash)
	if err != nil {
		return nil, "", err
	}
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, hash, nil
}
