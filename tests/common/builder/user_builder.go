//go:build unit || e2e

package builder

import (
	"resione-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID         uuid.UUID
	Email      string
	Role       string
	Name       string
	Unit       string
	NationalID string
	IsActive   bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:         uuid.New(),
		Email:      "maria@example.com",
		Role:       "residente",
		Name:       "María Gómez",
		Unit:       "Torre 2 Apto 503",
		NationalID: "1032456789",
		IsActive:   true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		Name:       u.Name,
		Unit:       u.Unit,
		NationalID: u.NationalID,
		IsActive:   u.IsActive,
	}
}
