package repository

import (
	"context"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/user/domain"
)

// Repository defines persistence for users. Email uniqueness is enforced by the store.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
