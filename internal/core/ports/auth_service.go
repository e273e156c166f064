package ports

import (
	"context"

	"github.com/banque/registration-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role, subject string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// IssueToken signs a token for a user authenticated elsewhere (employees).
	IssueToken(user *domain.User) (string, error)
}
