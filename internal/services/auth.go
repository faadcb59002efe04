// Package services contains application services for the storekeeper shell.
// This file defines the authentication service that checks operator
// credentials against the users container.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/cryptox"
	"github.com/dmitrijs2005/storekeeper/internal/logging"
	"github.com/dmitrijs2005/storekeeper/internal/repositories"
)

// AuthService verifies operator credentials.
type AuthService interface {
	// Verify returns nil if username/password match a stored credential and
	// common.ErrorUnauthorized otherwise. Other errors come from the store.
	Verify(ctx context.Context, username string, password []byte) error
}

type authService struct {
	users repositories.UserRepository
	log   logging.Logger
}

// NewAuthService constructs an AuthService over the users repository.
func NewAuthService(users repositories.UserRepository, log logging.Logger) AuthService {
	return &authService{users: users, log: log}
}

func (a *authService) Verify(ctx context.Context, username string, password []byte) error {
	users, err := a.users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		a.log.Warn(ctx, "users container is empty, nobody can log in")
		return common.ErrorUnauthorized
	}

	for _, u := range users {
		if u.Username != username {
			continue
		}
		ok, err := cryptox.VerifyPassword(u.Password, password)
		if err != nil {
			a.log.Error(ctx, "stored password hash is unusable", "username", username, "error", err)
			continue
		}
		if ok {
			return nil
		}
	}
	return common.ErrorUnauthorized
}
