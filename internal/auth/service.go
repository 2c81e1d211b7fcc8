package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itaoit/itstock-backend/internal/users"
	"github.com/itaoit/itstock-backend/pkg/auth"
	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/security"
)

type userRepository interface {
	List(ctx context.Context) ([]users.User, error)
}

// Service exposes authentication.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type service struct {
	users  userRepository
	jwtCfg config.JWTConfig
	now    func() time.Time
}

// NewService builds an auth service. A nil clock falls back to time.Now.
func NewService(usersRepo userRepository, jwtCfg config.JWTConfig, now func() time.Time) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{users: usersRepo, jwtCfg: jwtCfg, now: now}, nil
}

// LoginResult carries the minted token plus the identity baked into it.
type LoginResult struct {
	Token       string     `json:"token"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        enums.Role `json:"role"`
}

// Login matches the exact username against active accounts, verifies the
// password and mints an access token. The two failure messages stay
// distinguishable on purpose; this is an internal tool and the operators
// want to know which half went wrong.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	accounts, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var account *users.User
	for i := range accounts {
		if accounts[i].Username == username && accounts[i].Active {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found or disabled")
	}

	ok, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect password")
	}

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Role:        account.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResult{
		Token:       token,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Role:        account.Role,
	}, nil
}
