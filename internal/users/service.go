package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/security"
)

// protectedUsername can never be deleted, regardless of who asks.
const protectedUsername = "admin"

type userRepository interface {
	List(ctx context.Context) ([]User, error)
	Save(ctx context.Context, accounts []User) error
}

// Service exposes account management.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, username string, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, username string) error
}

type service struct {
	repo        userRepository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the provided repository.
func NewService(repo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// CreateUserInput captures a new account. Password is mandatory; role
// defaults to staff when blank.
type CreateUserInput struct {
	Username    string
	DisplayName string
	Role        enums.Role
	Password    string
	Active      bool
}

// UpdateUserInput captures the mutable account fields. Nil means keep the
// current value; a non-nil Password resets the hash.
type UpdateUserInput struct {
	DisplayName *string
	Role        *enums.Role
	Active      *bool
	Password    *string
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(accounts))
	for _, u := range accounts {
		out = append(out, u.DTO())
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.Username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	if input.Role == "" {
		input.Role = enums.RoleStaff
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role "+string(input.Role))
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range accounts {
		if u.Username == input.Username {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	account := User{
		Username:     input.Username,
		DisplayName:  input.DisplayName,
		Role:         input.Role,
		PasswordHash: hash,
		Active:       input.Active,
	}
	accounts = append(accounts, account)

	if err := s.repo.Save(ctx, accounts); err != nil {
		return nil, err
	}
	dto := account.DTO()
	return &dto, nil
}

func (s *service) Update(ctx context.Context, username string, input UpdateUserInput) (*UserDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role "+string(*input.Role))
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	pos := -1
	for i, u := range accounts {
		if u.Username == username {
			pos = i
			break
		}
	}
	if pos == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if input.DisplayName != nil {
		accounts[pos].DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Role != nil {
		accounts[pos].Role = *input.Role
	}
	if input.Active != nil {
		accounts[pos].Active = *input.Active
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "password cannot be empty")
		}
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		accounts[pos].PasswordHash = hash
	}

	if err := s.repo.Save(ctx, accounts); err != nil {
		return nil, err
	}
	dto := accounts[pos].DTO()
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if username == protectedUsername {
		return pkgerrors.New(pkgerrors.CodeForbidden, "the admin account cannot be deleted")
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	kept := accounts[:0]
	removed := false
	for _, u := range accounts {
		if u.Username == username {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	return s.repo.Save(ctx, kept)
}
