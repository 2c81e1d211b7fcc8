package users

import (
	"context"
	"strings"
	"testing"

	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/security"
)

type stubUserRepo struct {
	accounts []User
	saved    []User
}

func (s *stubUserRepo) List(_ context.Context) ([]User, error) {
	return append([]User(nil), s.accounts...), nil
}

func (s *stubUserRepo) Save(_ context.Context, accounts []User) error {
	s.saved = append([]User(nil), accounts...)
	s.accounts = s.saved
	return nil
}

// Small argon parameters keep hashing fast in tests.
var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(repo, testPasswordCfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateHashesPasswordAndAppends(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Username: "somchai", DisplayName: "Somchai J.", Role: enums.RoleStaff,
		Password: "s3cret", Active: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Username != "somchai" || !dto.Active {
		t.Fatalf("unexpected dto: %#v", dto)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected one saved account, got %d", len(repo.saved))
	}
	hash := repo.saved[0].PasswordHash
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", hash)
	}
	ok, err := security.VerifyPassword("s3cret", hash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestCreateDefaultsRoleToStaff(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Username: "somchai", Password: "s3cret", Active: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Role != enums.RoleStaff {
		t.Fatalf("expected staff role, got %s", dto.Role)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	repo := &stubUserRepo{accounts: []User{{Username: "somchai"}}}
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: "somchai", Password: "s3cret",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRequiresPassword(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Create(context.Background(), CreateUserInput{Username: "somchai"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateChangesFieldsAndKeepsHashWithoutPassword(t *testing.T) {
	repo := &stubUserRepo{accounts: []User{{
		Username: "somchai", DisplayName: "Somchai", Role: enums.RoleStaff,
		PasswordHash: "keep-me", Active: true,
	}}}
	svc := newTestService(t, repo)

	role := enums.RoleViewer
	inactive := false
	dto, err := svc.Update(context.Background(), "somchai", UpdateUserInput{
		Role: &role, Active: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Role != enums.RoleViewer || dto.Active {
		t.Fatalf("unexpected dto: %#v", dto)
	}
	if repo.saved[0].PasswordHash != "keep-me" {
		t.Fatalf("expected hash untouched, got %q", repo.saved[0].PasswordHash)
	}
}

func TestUpdateResetsPassword(t *testing.T) {
	repo := &stubUserRepo{accounts: []User{{
		Username: "somchai", PasswordHash: "old", Active: true, Role: enums.RoleStaff,
	}}}
	svc := newTestService(t, repo)

	password := "newpass"
	if _, err := svc.Update(context.Background(), "somchai", UpdateUserInput{Password: &password}); err != nil {
		t.Fatalf("update: %v", err)
	}
	ok, err := security.VerifyPassword("newpass", repo.saved[0].PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Update(context.Background(), "ghost", UpdateUserInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteAdminAlwaysRefused(t *testing.T) {
	repo := &stubUserRepo{accounts: []User{
		{Username: "admin", Role: enums.RoleAdmin, Active: true},
	}}
	svc := newTestService(t, repo)

	err := svc.Delete(context.Background(), "admin")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("expected no write after refused delete")
	}
}

func TestDeleteRemovesUser(t *testing.T) {
	repo := &stubUserRepo{accounts: []User{
		{Username: "admin", Role: enums.RoleAdmin},
		{Username: "somchai", Role: enums.RoleStaff},
	}}
	svc := newTestService(t, repo)

	if err := svc.Delete(context.Background(), "somchai"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].Username != "admin" {
		t.Fatalf("unexpected remaining accounts: %#v", repo.saved)
	}
}

func TestListStripsPasswordHashes(t *testing.T) {
	repo := &stubUserRepo{accounts: []User{
		{Username: "admin", PasswordHash: "secret", Role: enums.RoleAdmin, Active: true},
	}}
	svc := newTestService(t, repo)

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dtos) != 1 || dtos[0].Username != "admin" {
		t.Fatalf("unexpected listing: %#v", dtos)
	}
}
