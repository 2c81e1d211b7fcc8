package sheetdb

import (
	"context"
	"testing"
)

const testAdminHash = "$argon2id$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA"

func TestBootstrapCreatesMissingTabsWithHeaders(t *testing.T) {
	sheet := newFakeSheet()

	if err := Bootstrap(context.Background(), sheet, nil, testAdminHash); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	for _, spec := range AllTabs {
		values, ok := sheet.tabs[spec.Name]
		if !ok {
			t.Fatalf("expected tab %s to be created", spec.Name)
		}
		if len(values) == 0 {
			t.Fatalf("expected header row in %s", spec.Name)
		}
		if got := values[0][0]; got != spec.Headers[0] {
			t.Fatalf("tab %s: expected header %q, got %v", spec.Name, spec.Headers[0], got)
		}
	}
}

func TestBootstrapSeedsAdminWhenUsersEmpty(t *testing.T) {
	sheet := newFakeSheet()

	if err := Bootstrap(context.Background(), sheet, nil, testAdminHash); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	users := sheet.tabs[TabUsers.Name]
	if len(users) != 2 {
		t.Fatalf("expected header + seeded admin, got %d rows", len(users))
	}
	if users[1][0] != "admin" || users[1][2] != "admin" {
		t.Fatalf("unexpected seeded admin row: %#v", users[1])
	}
	if users[1][3] != testAdminHash {
		t.Fatalf("expected hashed password in seed row")
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	sheet := newFakeSheet()
	ctx := context.Background()

	if err := Bootstrap(ctx, sheet, nil, testAdminHash); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	usersBefore := len(sheet.tabs[TabUsers.Name])
	writesBefore := sheet.appends

	if err := Bootstrap(ctx, sheet, nil, testAdminHash); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if len(sheet.tabs[TabUsers.Name]) != usersBefore {
		t.Fatalf("second bootstrap must not add rows")
	}
	if sheet.appends != writesBefore {
		t.Fatalf("second bootstrap must not append anything")
	}
}

func TestBootstrapDoesNotReseedExistingUsers(t *testing.T) {
	sheet := newFakeSheet()
	sheet.tabs[TabUsers.Name] = [][]any{
		{"Username", "DisplayName", "Role", "PasswordHash", "Active"},
		{"somchai", "Somchai J.", "staff", "hash", "Y"},
	}

	if err := Bootstrap(context.Background(), sheet, nil, testAdminHash); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(sheet.tabs[TabUsers.Name]) != 2 {
		t.Fatalf("expected users tab untouched, got %d rows", len(sheet.tabs[TabUsers.Name]))
	}
}
