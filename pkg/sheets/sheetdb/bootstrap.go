package sheetdb

import (
	"context"

	"github.com/itaoit/itstock-backend/pkg/enums"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

// TabAdmin is the spreadsheet surface the bootstrapper needs beyond SheetAPI.
type TabAdmin interface {
	SheetAPI
	ListTabs(ctx context.Context) ([]string, error)
	AddTab(ctx context.Context, title string, rows, cols int64) error
}

const defaultAdminUsername = "admin"

// Bootstrap makes sure every required tab exists with its header row and
// seeds the default administrator when the Users tab holds no data rows.
// It is idempotent and deliberately forgiving: a tab that fails to provision
// is logged and skipped so one bad call does not block startup. Existing
// tabs are never validated or repaired.
func Bootstrap(ctx context.Context, api TabAdmin, logg *logger.Logger, adminPasswordHash string) error {
	existing := map[string]bool{}
	titles, err := api.ListTabs(ctx)
	if err != nil {
		return err
	}
	for _, title := range titles {
		existing[title] = true
	}

	for _, spec := range AllTabs {
		if existing[spec.Name] {
			continue
		}
		if err := ensureTab(ctx, api, spec); err != nil && logg != nil {
			logg.Warn(logg.WithTab(ctx, spec.Name), "provisioning tab failed, skipping")
		}
	}

	seedAdmin(ctx, api, logg, adminPasswordHash)
	return nil
}

func ensureTab(ctx context.Context, api TabAdmin, spec TabSpec) error {
	if err := api.AddTab(ctx, spec.Name, spec.Rows, spec.Cols); err != nil {
		return err
	}
	header := make([]any, len(spec.Headers))
	for i, col := range spec.Headers {
		header[i] = col
	}
	return api.AppendRow(ctx, spec.Name, header)
}

func seedAdmin(ctx context.Context, api TabAdmin, logg *logger.Logger, adminPasswordHash string) {
	values, err := api.GetValues(ctx, TabUsers.Name)
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithTab(ctx, TabUsers.Name), "reading users for admin seed failed, skipping")
		}
		return
	}
	if len(values) > 1 {
		return
	}

	row := []any{defaultAdminUsername, "Administrator", string(enums.RoleAdmin), adminPasswordHash, "Y"}
	if err := api.AppendRow(ctx, TabUsers.Name, row); err != nil {
		if logg != nil {
			logg.Warn(logg.WithTab(ctx, TabUsers.Name), "seeding default admin failed")
		}
		return
	}
	if logg != nil {
		logg.Info(ctx, "seeded default administrator account")
	}
}
