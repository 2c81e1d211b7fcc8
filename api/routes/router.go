package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itaoit/itstock-backend/api/controllers"
	"github.com/itaoit/itstock-backend/api/middleware"
	"github.com/itaoit/itstock-backend/internal/auth"
	"github.com/itaoit/itstock-backend/internal/importer"
	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/internal/reports"
	"github.com/itaoit/itstock-backend/internal/stock"
	"github.com/itaoit/itstock-backend/internal/tickets"
	"github.com/itaoit/itstock-backend/internal/users"
	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/enums"
	"github.com/itaoit/itstock-backend/pkg/logger"
	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Cfg      *config.Config
	Logg     *logger.Logger
	Sheet    sheetdb.TabAdmin
	SheetP   controllers.Pinger
	CacheP   controllers.Pinger
	Registry *prometheus.Registry
	Loc      *time.Location

	Auth      auth.Service
	Inventory inventory.Service
	Stock     stock.Service
	Tickets   tickets.Service
	Users     users.Service
	Reports   reports.Service
	Importer  importer.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.SheetP, deps.CacheP))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/dashboard", controllers.Dashboard(deps.Reports, logg))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ItemsList(deps.Inventory, logg))
			r.Get("/low-stock", controllers.ItemsLowStock(deps.Inventory, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter(logg))
				r.Put("/", controllers.ItemsUpsert(deps.Inventory, logg))
				r.Delete("/{code}", controllers.ItemsDelete(deps.Inventory, logg))
				r.Post("/generate-code", controllers.ItemsGenerateCode(deps.Inventory, logg))
			})
		})

		r.Route("/stock", func(r chi.Router) {
			r.Use(middleware.RequireWriter(logg))
			r.Post("/issue", controllers.StockIssue(deps.Stock, logg))
			r.Post("/receive", controllers.StockReceive(deps.Stock, deps.Loc, logg))
		})

		r.Get("/transactions", controllers.TransactionsList(deps.Reports, logg))

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", controllers.TicketsList(deps.Tickets, deps.Loc, logg))
			r.With(middleware.RequireWriter(logg)).Post("/", controllers.TicketsCreate(deps.Tickets, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportsSummary(deps.Reports, logg))
			r.Get("/by-category", controllers.ReportsByCategory(deps.Reports, logg))
			r.Get("/by-branch", controllers.ReportsByBranch(deps.Reports, logg))
			r.Get("/by-location", controllers.ReportsByLocation(deps.Reports, logg))
			r.Get("/by-period", controllers.ReportsByPeriod(deps.Reports, logg))
			r.Get("/export", controllers.ReportsExport(deps.Reports, logg))
		})

		r.Route("/imports", func(r chi.Router) {
			r.Use(middleware.RequireWriter(logg))
			r.Post("/{kind}", controllers.ImportUpload(deps.Importer, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
			r.Get("/", controllers.UsersList(deps.Users, logg))
			r.Post("/", controllers.UsersCreate(deps.Users, logg))
			r.Put("/{username}", controllers.UsersUpdate(deps.Users, logg))
			r.Delete("/{username}", controllers.UsersDelete(deps.Users, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
			r.Post("/bootstrap", controllers.AdminBootstrap(deps.Sheet, cfg, logg))
		})
	})

	return r
}
