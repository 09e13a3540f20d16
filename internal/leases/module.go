// Package leases provides the lease bounded context module.
package leases

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"landlord_portal_backend/internal/adapters/storage"
	"landlord_portal_backend/internal/email"
	apphttp "landlord_portal_backend/internal/http"
	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/internal/leases/export"
	"landlord_portal_backend/internal/leases/handler"
	"landlord_portal_backend/internal/leases/legal"
	"landlord_portal_backend/internal/leases/repository"
	"landlord_portal_backend/internal/leases/service"
	"landlord_portal_backend/internal/pdf"
	"landlord_portal_backend/platform/config"
	"landlord_portal_backend/platform/logger"
	"landlord_portal_backend/platform/validator"
)

const templateFetchTimeout = 30 * time.Second

// Module is the leases bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leases module. storageSvc may be
// nil when object storage is not configured.
func NewModule(ctx context.Context, pool *pgxpool.Pool, storageSvc storage.StorageService, sender email.Sender, val *validator.Validator, cfg *config.Config, log *logger.Logger) (*Module, error) {
	if err := domain.RegisterValidations(val); err != nil {
		return nil, err
	}

	exporter := export.NewExporter(templateSource(storageSvc, cfg), log)
	if gotenberg := pdf.NewGotenbergClient(cfg); gotenberg != nil {
		exporter.SetPDFRenderer(gotenberg)
	}

	deps := service.Deps{
		Repo:         repository.New(pool),
		Validator:    val,
		Exporter:     exporter,
		Storage:      storageSvc,
		ExportBucket: cfg.GetMinioBucketLeaseExports(),
		Sender:       sender,
		Log:          log,
	}

	analyzer, err := legal.NewAnalyzer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if analyzer != nil {
		deps.Analyzer = analyzer
	}

	svc := service.New(deps)
	return &Module{handler: handler.New(svc, val), service: svc}, nil
}

// templateSource prefers a fixed URL and falls back to the template bucket.
func templateSource(storageSvc storage.StorageService, cfg *config.Config) export.TemplateSource {
	if url := cfg.GetLeaseTemplateURL(); url != "" {
		return export.NewHTTPTemplateSource(url, templateFetchTimeout)
	}
	if storageSvc != nil && cfg.GetLeaseTemplateKey() != "" {
		return export.NewObjectTemplateSource(storageSvc, cfg.GetMinioBucketLeaseTemplates(), cfg.GetLeaseTemplateKey())
	}
	return nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leases"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lease routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leases")
	group.GET("/clauses", m.handler.ListClauses)
	group.GET("/defaults", m.handler.GetDefaults)
	group.GET("/profile", m.handler.GetProfile)
	group.PUT("/profile", m.handler.UpdateProfile)
	group.POST("/preview", m.handler.Preview)

	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.Get)
	group.GET("/:id/html", m.handler.GetHTML)
	group.POST("/:id/legal-analysis", m.handler.Analyze)
	group.GET("/:id/export", m.handler.Export)
	group.GET("/:id/exports", m.handler.ListExports)
	group.GET("/:id/exports/:exportId/download", m.handler.ExportDownloadURL)
	group.POST("/:id/send", m.handler.Send)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
