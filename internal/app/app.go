// Package app wires configuration, the local store, services and the HTTP
// router into one runnable unit shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/config"
	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/database"
	"github.com/barberoil/fuelpos/internal/infrastructure/repository"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
	"github.com/barberoil/fuelpos/internal/presentation/http/handler"
	"github.com/barberoil/fuelpos/internal/presentation/http/middleware"
	"github.com/barberoil/fuelpos/internal/presentation/http/routes"
	"github.com/barberoil/fuelpos/pkg/printer"
	"github.com/barberoil/fuelpos/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services groups the application services
type Services struct {
	Auth      *service.AuthService
	Customer  *service.CustomerService
	Product   *service.ProductService
	User      *service.UserService
	Settings  *service.SettingsService
	Invoice   *service.InvoiceService
	Dashboard *service.DashboardService
	Export    *service.ExportService
	Printer   *service.PrinterService
}

// App is a fully wired instance of the POS backend
type App struct {
	Config   *config.Config
	Store    *store.Store
	Services *Services
	JWT      *utils.JWTManager
	printer  printer.Printer
	limiter  *middleware.ClientRateLimiter
}

// Open connects to the configured database and builds the app on it
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, db)
}

// New builds the app on an open database. The store schema is applied and
// empty reference collections are seeded. A failed seed closes the store and
// is returned.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*App, error) {
	st, err := store.Open(ctx, db, schema.Default())
	if err != nil {
		return nil, err
	}

	business := BusinessProfile(&cfg.Business)
	if err := database.SeedDefaultData(ctx, st, business); err != nil {
		st.Close()
		return nil, err
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(st)
	productRepo := repository.NewProductRepository(st)
	invoiceRepo := repository.NewInvoiceRepository(st)
	userRepo := repository.NewUserRepository(st)
	settingsRepo := repository.NewSettingsRepository(st)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:     cfg.Printer.Type,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		FilePath: cfg.Printer.FilePath,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, productRepo)
	settingsService := service.NewSettingsService(settingsRepo, business)
	services := &Services{
		Auth:      service.NewAuthService(userRepo, jwtManager),
		Customer:  service.NewCustomerService(customerRepo),
		Product:   service.NewProductService(productRepo),
		User:      service.NewUserService(userRepo),
		Settings:  settingsService,
		Invoice:   invoiceService,
		Dashboard: service.NewDashboardService(invoiceRepo, customerRepo, userRepo),
		Export:    service.NewExportService(invoiceService),
		Printer:   service.NewPrinterService(thermalPrinter, invoiceService, settingsService, cfg.Printer.Type, cfg.Printer.Width),
	}

	var limiter *middleware.ClientRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.Burst,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
	}

	return &App{
		Config:   cfg,
		Store:    st,
		Services: services,
		JWT:      jwtManager,
		printer:  thermalPrinter,
		limiter:  limiter,
	}, nil
}

// BusinessProfile is the ticket header configured for a fresh install
func BusinessProfile(cfg *config.BusinessConfig) entity.BusinessProfile {
	return entity.BusinessProfile{
		Name:     cfg.Name,
		Location: cfg.Location,
		Phone:    cfg.Phone,
	}
}

// Router builds the HTTP router over the app's services
func (a *App) Router() *gin.Engine {
	s := a.Services
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(s.Auth, s.User),
		Customer:  handler.NewCustomerHandler(s.Customer),
		Product:   handler.NewProductHandler(s.Product),
		User:      handler.NewUserHandler(s.User),
		Settings:  handler.NewSettingsHandler(s.Settings),
		Invoice:   handler.NewInvoiceHandler(s.Invoice, s.User),
		Dashboard: handler.NewDashboardHandler(s.Dashboard),
		Export:    handler.NewExportHandler(s.Export),
		Printer:   handler.NewPrinterHandler(s.Printer),
	}

	return routes.Setup(handlers, &routes.Deps{
		JWTManager:  a.JWT,
		RateLimiter: a.limiter,
		Cfg:         a.Config,
	})
}

// Close stops the rate limiter and releases the printer and the store
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if err := a.printer.Close(); err != nil {
		log.Printf("Warning: Failed to close printer: %v", err)
	}
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
