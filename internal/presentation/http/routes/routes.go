package routes

import (
	"net/http"

	"github.com/barberoil/fuelpos/internal/config"
	"github.com/barberoil/fuelpos/internal/presentation/http/handler"
	"github.com/barberoil/fuelpos/internal/presentation/http/middleware"
	"github.com/barberoil/fuelpos/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	User      *handler.UserHandler
	Settings  *handler.SettingsHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes. RateLimiter is
// optional; its owner stops it.
type Deps struct {
	JWTManager  *utils.JWTManager
	RateLimiter *middleware.ClientRateLimiter
	Cfg         *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.GET("/users", h.Auth.LoginUsers)
		auth.POST("/login", h.Auth.Login)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/auth/me", h.Auth.Me)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Business profile is readable by drivers, it heads every ticket
	protected.GET("/settings/business", h.Settings.GetBusiness)

	registerCustomerRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerDraftRoutes(protected, h)
	registerInvoiceRoutes(protected, h)
	registerPrinterRoutes(protected, h)

	// Admin only
	admin := protected.Group("")
	admin.Use(middleware.RequireRole("admin"))
	{
		registerUserRoutes(admin, h)
		registerSettingsRoutes(admin, h)
		registerExportRoutes(admin, h)
		admin.POST("/customers/import", h.Customer.Import)
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.PATCH("/products/:id/price", h.Product.UpdatePrice)
		admin.DELETE("/products/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:account", h.Customer.Get)
		customers.PUT("/:account", h.Customer.Update)
		customers.DELETE("/:account", middleware.RequireRole("admin"), h.Customer.Delete)
		customers.GET("/:account/invoices", h.Invoice.ListByCustomer)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
	}
}

func registerDraftRoutes(rg *gin.RouterGroup, h *Handlers) {
	drafts := rg.Group("/drafts")
	{
		drafts.GET("", h.Invoice.ListDrafts)
		drafts.POST("", h.Invoice.CreateDraft)
		drafts.GET("/:number", h.Invoice.GetDraft)
		drafts.DELETE("/:number", h.Invoice.DiscardDraft)
		drafts.PUT("/:number/customer", h.Invoice.SetCustomer)
		drafts.POST("/:number/lines", h.Invoice.AddLine)
		drafts.DELETE("/:number/lines/:lineId", h.Invoice.RemoveLine)
		drafts.PATCH("/:number/details", h.Invoice.UpdateDetails)
		drafts.POST("/:number/complete", h.Invoice.CompleteDraft)
	}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, h *Handlers) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:number", h.Invoice.Get)
		invoices.GET("/:number/ticket", h.Printer.PreviewInvoice)
		invoices.POST("/:number/print", h.Printer.PrintInvoice)
	}
	rg.GET("/drivers/:id/invoices", h.Invoice.ListByDriver)
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	{
		users.GET("", h.User.List)
		users.GET("/drivers", h.User.ListDrivers)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerSettingsRoutes(rg *gin.RouterGroup, h *Handlers) {
	settings := rg.Group("/settings")
	{
		settings.PUT("/business", h.Settings.UpdateBusiness)
		settings.GET("", h.Settings.List)
		settings.GET("/:key", h.Settings.Get)
		settings.PUT("/:key", h.Settings.Put)
	}
}

func registerExportRoutes(rg *gin.RouterGroup, h *Handlers) {
	export := rg.Group("/export")
	{
		export.GET("/invoices.csv", h.Export.CSV)
		export.GET("/invoices.xlsx", h.Export.XLSX)
	}
}
