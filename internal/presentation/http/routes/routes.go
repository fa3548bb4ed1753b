package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/milk-ledger/internal/config"
	"github.com/sangkips/milk-ledger/internal/domain/enum"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/milk-ledger/internal/presentation/http/handler"
	"github.com/sangkips/milk-ledger/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer *handler.CustomerHandler
	Ledger   *handler.LedgerHandler
	Bill     *handler.BillHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
	// Registry receives the HTTP metrics and backs /metrics. A fresh
	// registry with the Go and process collectors is used when nil.
	Registry *prometheus.Registry
	// RateLimiter guards /api/v1 when set. The caller owns it and stops it
	// on shutdown.
	RateLimiter *middleware.ClientRateLimiter
}

// NewRateLimiter builds the per-client limiter for the configured budget.
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.ClientRateLimiter {
	return middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.PerSecond(),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if err := request.RegisterValidators(); err != nil {
		panic(err)
	}

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics := middleware.NewMetrics(reg)
	if rl := deps.RateLimiter; rl != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "http_rate_limiter_active_clients",
			Help: "Clients currently tracked by the rate limiter.",
		}, func() float64 { return float64(rl.ActiveClients()) }))
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		if deps.RateLimiter != nil {
			v1.Use(deps.RateLimiter.Middleware())
		}

		seller := v1.Group("/seller")
		seller.Use(middleware.RoleMiddleware(enum.RoleSeller))
		registerSellerRoutes(seller, h)

		customer := v1.Group("/customer")
		customer.Use(middleware.RoleMiddleware(enum.RoleCustomer))
		registerCustomerRoutes(customer, h)
	}

	return router
}

func registerSellerRoutes(seller *gin.RouterGroup, h *Handlers) {
	// Customers
	customers := seller.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PATCH("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
	registerLedgerRoutes(customers.Group("/:id"), h)

	// Reports
	seller.GET("/reports/:month/workbook", h.Report.Workbook)

	// Whole-ledger backup
	ledger := seller.Group("/ledger")
	{
		ledger.GET("/export", h.Ledger.Export)
		ledger.PUT("/import", h.Ledger.Import)
	}

	// Printer
	printerGroup := seller.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}

func registerCustomerRoutes(customer *gin.RouterGroup, h *Handlers) {
	customer.GET("/lookup", h.Customer.Lookup)
	customer.GET("/customers/:id", h.Customer.Get)
	registerLedgerRoutes(customer.Group("/customers/:id"), h)
}

// registerLedgerRoutes mounts the per-customer month and entry routes on a
// group whose path ends in /:id.
func registerLedgerRoutes(g *gin.RouterGroup, h *Handlers) {
	months := g.Group("/months/:month")
	{
		months.GET("", h.Ledger.Summary)
		months.GET("/entries", h.Ledger.Entries)
		months.GET("/totals", h.Ledger.Totals)
		months.GET("/payment", h.Ledger.GetPayment)
		months.PATCH("/payment", h.Ledger.UpdatePayment)
		months.POST("/payment/cash", h.Ledger.MarkPaidCash)
		months.POST("/payment/online", h.Ledger.MarkPaidOnline)
		months.POST("/payment/unpaid", h.Ledger.MarkUnpaid)
		months.GET("/bill", h.Bill.Bill)
		months.GET("/bill/pdf", h.Bill.PDF)
		months.POST("/bill/print", h.Printer.PrintBill)
	}

	entries := g.Group("/entries/:date")
	{
		entries.PUT("", h.Ledger.UpsertEntry)
		entries.POST("/none", h.Ledger.MarkNoDelivery)
		entries.DELETE("/items/:item_id", h.Ledger.RemoveItem)
	}
}
