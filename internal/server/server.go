package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/kahraba/internal/auth"
	"github.com/smallbiznis/kahraba/internal/auth/session"
	"github.com/smallbiznis/kahraba/internal/config"
	"github.com/smallbiznis/kahraba/internal/customer"
	customerdomain "github.com/smallbiznis/kahraba/internal/customer/domain"
	"github.com/smallbiznis/kahraba/internal/expense"
	expensedomain "github.com/smallbiznis/kahraba/internal/expense/domain"
	"github.com/smallbiznis/kahraba/internal/invoice"
	invoicedomain "github.com/smallbiznis/kahraba/internal/invoice/domain"
	"github.com/smallbiznis/kahraba/internal/observability"
	"github.com/smallbiznis/kahraba/internal/observability/metrics"
	"github.com/smallbiznis/kahraba/internal/providers/pdf"
	"github.com/smallbiznis/kahraba/internal/report"
	reportdomain "github.com/smallbiznis/kahraba/internal/report/domain"
	"github.com/smallbiznis/kahraba/internal/settings"
	settingsdomain "github.com/smallbiznis/kahraba/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	observability.Module,
	auth.Module,
	settings.Module,
	customer.Module,
	invoice.Module,
	expense.Module,
	report.Module,
	pdf.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}).ServeHTTP(c.Writer, c.Request)
	})

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	metrics  *metrics.Metrics
	authSvc  *auth.Service
	sessions *session.Manager

	settingsSvc settingsdomain.Service
	customerSvc customerdomain.Service
	invoiceSvc  invoicedomain.Service
	expenseSvc  expensedomain.Service
	reportSvc   reportdomain.Service
	pdfProvider pdf.Provider
}

type ServerParams struct {
	fx.In

	Engine   *gin.Engine
	Cfg      config.Config
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	AuthSvc  *auth.Service
	Sessions *session.Manager

	SettingsSvc settingsdomain.Service
	CustomerSvc customerdomain.Service
	InvoiceSvc  invoicedomain.Service
	ExpenseSvc  expensedomain.Service
	ReportSvc   reportdomain.Service
	PDFProvider pdf.Provider
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		metrics:     p.Metrics,
		authSvc:     p.AuthSvc,
		sessions:    p.Sessions,
		settingsSvc: p.SettingsSvc,
		customerSvc: p.CustomerSvc,
		invoiceSvc:  p.InvoiceSvc,
		expenseSvc:  p.ExpenseSvc,
		reportSvc:   p.ReportSvc,
		pdfProvider: p.PDFProvider,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.POST("/login", s.Login)
	s.engine.POST("/logout", s.Logout)

	api := s.engine.Group("/api", s.RequireSession())

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.GET("/invoices/:id/pdf", s.PrintInvoice)

	api.POST("/expenses", s.AppendExpense)
	api.GET("/expenses", s.ListExpenses)

	api.GET("/reports/:period", s.GetReport)
	api.GET("/reports/:period/export", s.ExportReport)
	api.GET("/periods", s.ListPeriods)
	api.GET("/years", s.ListYears)

	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.SaveSettings)
}
