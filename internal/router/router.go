package router

import (
	"context"
	"time"

	"sidrabill/internal/config"
	"sidrabill/internal/handler"
	"sidrabill/internal/infra"
	"sidrabill/internal/middleware"
	"sidrabill/internal/repository"
	"sidrabill/internal/service"
	"sidrabill/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Redis
func New(ctx context.Context, cfg *config.Config, rdb *redis.Client, dispatcher *worker.Dispatcher) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	outlet := service.Outlet{Name: cfg.OutletName, Tagline: cfg.OutletTagline}
	pdfOpts := infra.ReceiptPDFOptions{
		OutletName:    cfg.OutletName,
		OutletTagline: cfg.OutletTagline,
		OutletAddress: cfg.OutletAddress,
		OutletPhone:   cfg.OutletPhone,
		OutletEmail:   cfg.OutletEmail,
		StoragePath:   cfg.PDFStoragePath,
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	menuRepo := repository.NewMenuRepository(rdb)
	historyRepo := repository.NewHistoryRepository(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	// Menu and history load their snapshots once at startup and write them
	// back in full on every mutation.
	menuSvc, err := service.NewMenuService(ctx, menuRepo)
	if err != nil {
		return nil, err
	}
	historySvc, err := service.NewHistoryService(ctx, historyRepo, dispatcher)
	if err != nil {
		return nil, err
	}
	draftSvc := service.NewDraftService(menuSvc, historySvc)
	// Number the first draft from the persisted history length.
	if _, err := draftSvc.Reset(ctx); err != nil {
		return nil, err
	}
	reportSvc := service.NewReportService(historySvc)
	authSvc := service.NewAuthService(cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	draftH := handler.NewDraftHandler(draftSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	receiptH := handler.NewReceiptHandler(draftSvc, historySvc, outlet, pdfOpts)
	reportH := handler.NewReportHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Counter surface — no auth; the billing terminal is the trusted operator
	draft := r.Group("/v1/draft")
	{
		draft.GET("", draftH.Get)
		draft.PUT("", draftH.SetHeader)
		draft.POST("/lines", draftH.AddLine)
		draft.PATCH("/lines/:id", draftH.UpdateLine)
		draft.DELETE("/lines/:id", draftH.RemoveLine)
		draft.POST("/reset", draftH.Reset)
	}

	r.GET("/v1/menu", menuH.List)

	receipts := r.Group("/v1/receipts")
	{
		receipts.POST("", receiptH.Finalize)
		receipts.GET("", receiptH.List)
		receipts.GET("/preview", receiptH.Preview)
		receipts.GET("/:id", receiptH.Get)
		receipts.GET("/:id/view", receiptH.View)
		receipts.GET("/:id/pdf", receiptH.DownloadPDF)
		receipts.GET("/:id/whatsapp", receiptH.WhatsApp)
	}

	// Protected routes — menu writes, history mutation and reports sit behind
	// the admin gate
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		menu := v1.Group("/menu")
		{
			menu.POST("", menuH.Create)
			menu.PUT("/:id", menuH.Update)
			menu.DELETE("/:id", menuH.Delete)
		}

		v1.PUT("/receipts/:id", receiptH.Edit)
		v1.DELETE("/receipts/:id", receiptH.Delete)
		v1.DELETE("/receipts", receiptH.Clear)

		reports := v1.Group("/reports")
		{
			reports.GET("/stats", reportH.Stats)
			reports.GET("/search", reportH.Search)
			reports.GET("/export", reportH.ExportCSV)
		}
	}

	return r, nil
}
