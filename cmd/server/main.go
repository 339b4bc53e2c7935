// Entry point for the brokerage portal API server.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mzigo/insurance-brokerage-portal/internal/config"
	"github.com/mzigo/insurance-brokerage-portal/internal/database"
	"github.com/mzigo/insurance-brokerage-portal/internal/handler"
	"github.com/mzigo/insurance-brokerage-portal/internal/queue"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
	"github.com/mzigo/insurance-brokerage-portal/internal/router"
	queuepub "github.com/mzigo/insurance-brokerage-portal/internal/service"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	logger, err := utils.NewLogger()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; caching, rate limiting and cross-process change events disabled")
	}

	// Repositories.
	claims := repository.NewClaimRepo(db)
	quotes := repository.NewQuoteRepo(db)
	consultations := repository.NewConsultationRepo(db)
	outsourcing := repository.NewOutsourcingRepo(db)
	diaspora := repository.NewDiasporaRepo(db)
	payments := repository.NewPaymentRepo(db)
	documents := repository.NewDocumentRepo(db)
	resources := repository.NewResourceRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	stats := repository.NewDashboardRepo(db)

	// Resilience layer shared by all handlers.
	exec := resilience.NewExecutor(resilience.DefaultPolicy(), logger)
	supplier := resilience.NewSupplier()
	buffers := resilience.NewBuffers(resilience.DefaultBufferCapacity)
	notifier := resilience.NewNotifier(rdb, logger)
	notifier.Connect(context.Background())
	defer notifier.Disconnect()

	notifier.Subscribe(resilience.ChannelDataChanged, func(ev resilience.Event) {
		logger.Debug("data changed",
			zap.String("entity", ev.Entity),
			zap.String("action", ev.Action),
			zap.String("id", ev.ID))
	})

	// Background consumer that records accepted submissions.
	go func() {
		if err := queue.StartSubmissionConsumer(); err != nil {
			logger.Warn("submission consumer stopped", zap.Error(err))
		}
	}()

	submitH := &handler.SubmitHandler{
		Claims:        claims,
		Quotes:        quotes,
		Consultations: consultations,
		Outsourcing:   outsourcing,
		Diaspora:      diaspora,
		Payments:      payments,
		Documents:     documents,
		Exec:          exec,
		Buffers:       buffers,
		Notifier:      notifier,
		Events:        queuepub.Publisher{},
		Log:           logger,
	}
	adminH := &handler.AdminHandler{
		Claims:        claims,
		Quotes:        quotes,
		Consultations: consultations,
		Outsourcing:   outsourcing,
		Diaspora:      diaspora,
		Payments:      payments,
		Users:         users,
		Stats:         stats,
		Documents:     documents,
		Exec:          exec,
		Supplier:      supplier,
		Buffers:       buffers,
		Notifier:      notifier,
		Log:           logger,
	}
	resourceH := &handler.ResourceHandler{
		Resources: resources,
		Documents: documents,
		Exec:      exec,
		Notifier:  notifier,
	}
	authH := handler.NewAuthHandler(cfg, users, tokens)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, submitH, resourceH, rdb)
	router.RegisterAdmin(e, adminH, resourceH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
