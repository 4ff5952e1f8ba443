package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/dashboard"
	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
	"github.com/realchief/RenderShotPanel/internal/payment"
	"github.com/realchief/RenderShotPanel/internal/storage/postgres"
	"github.com/realchief/RenderShotPanel/internal/storage/rendershare"
	"github.com/realchief/RenderShotPanel/internal/ticket"
	"github.com/realchief/RenderShotPanel/internal/ws"
	"github.com/realchief/RenderShotPanel/middleware"
)

func main() {
	log.Println("Starting...")

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to load DB config:", err)
	}

	db, err := postgres.ConnectDB(dbCfg)
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	if err := postgres.MigrateModels(db,
		&models.User{}, &models.JobStatus{}, &models.RenderPlan{},
		&models.JobError{}, &models.Job{}, &models.JobTask{},
		&models.SubmitSession{}, &models.Payment{}, &models.CouponCode{},
		&models.PromotionPackage{}, &models.Ticket{}, &models.TicketReply{},
		&models.Setting{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	hub := notify.NewHub()
	dispatcher := notify.NewDispatcher(hub, notify.NewSlackClient(cfg), notify.NewMailer(cfg), cfg.NotifyWorkers, cfg.NotifyQueue)
	defer dispatcher.Stop()

	storage := rendershare.NewClient(cfg)

	jobRepo := postgres.NewJobRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	jobService := job.NewJobService(jobRepo, userRepo, sessionRepo, storage, dispatcher)
	paymentService := payment.NewPaymentService(paymentRepo, userRepo, dispatcher)
	ticketService := ticket.NewTicketService(ticketRepo, dispatcher)
	dashboardService := dashboard.NewDashboardService(statsRepo)

	jobHandler := job.NewJobHandler(jobService)
	paymentHandler := payment.NewPaymentHandler(paymentService)
	ticketHandler := ticket.NewTicketHandler(ticketService)
	dashboardHandler := dashboard.NewDashboardHandler(dashboardService)
	jobsConsumer := ws.NewJobsConsumer(hub, jobService)
	systemConsumer := ws.NewSystemConsumer(hub, jobService, paymentRepo)

	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	authed := router.Group("/", middleware.TokenAuth(userRepo))
	{
		authed.GET("/api/jobs/:name", jobHandler.Get)
		authed.POST("/api/jobs", jobHandler.Submit)
		authed.PUT("/api/jobs/:name", jobHandler.Callback)

		authed.GET("/jobs", jobHandler.List)
		authed.POST("/jobs", jobHandler.WebSubmit)
		authed.POST("/jobs/:name/resubmit", jobHandler.Resubmit)
		authed.GET("/jobs/:name/output", jobHandler.Output)
		authed.GET("/files", jobHandler.Files)

		authed.POST("/api/sessions", jobHandler.CreateSession)
		authed.GET("/api/sessions/:session_id", jobHandler.GetSession)
		authed.POST("/api/sessions/:session_id/submit", jobHandler.SubmitSession)
		authed.POST("/sessions/select", jobHandler.SelectFile)

		authed.GET("/payments", paymentHandler.List)
		authed.POST("/payments", paymentHandler.Create)
		authed.PUT("/payments/:id", paymentHandler.Update)
		authed.POST("/coupons/redeem", paymentHandler.Redeem)
		authed.GET("/packages", paymentHandler.Packages)

		authed.GET("/tickets", ticketHandler.List)
		authed.POST("/tickets", ticketHandler.Create)
		authed.GET("/tickets/:number", ticketHandler.Get)
		authed.POST("/tickets/:number/replies", ticketHandler.Reply)
		authed.PUT("/tickets/:number/status", ticketHandler.SetStatus)

		authed.GET("/dashboard", dashboardHandler.Get)

		authed.GET("/ws/jobs", jobsConsumer.Serve)
		authed.GET("/ws/system", systemConsumer.Serve)
	}

	server := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Shutdown failed:", err)
	}
}
