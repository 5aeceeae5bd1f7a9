package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"ticketflow/config"
	_ "ticketflow/docs"
	"ticketflow/internal/adapters/auth"
	"ticketflow/internal/adapters/email"
	"ticketflow/internal/clock"
	deliveryhttp "ticketflow/internal/delivery/http"
	"ticketflow/internal/delivery/http/controllers"
	"ticketflow/internal/delivery/http/middleware"
	"ticketflow/internal/domain"
	"ticketflow/internal/notify"
	"ticketflow/internal/repository/postgres"
	"ticketflow/internal/services"
	"ticketflow/internal/store/memory"
)

const serviceTimeout = 5 * time.Second

// @title ticketflow API
// @version 1.0
// @description Event discovery and ticket booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	var (
		eventRepo  domain.EventRepository
		userRepo   domain.UserRepository
		ticketRepo domain.TicketRepository
		inventory  domain.InventoryStore
	)
	switch cfg.Store {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("ping database: %v", err)
		}
		eventRepo = postgres.NewEventRepository(db)
		userRepo = postgres.NewUserRepository(db)
		ticketRepo = postgres.NewTicketRepository(db)
		inventory = postgres.NewInventoryStore(db)
	default:
		store := memory.NewStore()
		if err := memory.Seed(context.Background(), store); err != nil {
			log.Fatalf("seed store: %v", err)
		}
		eventRepo = store.Events()
		userRepo = store.Users()
		ticketRepo = store.Tickets()
		inventory = store
	}

	hub := notify.NewHub()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKey,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	inventoryService := services.NewInventoryService(
		eventRepo, userRepo, ticketRepo, inventory, hub, emailService,
		clock.NewSystem(), logger, serviceTimeout,
	)
	queryService := services.NewQueryService(eventRepo, userRepo, ticketRepo, serviceTimeout)
	authService := services.NewAuthService(userRepo, auth.NewJWTIssuer(cfg.JWTSecret), cfg.TokenExpiry)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mux := deliveryhttp.NewRouter(
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, queryService),
		controllers.NewTicketController(logger, inventoryService, queryService),
		controllers.NewStreamController(logger, queryService, hub),
		verifier,
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.Logging(logger, handler)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment, "store", cfg.Store)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
