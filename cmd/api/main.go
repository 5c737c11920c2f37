package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"altoev/internal/database"
	"altoev/internal/mail"
	"altoev/internal/middleware"
	"altoev/internal/modules/auth"
	"altoev/internal/modules/catalog"
	"altoev/internal/modules/feed"
	"altoev/internal/modules/ingest"
	"altoev/internal/modules/lifecycle"
	"altoev/internal/modules/reservation"
	jwtsvc "altoev/internal/pkg/jwt"
	"altoev/internal/repository"
	"altoev/internal/scheduler"
)

const (
	defaultMailPollInterval = 5 * time.Minute
	defaultSweepInterval    = 1 * time.Minute
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	imapHost := os.Getenv("IMAP_HOST")
	imapUser := os.Getenv("IMAP_USER")
	imapPass := os.Getenv("IMAP_PASS")
	if imapHost == "" || imapUser == "" || imapPass == "" {
		log.Fatal("IMAP_HOST, IMAP_USER and IMAP_PASS must be set")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	reservationRepo := repository.NewReservationRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	extraRepo := repository.NewExtraRepository(db)
	userRepo := repository.NewUserRepository(db)
	wizardRepo := repository.NewWizardNumberRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := feed.NewHub()
	feedHandler := feed.NewHandler(hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(vehicleRepo, extraRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(reservationRepo, wizardRepo, hub)
	reservationHandler := reservation.NewHandler(reservationService)

	extractor, err := ingest.NewExtractor()
	if err != nil {
		log.Fatal(err)
	}

	mailClient := mail.NewClient(mail.Config{
		Host:     imapHost,
		Port:     envOr("IMAP_PORT", "993"),
		Username: imapUser,
		Password: imapPass,
		Folder:   envOr("IMAP_FOLDER", "INBOX"),
		Sender:   envOr("MAIL_SENDER", "damian@altoev.com"),
	})

	ingestService := ingest.NewService(mailClient, reservationRepo, extractor, hub)
	lifecycleService := lifecycle.NewService(reservationRepo)

	sched := scheduler.New()
	sched.Add("mail-poll", intervalOr("MAIL_POLL_INTERVAL", defaultMailPollInterval), ingestService.Run)
	sched.Add("lifecycle-sweep", intervalOr("LIFECYCLE_SWEEP_INTERVAL", defaultSweepInterval), lifecycleService.Sweep)
	sched.Start(context.Background())
	defer sched.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		reservationHandler.RegisterRoutes(v1)
		feedHandler.RegisterRoutes(v1)

		// protected (manual override endpoints)
		protected := v1.Group("/")
		protected.Use(middleware.RequireAdmin(j))
		{
			reservationHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + envOr("PORT", "8080")); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intervalOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
