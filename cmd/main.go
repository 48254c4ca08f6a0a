package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/GowthamBk/student-management-api/config"
	"github.com/GowthamBk/student-management-api/db"
	authhandler "github.com/GowthamBk/student-management-api/internal/auth/handler"
	authrepo "github.com/GowthamBk/student-management-api/internal/auth/repository/mongodb"
	authservice "github.com/GowthamBk/student-management-api/internal/auth/service"
	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/logging"
	"github.com/GowthamBk/student-management-api/internal/mailer"
	"github.com/GowthamBk/student-management-api/internal/middleware"
	"github.com/GowthamBk/student-management-api/internal/ratelimit"
	studenthandler "github.com/GowthamBk/student-management-api/internal/student/handler"
	studentrepo "github.com/GowthamBk/student-management-api/internal/student/repository/mongodb"
	studentservice "github.com/GowthamBk/student-management-api/internal/student/service"
)

func main() {
	cfg := config.Load()
	log := logging.NewDefault(cfg.Env).With("service", "student-management-api")
	ctx := context.Background()

	database, err := db.NewMongoDatabase(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Error(ctx, "failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(context.Background(), database); err != nil {
			log.Error(context.Background(), "failed to close MongoDB connection", "error", err)
		}
	}()

	userRepo := authrepo.NewMongoUserRepository(database)
	studentRepo := studentrepo.NewMongoStudentRepository(database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Error(ctx, "failed to ensure user indexes", "error", err)
		os.Exit(1)
	}
	if err := studentRepo.EnsureIndexes(ctx); err != nil {
		log.Error(ctx, "failed to ensure student indexes", "error", err)
		os.Exit(1)
	}

	tokenService := authservice.NewTokenService(cfg.SecretKey, cfg.AccessExpiryMin, cfg.ResetExpiryMin)
	mail := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FrontendURL)
	userService := authservice.NewUserService(userRepo, tokenService, mail, log)
	studentService := studentservice.NewStudentService(studentRepo, log)

	limiter := ratelimit.NewLimiter(cfg.RequestsPerMinute, ratelimit.DefaultWindow)
	limiter.StartJanitor(5 * time.Minute)
	defer limiter.Stop()

	securityHeaders := middleware.SecurityHeaderSet(cfg.HSTSMaxAge, cfg.CSPPolicy)

	app := fiber.New(fiber.Config{
		AppName:      "Student Management API",
		ErrorHandler: apperrors.NewFiberHandler(log, securityHeaders),
	})

	// Pipeline order matters: CORS first so even rejected requests carry the
	// right CORS headers, rate limiting before any credential verification,
	// then the unconditional security headers. API-key and bearer checks are
	// route-scoped, not global.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "*",
		AllowCredentials: true,
		ExposeHeaders:    middleware.APIKeyHeader,
		MaxAge:           3600,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.RateLimit(limiter))
	app.Use(middleware.SecurityHeaders(securityHeaders))

	requireAPIKey := middleware.RequireAPIKey(cfg.APIKey)
	requireUser := middleware.RequireUser(tokenService, userRepo)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/api/v1/docs")
	})

	api := app.Group("/api/v1")
	authhandler.RegisterRoutes(api, authhandler.NewAuthHandler(userService), requireAPIKey, requireUser)
	studenthandler.RegisterRoutes(api, studenthandler.NewStudentHandler(studentService), requireAPIKey, requireUser)

	log.Info(ctx, "starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
