package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SudarshanShah/MovieApi/config"
	"github.com/SudarshanShah/MovieApi/db"
	authhandler "github.com/SudarshanShah/MovieApi/internal/auth/handler"
	authrepo "github.com/SudarshanShah/MovieApi/internal/auth/repository/postgres"
	authservice "github.com/SudarshanShah/MovieApi/internal/auth/service"
	"github.com/SudarshanShah/MovieApi/internal/mail"
	moviehandler "github.com/SudarshanShah/MovieApi/internal/movie/handler"
	movierepo "github.com/SudarshanShah/MovieApi/internal/movie/repository/postgres"
	movieservice "github.com/SudarshanShah/MovieApi/internal/movie/service"
	"github.com/SudarshanShah/MovieApi/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	posters, err := newStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize poster storage", "error", err)
		os.Exit(1)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	userRepo := authrepo.NewPostgresRepository(dbPool)
	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin)
	refreshService := authservice.NewRefreshService(userRepo, cfg.RefreshExpiryMin)
	otpService := authservice.NewOTPService(userRepo, mailer, cfg.OTPExpirySec)
	userService := authservice.NewUserService(userRepo, tokenService, refreshService)

	movieRepo := movierepo.NewPostgresRepository(dbPool)
	movieService := movieservice.NewMovieService(movieRepo, posters, cfg.BaseURL)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(authhandler.Authenticate(tokenService, userRepo))

	authhandler.RegisterRoutes(app,
		authhandler.NewAuthHandler(userService),
		authhandler.NewForgotPasswordHandler(otpService),
		authhandler.NewMailHandler(mailer))
	moviehandler.RegisterRoutes(app, moviehandler.NewMovieHandler(movieService))

	log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	return storage.NewDiskStorage(cfg.PosterDir), nil
}
