package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	apprender "github.com/accountsy/billing-api/internal/application/render"
	infralogo "github.com/accountsy/billing-api/internal/infrastructure/logo"
	inframail "github.com/accountsy/billing-api/internal/infrastructure/mail"
	infrapdf "github.com/accountsy/billing-api/internal/infrastructure/pdf"
	httpRouter "github.com/accountsy/billing-api/internal/interfaces/http"
	"github.com/accountsy/billing-api/pkg/config"
	"github.com/accountsy/billing-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	logoResolver := infralogo.NewResolver(infralogo.Options{
		MaxBytes:     cfg.Logo.MaxBytes,
		MaxRedirects: cfg.Logo.MaxRedirects,
		Timeout:      cfg.Logo.FetchTimeout,
	}, log.Zerolog())

	renderer := infrapdf.NewRenderer(logoResolver, log.Zerolog())
	store := apprender.NewDocumentStore()
	mailer := inframail.NewSMTPMailer(cfg.SMTP, log.Zerolog())
	renderUC := apprender.NewUseCase(renderer, store, mailer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    30 * 1024 * 1024, // large inline data-URI logos
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RenderUC: renderUC,
		Log:      log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
