package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpapi "github.com/weatherly/weatherly/internal/api/http"
	"github.com/weatherly/weatherly/internal/config"
	"github.com/weatherly/weatherly/internal/weather"
	"github.com/weatherly/weatherly/internal/weather/openweather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var zapLogger *zap.Logger
	if os.Getenv("DEBUG") != "" {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()
	zlog := zapLogger.Sugar()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	client := openweather.NewClient(openweather.Config{
		APIKey:         cfg.OpenWeatherAPIKey,
		WeatherBaseURL: cfg.WeatherBaseURL,
		OneCallBaseURL: cfg.OneCallBaseURL,
		GeoBaseURL:     cfg.GeoBaseURL,
	}, httpClient, zlog)

	service := weather.NewService(client, client, zlog)

	app := fiber.New(fiber.Config{
		AppName:               "weatherly",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherly",
		})
	})

	httpapi.RegisterRoutes(app, service, client, httpapi.Defaults{
		Units: cfg.DefaultUnits,
		Days:  cfg.ForecastDays,
		Hours: cfg.HourlyWindow,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Errorw("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Errorw("error during shutdown", "error", err)
	}
}
