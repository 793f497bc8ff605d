package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/tamik3/oy-vey-pay/internal/config"
	"github.com/tamik3/oy-vey-pay/internal/exchange"
	"github.com/tamik3/oy-vey-pay/internal/record"
	"github.com/tamik3/oy-vey-pay/internal/reports"
	"github.com/tamik3/oy-vey-pay/internal/router"
	"github.com/tamik3/oy-vey-pay/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logrus.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: router.ErrorHandler,
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	fx := exchange.NewClient(cfg.ExchangeAPIKey, cfg.ExchangeAPIURL)
	recordSvc := record.NewService(record.NewRepository(pool), fx)
	userStore := user.NewStore(pool)

	r := &router.Router{
		AuthHandler:    user.NewHandler(userStore, []byte(cfg.JWTSecret)),
		ExpenseHandler: record.NewHandler(record.KindExpense, recordSvc),
		IncomeHandler:  record.NewHandler(record.KindIncome, recordSvc),
		ReportsHandler: reports.NewHandler(recordSvc),
		AuthMW:         router.AuthMiddleware([]byte(cfg.JWTSecret)),
	}
	r.RegisterRoutes(app)

	logrus.Infoln("Listening on port", cfg.Port)
	logrus.Fatal(app.Listen(":" + cfg.Port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logrus.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Info("request")
		return err
	}
}
