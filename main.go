package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	applicationService "ichiba_backend/internals/features/applications/service"
	notifService "ichiba_backend/internals/features/notifications/service"
	draftService "ichiba_backend/internals/features/registration/draft/service"
	scheduler "ichiba_backend/internals/features/users/auth/scheduler"

	"ichiba_backend/internals/configs"
	database "ichiba_backend/internals/databases"
	"ichiba_backend/internals/helpers/kvstore"
	middlewares "ichiba_backend/internals/middlewares"
	routes "ichiba_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ base + performance middleware
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard, aligned with the DB statement_timeout
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// ⏱ maintenance after the DB is up
	stopCleanup := scheduler.StartBlacklistCleanupScheduler(database.DB, time.Hour)

	// ✅ MIDTRANS
	applicationService.InitMidtrans(
		configs.GetEnv("MIDTRANS_SERVER_KEY"),
		configs.GetEnv("MIDTRANS_ENV") == "production",
	)

	// long-lived workers owned here, closed on shutdown
	sessions := kvstore.NewDBStore(database.DB)
	drafts := draftService.NewCoalescer(draftService.NewGormStore(database.DB), draftService.DebounceDelay)
	notifier := notifService.NewDispatcher(database.DB)

	// ❤️ anti cold start
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.BaseRoutes(app, database.DB)
	routes.SetupRoutes(app, database.DB, routes.Deps{
		Sessions: sessions,
		Drafts:   drafts,
		Notifier: notifier,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop intake, flush pending drafts, drain queue,
	// close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	stopCleanup()
	drafts.Close()
	notifier.Close()

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
