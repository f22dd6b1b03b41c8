package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"order-features/core/database"
	"order-features/core/loader"
	"order-features/core/logger"
	"order-features/core/metrics"
	"order-features/core/middleware/auth"
	"order-features/core/middleware/rayid"

	"order-features/feature/integrity"
	"order-features/feature/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "order-features/docs/swagger"
)

// @title Order Features API
// @version 1.0
// @description Derives per-order features from the marketplace dataset.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the order features server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration and logger
		cfg, logg, err := loadEnv()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Storage, required only for the bucket source
		client, err := openStorage(cfg, needsBucket(cfg), logg)
		if err != nil {
			return err
		}

		// 3. Database (Optional), used by the export check
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to export database", zap.String("driver", cfg.Database.Driver))
		}

		source, err := newSource(cfg, client, logg)
		if err != nil {
			return err
		}

		reg := metrics.New()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		})

		// 4. Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(orders.NewFeature(source, logg, reg, reviewsShape(cfg)))
		mgr.Register(integrity.NewFeature(source, client, db, integrity.Options{
			Bucket:      cfg.Storage.Bucket,
			Prefix:      cfg.Dataset.Prefix,
			Naming:      cfg.Dataset.Naming(),
			ReviewsRows: cfg.Dataset.ReviewsRows,
			ReviewsCols: cfg.Dataset.ReviewsCols,
			ExportTable: cfg.Export.Table,
		}, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", reg.Handler())

		if cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		} else {
			logg.Warn("API key not set, endpoints are unprotected")
		}

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
