package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"burgerpos/internal/config"
	"burgerpos/internal/handlers"
	"burgerpos/internal/middleware"
	"burgerpos/internal/models"
	"burgerpos/internal/repositories"
	"burgerpos/internal/services"
	"burgerpos/pkg/rabbitmq"
)

// App is the HTTP server together with the connections it owns.
type App struct {
	Fiber   *fiber.App
	closers []func() error
}

// Close releases every connection opened by NewApp, in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

// stores are the key-value backends. Carts live in their own store so the redis driver can
// expire abandoned sales.
type stores struct {
	data  repositories.KeyValueStore
	carts repositories.KeyValueStore
}

// NewApp wires storage, services and handlers according to cfg.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{}

	kv, err := openStores(cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	// --- Event publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.EventsEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			a.closers = append(a.closers, mqClient.Close)
			publisher = mqClient
			if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewKVProductRepository(kv.data, cfg.CatalogKey)
	orderRepo := repositories.NewKVOrderRepository(kv.data, cfg.OrdersKey)
	cartRepo := repositories.NewKVCartRepository(kv.carts)

	if cfg.StorageDriver == config.DriverMemory {
		seedProducts(productRepo)
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, publisher, cfg.Now)
	cartService := services.NewCartService(cartRepo, productRepo, orderService, cfg.Now)
	analyticsService := services.NewAnalyticsService(orderRepo, cfg.Now)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{AppName: "burgerpos"})
	app.Use(recover.New())
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewAnalyticsHandler(analyticsService).RegisterRoutes(apiV1)

	// --- Backup mirror (optional) ---
	if cfg.BackupEnabled {
		authService, err := services.NewAuthService(cfg.BackupPassword, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			a.Close()
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoDB, err := repositories.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			return mongoDB.Client().Disconnect(context.Background())
		})
		log.Printf("Backup mirror connected to MongoDB database %s", cfg.MongoDBName)

		backupService := services.NewBackupService(kv.data, repositories.NewMongoBackupRepository(mongoDB),
			cfg.CatalogKey, cfg.OrdersKey)
		handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
		backupRoutes := apiV1.Group("/backup", middleware.AuthRequired(authService))
		handlers.NewBackupHandler(backupService).RegisterRoutes(backupRoutes)
	}

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    cfg.Now().Format(time.RFC3339),
			"storage": cfg.StorageDriver,
			"backup":  cfg.BackupEnabled,
			"events":  publisher != nil,
		})
	})

	a.Fiber = app
	return a, nil
}

// openStores connects the configured storage driver and registers its closers on a.
func openStores(cfg *config.Config, a *App) (stores, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := repositories.NewMemoryKeyValueStore()
		return stores{data: store, carts: store}, nil

	case config.DriverSQLite, config.DriverPostgres:
		dialector := sqlite.Open(cfg.DatabaseDSN)
		if cfg.StorageDriver == config.DriverPostgres {
			dialector = postgres.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return stores{}, fmt.Errorf("failed to connect to %s database: %w", cfg.StorageDriver, err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		store := repositories.NewGORMKeyValueStore(db)
		if err := store.Migrate(); err != nil {
			return stores{}, fmt.Errorf("failed to migrate key-value table: %w", err)
		}
		log.Printf("Using %s storage", cfg.StorageDriver)
		return stores{data: store, carts: store}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return stores{}, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
		}
		store := repositories.NewRedisKeyValueStore(client).WithPrefixTTL(repositories.CartKey(""), cfg.CartTTL)
		log.Printf("Using redis storage at %s (carts expire after %s)", cfg.RedisAddr, cfg.CartTTL)
		return stores{data: store, carts: store}, nil
	}
	return stores{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// seedProducts fills an empty in-memory catalog so the API is usable right away.
func seedProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{Name: "X-Burger", Category: models.CategoryBurgers, Price: decimal.RequireFromString("18.00")},
		{Name: "X-Bacon", Category: models.CategoryBurgers, Price: decimal.RequireFromString("22.00")},
		{Name: "Batata Frita", Category: models.CategoryFries, Price: decimal.RequireFromString("12.00")},
		{Name: "Refrigerante Lata", Category: models.CategoryDrinks, Price: decimal.RequireFromString("6.00")},
		{Name: "Cheddar Extra", Category: models.CategoryExtras, Price: decimal.RequireFromString("4.00")},
	}
	ctx := context.Background()
	for _, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			log.Printf("Error seeding product %s: %v", p.Name, err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := a.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := a.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	a.Close()
	log.Println("Server gracefully stopped")
}
