package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"smart-inventory/internal/config"
	"smart-inventory/internal/handler"
	"smart-inventory/internal/lock"
	"smart-inventory/internal/middleware"
	"smart-inventory/internal/model"
	"smart-inventory/internal/repository"
	"smart-inventory/internal/service"
	"smart-inventory/internal/ws"
	"smart-inventory/pkg/database"
	"smart-inventory/pkg/logger"
	"smart-inventory/pkg/password"
)

func main() {
	// 1. Load config
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, baseLogger.Named("gorm"))
	if err != nil {
		baseLogger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		baseLogger.Fatal("failed to migrate schema", zap.Error(err))
	}

	// 3. Stock lock backend
	var locker lock.Locker = lock.NewLocal()
	if cfg.Lock.Backend == config.LockRedis {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Lock.RedisAddress})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			baseLogger.Fatal("failed to reach redis", zap.String("address", cfg.Lock.RedisAddress), zap.Error(err))
		}
		locker = lock.NewRedis(rdb, cfg.Lock.TTL, baseLogger.Named("lock.redis"))
	}
	baseLogger.Info("stock lock backend ready", zap.String("backend", cfg.Lock.Backend))

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(baseLogger.Named("ws"))
	go wsHub.Run()
	defer wsHub.Stop()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	reasonRepo := repository.NewReasonRepo(db)
	txRepo := repository.NewStockTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	permissionRepo := repository.NewPermissionRepo(db)

	ledgerService := service.NewLedgerService(db, productRepo, txRepo, reasonRepo, userRepo, locker, wsHub, baseLogger.Named("svc.ledger"))
	catalogService := service.NewCatalogService(db, productRepo, supplierRepo, userRepo, ledgerService, wsHub, baseLogger.Named("svc.catalog"))
	identityService := service.NewIdentityService(userRepo, roleRepo, permissionRepo, catalogService,
		password.NewBcrypt(cfg.Security.BcryptCost), baseLogger.Named("svc.identity"))

	// 6. Seed default permissions, roles, reasons and admin user
	seedDefaults(cfg.Seed, permissionRepo, roleRepo, reasonRepo, identityService, baseLogger.Named("seed"))

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 5*time.Minute)
	go limiter.Sweep(ctx, time.Minute)

	// Middleware
	app.Use(middleware.RequestLogger(baseLogger.Named("http")))
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(limiter.Handler())

	// 8. Routes
	handler.NewHandlers(catalogService, ledgerService, identityService).Register(app.Group("/api/v1"))
	handler.RegisterWebsocket(app, wsHub)

	// 9. Graceful Shutdown
	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	baseLogger.Info("server exited")
}

// seedDefaults creates default permissions, roles, stock reasons and the
// first administrator if they don't exist.
func seedDefaults(
	seed config.SeedConfig,
	permissions repository.PermissionRepository,
	roles repository.RoleRepository,
	reasons repository.ReasonRepository,
	identity service.IdentityService,
	log *zap.Logger,
) {
	// Permissions before roles: roles are granted existing permissions.
	if err := permissions.SeedDefaults(); err != nil {
		log.Warn("failed to seed permissions", zap.Error(err))
	}
	if err := roles.SeedDefaults(); err != nil {
		log.Warn("failed to seed roles", zap.Error(err))
	}
	if err := reasons.SeedDefaults(); err != nil {
		log.Warn("failed to seed stock reasons", zap.Error(err))
	}

	if seed.AdminPassword == "" {
		log.Info("SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	ctx := context.Background()
	adminRole, err := roles.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		log.Warn("admin role missing, skipping admin seed", zap.Error(err))
		return
	}

	_, err = identity.CreateUser(ctx, service.NewUser{
		Kind: service.UserKindAdmin,
		Account: &service.AccountInput{
			Username:  seed.AdminUsername,
			FirstName: "System",
			LastName:  "Administrator",
			Email:     seed.AdminEmail,
			Password:  seed.AdminPassword,
			RoleID:    adminRole.ID,
			IsActive:  true,
		},
	})
	switch {
	case err == nil:
		log.Info("admin user created", zap.String("username", seed.AdminUsername))
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		log.Debug("admin user already present", zap.String("username", seed.AdminUsername))
	default:
		log.Warn("failed to create admin user", zap.Error(err))
	}
}
