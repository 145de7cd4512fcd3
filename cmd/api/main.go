package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/Catalogo-api/docs"
	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/cache"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// @title                       Catalogo API
// @version                     1.0
// @description                 API del catálogo: categorías con ofertas programadas, productos e imágenes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer {token}
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("auth_required", cfg.HTTP.AuthRequired).
		Msg("iniciando aplicación")

	// Porcentajes y precios viajan como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	imageRepo := postgres.NewImageOrderRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de orden de imágenes: solo si hay REDIS_ADDR.
	var imageCache ports.ImageOrderCache
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rdb.Close()
			imageCache = cache.NewImageOrderCache(rdb, cfg.Redis.ImageTTL)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	saleMetrics, err := metrics.NewSaleMetrics(cfg.Metrics.Namespace, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}

	clock := ports.SystemClock{}
	timeout := cfg.Sale.StoreTimeout

	authUC := auth.NewAuthUseCase(adminRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, timeout)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo, txRunner, clock, timeout)
	saleUC := usecase.NewSaleUseCase(
		categoryRepo, productRepo, clock, saleMetrics,
		infrapdf.NewSaleReportGenerator(nil), timeout, log,
	)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, clock, timeout)
	imageUC := usecase.NewImageUseCase(imageRepo, imageCache, clock, timeout, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catalogo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CategoryUC:   categoryUC,
		SaleUC:       saleUC,
		ProductUC:    productUC,
		ImageUC:      imageUC,
		JWTSecret:    cfg.JWT.Secret,
		AuthRequired: cfg.HTTP.AuthRequired,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
