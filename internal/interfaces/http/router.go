package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	SaleUC     *usecase.SaleUseCase
	ProductUC  *usecase.ProductUseCase
	ImageUC    *usecase.ImageUseCase
	JWTSecret  string
	// AuthRequired protege con Bearer Token las rutas que modifican el catálogo.
	AuthRequired bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protect := Protect(deps.AuthRequired, deps.JWTSecret)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/", authHandler.Login)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)

	// Categories: lectura pública, escritura protegida
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.SaleUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", protect, categoryHandler.Create)
	categories.Put("/:id", protect, categoryHandler.Update)
	categories.Delete("/:id", protect, categoryHandler.Delete)
	categories.Put("/:id/update-sale", protect, categoryHandler.UpdateSale)
	categories.Get("/:id/sale-history/report", protect, categoryHandler.SaleReport)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", protect, productHandler.Create)
	products.Put("/:id", protect, productHandler.Update)
	products.Put("/:id/toggle-status", protect, productHandler.ToggleStatus)
	products.Delete("/:id", protect, productHandler.Delete)

	// Images
	images := api.Group("/images")
	imageHandler := NewImageHandler(deps.ImageUC)
	images.Get("/", imageHandler.List)
	images.Put("/order", protect, imageHandler.UpdateOrder)
}
