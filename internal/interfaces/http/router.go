package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger/internal/application/auth"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Verifier   auth.TokenVerifier
	Engine     *inventory.MovementEngine
	Ledger     *inventory.LedgerUseCase
	Reports    *inventory.ReportUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
}

// Router registra las rutas de la API. Todo /api exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	protected := app.Group("/api", AuthMiddleware(deps.Verifier))

	// Stock
	stock := protected.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.Ledger)
	stock.Post("/movements", inventoryHandler.RegisterMovement)
	stock.Get("/movements", inventoryHandler.ListMovements)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Post("/import", productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/category-totals", reportHandler.CategoryTotals)
	reports.Get("/summary", reportHandler.Summary)
}
