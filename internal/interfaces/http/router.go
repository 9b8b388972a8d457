package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/commerce"
	apprepl "github.com/Demmoman6666/SBP-CRM-sub004/internal/application/replenishment"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ForecastUC *apprepl.ForecastUseCase
	OrderUC    *apprepl.OrderUseCase
	OrderPDF   *apprepl.PDFUseCase
	CommerceUC *commerce.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reposición: cálculo y sugerencias (cualquier rol autenticado)
	repl := protected.Group("/replenishment")
	replHandler := NewReplenishmentHandler(deps.ForecastUC)
	repl.Post("/forecast", replHandler.Forecast)
	repl.Post("/suggestions", replHandler.Suggestions)

	// Órdenes de compra: las mutaciones quedan restringidas a compras
	orders := repl.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDF)
	orders.Post("/", RequireRole("admin", "buyer"), orderHandler.Place)
	orders.Get("/", orderHandler.ListOpen)
	orders.Get("/:id", orderHandler.Get)
	orders.Post("/:id/resume", RequireRole("admin", "buyer"), orderHandler.Resume)
	orders.Post("/:id/reconcile", RequireRole("admin", "buyer"), orderHandler.Reconcile)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Comercio: push de clientes y pedidos borrador (representantes y admin)
	commerceGroup := protected.Group("/commerce", RequireRole("admin", "rep"))
	commerceHandler := NewCommerceHandler(deps.CommerceUC)
	commerceGroup.Post("/customers", commerceHandler.PushCustomer)
	commerceGroup.Post("/draft-orders", commerceHandler.CreateDraftOrder)
}
