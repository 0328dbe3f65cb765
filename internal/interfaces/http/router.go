package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasul/production-api/internal/application/auth"
	"github.com/obrasul/production-api/internal/application/changeorder"
	"github.com/obrasul/production-api/internal/application/productionorder"
	"github.com/obrasul/production-api/internal/application/receiving"
	"github.com/obrasul/production-api/internal/application/requisition"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ChangeOrderUC *changeorder.UseCase
	ReceivingUC   *receiving.UseCase
	RequisitionUC *requisition.UseCase
	OrderUC       *productionorder.UseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// C.A.s (protegido)
	caGroup := protected.Group("/ca")
	caHandler := NewChangeOrderHandler(deps.ChangeOrderUC)
	caGroup.Post("/", caHandler.Create)
	caGroup.Get("/", caHandler.List)
	caGroup.Post("/movements", caHandler.RecordMovement)
	caGroup.Put("/items/:item_id/stock-status", caHandler.UpdateItemStockStatus)
	caGroup.Get("/:id", caHandler.Get)

	// Recebimentos (protegido)
	recGroup := protected.Group("/recebimentos")
	recHandler := NewReceivingHandler(deps.ReceivingUC)
	recGroup.Post("/", recHandler.Intake)
	recGroup.Get("/", recHandler.List)
	recGroup.Post("/:id/resolve", recHandler.ResolvePendency)
	recGroup.Put("/:id/reject", recHandler.RejectEntry)
	recGroup.Put("/:id", recHandler.Conference)

	// Requisições de compra (protegido)
	reqGroup := protected.Group("/requisitions")
	reqHandler := NewRequisitionHandler(deps.RequisitionUC)
	reqGroup.Post("/", reqHandler.Create)
	reqGroup.Get("/pending", reqHandler.ListPending)
	reqGroup.Put("/:id/fulfill", reqHandler.Fulfill)

	// Ordens de produção (protegido)
	ordGroup := protected.Group("/ordens")
	ordHandler := NewProductionOrderHandler(deps.OrderUC)
	ordGroup.Post("/", ordHandler.Create)
	ordGroup.Get("/", ordHandler.List)
	ordGroup.Put("/:id", ordHandler.Update)
	ordGroup.Delete("/:id", ordHandler.Delete)
}
