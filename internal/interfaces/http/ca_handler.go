package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/obrasul/production-api/internal/application/changeorder"
	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/domain"
)

type ChangeOrderHandler struct {
	uc *changeorder.UseCase
}

func NewChangeOrderHandler(uc *changeorder.UseCase) *ChangeOrderHandler {
	return &ChangeOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Abre um C.A. (ordem de alteração de materiais)
// @Tags         ca
// @Accept       json
// @Produce      json
// @Param        payload body dto.CreateChangeOrderRequest true "Dados do C.A."
// @Success      201 {object} dto.ChangeOrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /ca [post]
func (h *ChangeOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChangeOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lista C.A.s paginados, mais recentes primeiro
// @Tags         ca
// @Produce      json
// @Param        page query int false "Página (1-based)"
// @Param        page_size query int false "Tamanho da página"
// @Success      200 {object} dto.PaginatedChangeOrders
// @Router       /ca [get]
func (h *ChangeOrderHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	out, err := h.uc.List(c.Context(), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Busca um C.A. pelo id, com itens e movimentos
// @Tags         ca
// @Produce      json
// @Param        id path string true "Id do C.A."
// @Success      200 {object} dto.ChangeOrderResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /ca/{id} [get]
func (h *ChangeOrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItemStockStatus godoc
// @Summary      Atualiza o status de estoque de um item e reavalia o C.A.
// @Tags         ca
// @Accept       json
// @Produce      json
// @Param        item_id path string true "Id do item"
// @Param        payload body dto.UpdateStockStatusRequest true "Novo status"
// @Success      200 {object} dto.ChangeItemResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /ca/items/{item_id}/stock-status [put]
func (h *ChangeOrderHandler) UpdateItemStockStatus(c *fiber.Ctx) error {
	var in dto.UpdateStockStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.UpdateItemStockStatus(c.Context(), c.Params("item_id"), in.StockStatus)
	if err != nil {
		// Valor fora do enum de status de estoque é 422, não 400.
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_ENUM", Message: err.Error()})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordMovement godoc
// @Summary      Registra um movimento de estoque ligado a um C.A.
// @Tags         ca
// @Accept       json
// @Produce      json
// @Param        payload body dto.CreateMovementRequest true "Dados do movimento"
// @Success      201 {object} dto.StockMovementResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /ca/movements [post]
func (h *ChangeOrderHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.RecordMovement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
