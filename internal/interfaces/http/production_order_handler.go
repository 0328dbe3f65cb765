package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/application/productionorder"
	"github.com/obrasul/production-api/internal/domain/repository"
)

type ProductionOrderHandler struct {
	uc *productionorder.UseCase
}

func NewProductionOrderHandler(uc *productionorder.UseCase) *ProductionOrderHandler {
	return &ProductionOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastra uma ordem de produção no quadro
// @Tags         ordens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload body dto.ProductionOrderRequest true "Dados da ordem"
// @Success      201 {object} dto.ProductionOrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /ordens [post]
func (h *ProductionOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lista ordens de produção com filtros opcionais
// @Tags         ordens
// @Produce      json
// @Security     BearerAuth
// @Param        obra_number query string false "Filtra pelo número da obra"
// @Param        nro_op query string false "Filtra pelo número da OP"
// @Param        skip query int false "Registros a pular"
// @Param        limit query int false "Máximo de registros"
// @Success      200 {array} dto.ProductionOrderResponse
// @Router       /ordens [get]
func (h *ProductionOrderHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductionOrderFilter{
		ObraNumber: c.Query("obra_number"),
		NroOp:      c.Query("nro_op"),
		Skip:       c.QueryInt("skip", 0),
		Limit:      c.QueryInt("limit", 100),
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}

	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualiza uma ordem de produção
// @Tags         ordens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Id da ordem"
// @Param        payload body dto.ProductionOrderRequest true "Dados da ordem"
// @Success      200 {object} dto.ProductionOrderResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /ordens/{id} [put]
func (h *ProductionOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.Update(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remove uma ordem de produção
// @Tags         ordens
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Id da ordem"
// @Success      200 {object} dto.ProductionOrderResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /ordens/{id} [delete]
func (h *ProductionOrderHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
