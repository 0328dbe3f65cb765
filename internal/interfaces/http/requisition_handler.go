package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/application/requisition"
)

type RequisitionHandler struct {
	uc *requisition.UseCase
}

func NewRequisitionHandler(uc *requisition.UseCase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

// Create godoc
// @Summary      Abre uma requisição de compra
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Param        payload body dto.CreateRequisitionRequest true "Dados da requisição"
// @Success      201 {object} dto.RequisitionResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPending godoc
// @Summary      Lista requisições ainda não atendidas
// @Tags         requisitions
// @Produce      json
// @Success      200 {array} dto.RequisitionResponse
// @Router       /requisitions/pending [get]
func (h *RequisitionHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Fulfill godoc
// @Summary      Marca uma requisição como atendida
// @Tags         requisitions
// @Produce      json
// @Param        id path string true "Id da requisição"
// @Success      200 {object} dto.RequisitionResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /requisitions/{id}/fulfill [put]
func (h *RequisitionHandler) Fulfill(c *fiber.Ctx) error {
	out, err := h.uc.Fulfill(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
