package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/obrasul/production-api/internal/application/dto"
	"github.com/obrasul/production-api/internal/application/receiving"
	"github.com/obrasul/production-api/internal/domain/repository"
)

type ReceivingHandler struct {
	uc *receiving.UseCase
}

func NewReceivingHandler(uc *receiving.UseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

// Intake godoc
// @Summary      Registra a entrada de uma NF na portaria
// @Tags         recebimentos
// @Accept       json
// @Produce      json
// @Param        payload body dto.CreateReceivingRequest true "Dados da entrada"
// @Success      201 {object} dto.ReceivingResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /recebimentos [post]
func (h *ReceivingHandler) Intake(c *fiber.Ctx) error {
	var in dto.CreateReceivingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.Intake(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lista recebimentos com filtros e paginação
// @Tags         recebimentos
// @Produce      json
// @Param        search query string false "Busca em NF, fornecedor e pedido"
// @Param        status query string false "Filtra por status"
// @Param        start_date query string false "Data inicial (YYYY-MM-DD)"
// @Param        end_date query string false "Data final, inclusiva (YYYY-MM-DD)"
// @Param        is_client_material query bool false "Somente material de cliente"
// @Param        page query int false "Página (1-based)"
// @Param        page_size query int false "Tamanho da página"
// @Success      200 {object} dto.PaginatedReceivings
// @Failure      400 {object} dto.ErrorResponse
// @Router       /recebimentos [get]
func (h *ReceivingHandler) List(c *fiber.Ctx) error {
	filter := repository.ReceivingFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date deve estar no formato YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date deve estar no formato YYYY-MM-DD"})
		}
		filter.EndDate = &t
	}
	if raw := c.Query("is_client_material"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "is_client_material deve ser true ou false"})
		}
		filter.IsClientMaterial = &b
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Conference godoc
// @Summary      Registra a conferência de um recebimento aguardando
// @Tags         recebimentos
// @Accept       json
// @Produce      json
// @Param        id path string true "Id do recebimento"
// @Param        payload body dto.ConferenceRequest true "Dados da conferência"
// @Success      200 {object} dto.ReceivingResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recebimentos/{id} [put]
func (h *ReceivingHandler) Conference(c *fiber.Ctx) error {
	var in dto.ConferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.Conference(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResolvePendency godoc
// @Summary      Resolve a pendência de um recebimento PENDING
// @Tags         recebimentos
// @Accept       json
// @Produce      json
// @Param        id path string true "Id do recebimento"
// @Param        payload body dto.ResolvePendencyRequest true "Resolução"
// @Success      200 {object} dto.ReceivingResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recebimentos/{id}/resolve [post]
func (h *ReceivingHandler) ResolvePendency(c *fiber.Ctx) error {
	var in dto.ResolvePendencyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.ResolvePendency(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectEntry godoc
// @Summary      Rejeita uma entrada ainda não conferida
// @Tags         recebimentos
// @Accept       json
// @Produce      json
// @Param        id path string true "Id do recebimento"
// @Param        payload body dto.RejectEntryRequest true "Motivo da rejeição"
// @Success      200 {object} dto.ReceivingResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /recebimentos/{id}/reject [put]
func (h *ReceivingHandler) RejectEntry(c *fiber.Ctx) error {
	var in dto.RejectEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}

	out, err := h.uc.RejectEntry(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
