package http

import (
	"github.com/gofiber/fiber/v2"

	apprepl "github.com/Demmoman6666/SBP-CRM-sub004/internal/application/replenishment"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
)

// ReplenishmentHandler maneja el cálculo de reposición (protegido).
type ReplenishmentHandler struct {
	uc *apprepl.ForecastUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *apprepl.ForecastUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Forecast godoc
// @Summary      Cálculo puro de reposición para un ítem
// @Description  Calcula ROP, stock de seguridad, nivel objetivo y cantidad sugerida
//
//	a partir de los insumos del llamador, sin tocar la plataforma externa.
//
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForecastRequest  true  "parámetros de demanda y posición de stock"
// @Success      200   {object}  dto.ForecastResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/forecast [post]
func (h *ReplenishmentHandler) Forecast(c *fiber.Ctx) error {
	var in dto.ForecastRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Compute(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Suggestions godoc
// @Summary      Batch de sugerencias con posición de stock en vivo
// @Description  Resuelve SKUs, lee la posición de stock del lote contra la plataforma
//
//	externa en una sola llamada y calcula la sugerencia por ítem. Los SKUs sin
//	correspondencia se reportan en dropped_skus.
//
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestionsRequest  true  "ítems con parámetros de demanda"
// @Success      200   {object}  dto.SuggestionsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/replenishment/suggestions [post]
func (h *ReplenishmentHandler) Suggestions(c *fiber.Ctx) error {
	var in dto.SuggestionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Suggestions(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
