package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/commerce"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
)

// CommerceHandler maneja la sincronización con la tienda online (protegido).
type CommerceHandler struct {
	uc *commerce.UseCase
}

// NewCommerceHandler construye el handler.
func NewCommerceHandler(uc *commerce.UseCase) *CommerceHandler {
	return &CommerceHandler{uc: uc}
}

// PushCustomer godoc
// @Summary      Sincronizar un cliente de salón con la tienda online
// @Tags         commerce
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PushCustomerRequest  true  "datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commerce/customers [post]
func (h *CommerceHandler) PushCustomer(c *fiber.Ctx) error {
	var in dto.PushCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PushCustomer(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateDraftOrder godoc
// @Summary      Crear un pedido borrador en la tienda online
// @Description  El representante arma el pedido; el cliente lo confirma y paga desde
//
//	el invoice de la tienda.
//
// @Tags         commerce
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftOrderRequest  true  "líneas del pedido"
// @Success      201   {object}  dto.DraftOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/commerce/draft-orders [post]
func (h *CommerceHandler) CreateDraftOrder(c *fiber.Ctx) error {
	var in dto.CreateDraftOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateDraftOrder(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
