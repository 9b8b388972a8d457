package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
)

// mapDomainError traduce los errores de dominio a respuestas HTTP. Los handlers
// lo usan como último eslabón; los casos con cuerpo especial (colocación parcial
// de órdenes) se resuelven antes de llegar aquí.
func mapDomainError(c *fiber.Ctx, err error) error {
	var invalid *domain.InvalidForecastInputError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: invalid.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_AUTH", Message: "la plataforma externa rechazó las credenciales"})
	}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: upstream.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
