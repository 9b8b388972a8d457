package domain

import (
	"context"
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// InvalidForecastInputError violación de contrato del llamador en los insumos del
// forecast. Nunca se reintenta: indica un bug de datos aguas arriba que hay que
// hacer visible, no silenciar con un clamp.
type InvalidForecastInputError struct {
	Field string
	Value float64
}

func (e *InvalidForecastInputError) Error() string {
	return fmt.Sprintf("forecast: campo %s inválido (valor %v)", e.Field, e.Value)
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *InvalidForecastInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// AuthError rechazo del intercambio de credenciales con la plataforma externa.
// Fatal para la petición en curso; seguro de reintentar más tarde.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("plataforma: autenticación rechazada (HTTP %d): %s", e.Status, e.Body)
}

// UpstreamError respuesta no exitosa de la plataforma externa en una lectura.
// El batch completo falla; no hay recuperación parcial en esta capa.
type UpstreamError struct {
	Op     string // operación remota, ej. "GetStockLevel_Batch"
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("plataforma: %s falló (HTTP %d): %s", e.Op, e.Status, e.Body)
}

// HeaderCreateError falló la creación de la cabecera de la orden de compra.
// No hubo efecto remoto: es seguro reintentar la colocación completa.
type HeaderCreateError struct {
	Status int
	Body   string
}

func (e *HeaderCreateError) Error() string {
	return fmt.Sprintf("orden de compra: creación de cabecera falló (HTTP %d): %s", e.Status, e.Body)
}

// LineAppendError falló el append de una línea concreta después de que la cabecera
// (y las líneas anteriores) quedaran creadas en la plataforma. Reintentar la orden
// completa duplicaría las líneas ya aceptadas: el llamador debe retomar desde Index.
type LineAppendError struct {
	Index  int // índice 0-based de la línea que falló
	Status int
	Body   string
}

func (e *LineAppendError) Error() string {
	return fmt.Sprintf("orden de compra: append de línea %d falló (HTTP %d): %s", e.Index, e.Status, e.Body)
}

// AmbiguousOutcomeError un timeout o corte de red ocurrió con un append de línea en
// vuelo: el resultado remoto es desconocido. Nunca se trata como éxito ni como fallo
// limpio; requiere reconciliación explícita contra la plataforma antes de retomar.
type AmbiguousOutcomeError struct {
	Index int // línea cuyo resultado quedó en duda
	Cause error
}

func (e *AmbiguousOutcomeError) Error() string {
	return fmt.Sprintf("orden de compra: resultado ambiguo en línea %d: %v", e.Index, e.Cause)
}

func (e *AmbiguousOutcomeError) Unwrap() error { return e.Cause }

// IsInFlightTimeout reporta si err corresponde a un timeout o cancelación con la
// petición ya en vuelo: el resultado remoto es desconocido. Un error de conexión
// rechazada, en cambio, garantiza que la petición nunca fue aceptada y se trata
// como fallo limpio.
func IsInFlightTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
