package repository

import (
	"context"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
)

// OrderAttemptRepository persistencia de la máquina de estados de colocación de
// órdenes de compra. El cursor (PurchaseID + NextLine) debe sobrevivir al proceso
// para que un reintento se limite a "append de las líneas restantes".
type OrderAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.OrderAttempt) error
	// Save persiste purchase_id, next_line, status y last_error tras cada transición.
	Save(ctx context.Context, attempt *entity.OrderAttempt) error
	// GetByID devuelve domain.ErrNotFound si el intento no existe.
	GetByID(ctx context.Context, id string) (*entity.OrderAttempt, error)
	// ListOpen intentos que requieren acción del operador (PARTIALLY_FAILED,
	// AMBIGUOUS, o HEADER_CREATED tras una caída a mitad de los appends).
	ListOpen(ctx context.Context, limit int) ([]*entity.OrderAttempt, error)
}
