// Package commerce casos de uso de sincronización con la tienda online: push de
// clientes de salón y creación de pedidos borrador por parte de los representantes.
package commerce

import (
	"context"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
)

// StorefrontGateway puerto de salida hacia la tienda online.
type StorefrontGateway interface {
	// PushCustomer crea el cliente en la tienda y devuelve la entidad con el
	// identificador remoto. Un email ya registrado devuelve domain.ErrConflict.
	PushCustomer(ctx context.Context, customer entity.Customer) (entity.Customer, error)
	// CreateDraftOrder crea un pedido borrador y devuelve la entidad con id,
	// nombre legible e invoice URL asignados por la tienda.
	CreateDraftOrder(ctx context.Context, draft entity.DraftOrder) (entity.DraftOrder, error)
}
