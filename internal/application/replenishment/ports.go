package replenishment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
)

// StockGateway puerto de salida hacia la plataforma externa para lecturas de
// inventario. La implementación concreta autentica con la sesión cacheada; para
// tests se inyecta un mock.
type StockGateway interface {
	// ResolveIDsBySKU resultados parciales permitidos: SKU sin match ausente del mapa.
	ResolveIDsBySKU(ctx context.Context, skus []string) (map[string]string, error)
	// GetStockPositions snapshot actual por ítem; includeSupplier trae la metadata
	// de proveedor en la misma vuelta.
	GetStockPositions(ctx context.Context, ids []string, includeSupplier bool) (map[string]entity.StockPosition, error)
}

// OrderPDFGenerator genera la versión imprimible de una orden de compra.
type OrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, attempt *entity.OrderAttempt) ([]byte, error)
}

// PurchaseGateway puerto de salida para las mutaciones de órdenes de compra.
// Ninguna operación de este puerto se reintenta automáticamente.
type PurchaseGateway interface {
	CreatePurchaseOrderHeader(ctx context.Context, supplierID, locationID, currency string, deliveryDate time.Time) (string, error)
	AppendPurchaseOrderLine(ctx context.Context, purchaseID, itemID string, qty int, unitCost decimal.Decimal) error
	// GetPurchaseOrderLineCount líneas realmente presentes en la plataforma;
	// base de la reconciliación tras un resultado ambiguo.
	GetPurchaseOrderLineCount(ctx context.Context, purchaseID string) (int, error)
}
