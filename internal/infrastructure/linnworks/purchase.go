package linnworks

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
)

const (
	pathCreatePurchaseOrder = "/api/PurchaseOrder/Create_PurchaseOrder_Initial"
	pathAddPurchaseItem     = "/api/PurchaseOrder/Add_PurchaseOrderItem"
	pathGetPurchaseOrder    = "/api/PurchaseOrder/Get_PurchaseOrder"
)

// CreatePurchaseOrderHeader crea la cabecera de la orden de compra y devuelve el
// identificador opaco asignado por la plataforma. Sin reintento automático: la
// operación remota no garantiza idempotencia y un reintento ciego arriesga
// cabeceras duplicadas.
func (c *Client) CreatePurchaseOrderHeader(ctx context.Context, supplierID, locationID, currency string, deliveryDate time.Time) (string, error) {
	req := createPurchaseOrderRequest{
		SupplierID:           supplierID,
		LocationID:           locationID,
		Currency:             currency,
		ExpectedDeliveryDate: deliveryDate.Format("2006-01-02"),
	}

	var resp createPurchaseOrderResponse
	if err := c.postJSON(ctx, pathCreatePurchaseOrder, req, &resp); err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			return "", &domain.HeaderCreateError{Status: upstream.Status, Body: upstream.Body}
		}
		return "", &domain.HeaderCreateError{Status: 0, Body: err.Error()}
	}
	if resp.PurchaseID == "" {
		return "", &domain.HeaderCreateError{Status: 0, Body: "respuesta sin PurchaseId"}
	}
	return resp.PurchaseID, nil
}

// AppendPurchaseOrderLine añade una línea a una orden existente. El error se
// devuelve sin clasificar por índice: el orquestador, que conoce el cursor,
// decide entre fallo limpio y resultado ambiguo (IsInFlightTimeout).
func (c *Client) AppendPurchaseOrderLine(ctx context.Context, purchaseID string, itemID string, qty int, unitCost decimal.Decimal) error {
	req := addPurchaseOrderItemRequest{
		PurchaseID:  purchaseID,
		StockItemID: itemID,
		Qty:         qty,
		Cost:        unitCost.String(),
	}
	return c.postJSON(ctx, pathAddPurchaseItem, req, nil)
}

// GetPurchaseOrderLineCount consulta cuántas líneas tiene realmente la orden en la
// plataforma. Es la base de la reconciliación tras un resultado ambiguo: antes de
// retomar hay que saber si el append en duda llegó o no.
func (c *Client) GetPurchaseOrderLineCount(ctx context.Context, purchaseID string) (int, error) {
	var resp getPurchaseOrderResponse
	if err := c.postJSON(ctx, pathGetPurchaseOrder, getPurchaseOrderRequest{PurchaseID: purchaseID}, &resp); err != nil {
		return 0, err
	}
	return resp.LineCount, nil
}
