package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
)

// AttemptStatus estados del intento de colocación de una orden de compra.
// La máquina es: NOT_STARTED → HEADER_CREATED → (línea a línea) → COMPLETE,
// con salidas PARTIALLY_FAILED (fallo limpio en una línea) y AMBIGUOUS
// (resultado de un append desconocido por timeout en vuelo).
type AttemptStatus string

const (
	StatusNotStarted      AttemptStatus = "NOT_STARTED"
	StatusHeaderCreated   AttemptStatus = "HEADER_CREATED"
	StatusComplete        AttemptStatus = "COMPLETE"
	StatusPartiallyFailed AttemptStatus = "PARTIALLY_FAILED"
	StatusAmbiguous       AttemptStatus = "AMBIGUOUS"
)

// OrderLine línea de una orden de compra hacia la plataforma externa.
// Qty == 0 es válido y significa "omitir esta línea", nunca un error.
type OrderLine struct {
	StockItemID string          `json:"stock_item_id"`
	SKU         string          `json:"sku,omitempty"`
	Qty         int             `json:"qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderDraft borrador de orden de compra. Se envía una sola vez; la
// plataforma asigna el identificador de compra al crear la cabecera.
type PurchaseOrderDraft struct {
	SupplierID   string
	LocationID   string
	Currency     string
	DeliveryDate time.Time
	Lines        []OrderLine
}

// Normalize descarta las líneas con Qty == 0 (omitir) preservando el orden del
// resto. Trabaja sobre una copia: el slice del llamador queda intacto.
func (d *PurchaseOrderDraft) Normalize() {
	kept := make([]OrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		if l.Qty != 0 {
			kept = append(kept, l)
		}
	}
	d.Lines = kept
}

// Validate verifica el invariante del motor: cantidades y costos nunca negativos,
// y los campos de cabecera presentes.
func (d PurchaseOrderDraft) Validate() error {
	if d.SupplierID == "" || d.LocationID == "" {
		return fmt.Errorf("%w: supplier y location son obligatorios", domain.ErrInvalidInput)
	}
	for i, l := range d.Lines {
		if l.Qty < 0 || l.UnitCost.IsNegative() {
			return fmt.Errorf("%w: cantidad o costo negativo en línea %d", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// OrderAttempt máquina de estados persistida de una colocación de orden, con cursor
// retomable (PurchaseID + NextLine). Un reintento siempre es "append de las líneas
// restantes", nunca "rehacer todo".
type OrderAttempt struct {
	ID           string
	SupplierID   string
	LocationID   string
	Currency     string
	DeliveryDate time.Time
	Lines        []OrderLine

	PurchaseID string        // id opaco asignado por la plataforma al crear la cabecera
	NextLine   int           // índice de la primera línea aún no confirmada
	Status     AttemptStatus
	LastError  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingLines líneas aún no confirmadas en la plataforma.
func (a *OrderAttempt) RemainingLines() []OrderLine {
	if a.NextLine >= len(a.Lines) {
		return nil
	}
	return a.Lines[a.NextLine:]
}

// TotalValue valor total del borrador (sum qty × costo unitario).
func (a *OrderAttempt) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}
