package dto

import "github.com/shopspring/decimal"

// OrderLineRequest línea de orden de compra. qty == 0 es válido y significa
// "omitir esta línea".
type OrderLineRequest struct {
	StockItemID string          `json:"stock_item_id"`
	SKU         string          `json:"sku,omitempty"`
	Qty         int             `json:"qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// PlaceOrderRequest colocación de una orden de compra en la plataforma externa.
type PlaceOrderRequest struct {
	SupplierID   string             `json:"supplier_id"`
	LocationID   string             `json:"location_id"`
	Currency     string             `json:"currency"`
	DeliveryDate string             `json:"delivery_date"` // yyyy-MM-dd
	Lines        []OrderLineRequest `json:"lines"`
}

// OrderFailureDTO detalle del fallo de una colocación. kind distingue el fallo de
// cabecera (sin efecto remoto), el fallo limpio de una línea (retomable) y el
// resultado ambiguo (requiere reconciliación).
type OrderFailureDTO struct {
	Kind   string `json:"kind"` // HEADER_CREATION_FAILED | LINE_APPEND_FAILED | AMBIGUOUS_OUTCOME
	Index  int    `json:"index,omitempty"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
}

// OrderResultDTO resultado de una colocación, completa o parcial. Un fallo durante
// la colocación devuelve este mismo cuerpo con failure poblado, nunca un error
// pelado: el operador necesita poder actuar sobre una orden a medio crear.
type OrderResultDTO struct {
	AttemptID     string           `json:"attempt_id"`
	PurchaseID    string           `json:"purchase_id,omitempty"`
	LinesAppended int              `json:"lines_appended"`
	Total         int              `json:"total"`
	Status        string           `json:"status"`
	Failure       *OrderFailureDTO `json:"failure,omitempty"`
}

// OrderAttemptDTO estado persistido de un intento, con el cursor retomable.
type OrderAttemptDTO struct {
	ID           string             `json:"id"`
	SupplierID   string             `json:"supplier_id"`
	LocationID   string             `json:"location_id"`
	Currency     string             `json:"currency"`
	DeliveryDate string             `json:"delivery_date"`
	PurchaseID   string             `json:"purchase_id,omitempty"`
	NextLine     int                `json:"next_line"`
	Status       string             `json:"status"`
	LastError    string             `json:"last_error,omitempty"`
	Lines        []OrderLineRequest `json:"lines"`
	TotalValue   decimal.Decimal    `json:"total_value"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}
