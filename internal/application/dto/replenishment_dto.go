package dto

import "github.com/shopspring/decimal"

// ForecastRequest insumos del cálculo puro de reposición para un solo ítem.
// La posición de stock (on_hand, in_order_book, due) la aporta el llamador;
// para el flujo con lectura de plataforma ver SuggestionsRequest.
type ForecastRequest struct {
	AvgDaily      float64 `json:"avg_daily"`
	DailyStdDev   float64 `json:"daily_std_dev"`
	LeadTimeDays  float64 `json:"lead_time_days"`
	ReviewDays    float64 `json:"review_days"`
	BufferDays    float64 `json:"buffer_days"`
	ServiceLevelZ float64 `json:"service_level_z"`
	HorizonDays   float64 `json:"horizon_days"`
	OnHand        int     `json:"on_hand"`
	InOrderBook   int     `json:"in_order_book"`
	Due           int     `json:"due"`
	PackSize      int     `json:"pack_size"`
	MOQ           int     `json:"moq"`
}

// ForecastResponse resultado del cálculo con las cifras intermedias.
type ForecastResponse struct {
	Qty    int     `json:"qty"`
	ROP    float64 `json:"rop"`
	Safety float64 `json:"safety"`
	Target float64 `json:"target"`
	NetPos float64 `json:"net_pos"`
}

// SuggestionItemRequest parámetros de demanda de un ítem dentro del batch de
// sugerencias. Se identifica por SKU o por id interno de la plataforma.
type SuggestionItemRequest struct {
	SKU         string `json:"sku,omitempty"`
	StockItemID string `json:"stock_item_id,omitempty"`

	AvgDaily      float64 `json:"avg_daily"`
	DailyStdDev   float64 `json:"daily_std_dev"`
	LeadTimeDays  float64 `json:"lead_time_days"`
	ReviewDays    float64 `json:"review_days"`
	BufferDays    float64 `json:"buffer_days"`
	ServiceLevelZ float64 `json:"service_level_z"`
	HorizonDays   float64 `json:"horizon_days"`
	PackSize      int     `json:"pack_size"`
	MOQ           int     `json:"moq"`

	UnitCost decimal.Decimal `json:"unit_cost"`
}

// SuggestionsRequest batch de sugerencias de reposición con lectura de posición
// de stock en vivo. include_supplier pide la metadata de proveedor en la misma
// lectura (necesaria si la sugerencia va a convertirse en orden de compra).
type SuggestionsRequest struct {
	IncludeSupplier bool                    `json:"include_supplier"`
	Items           []SuggestionItemRequest `json:"items"`
}

// SuggestionDTO sugerencia de reposición de un ítem.
type SuggestionDTO struct {
	StockItemID string `json:"stock_item_id"`
	SKU         string `json:"sku,omitempty"`

	Qty    int     `json:"qty"`
	ROP    float64 `json:"rop"`
	Safety float64 `json:"safety"`
	Target float64 `json:"target"`
	NetPos float64 `json:"net_pos"`

	OnHand      int `json:"on_hand"`
	InOrderBook int `json:"in_order_book"`
	Due         int `json:"due"`

	SupplierID   string `json:"supplier_id,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`

	UnitCost      decimal.Decimal `json:"unit_cost"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// SuggestionsResponse resultado del batch. Los SKUs sin correspondencia en la
// plataforma se reportan en dropped_skus, nunca como error.
type SuggestionsResponse struct {
	Total       int             `json:"total"`
	DroppedSKUs []string        `json:"dropped_skus,omitempty"`
	Suggestions []SuggestionDTO `json:"suggestions"`
}
