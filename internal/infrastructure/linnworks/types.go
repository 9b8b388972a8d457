package linnworks

// Estructuras de cable del API de la plataforma de inventario/órdenes.
// Las claves PascalCase siguen la convención del API remoto.

// ── Autenticación ─────────────────────────────────────────────────────────────

type authRequest struct {
	ApplicationID     string `json:"ApplicationId"`
	ApplicationSecret string `json:"ApplicationSecret"`
	Token             string `json:"Token"` // token de instalación por cuenta
}

type authResponse struct {
	Token  string `json:"Token"`  // bearer de sesión de corta vida
	Server string `json:"Server"` // host que sirve a esta cuenta (puede venir sin esquema)
}

// ── Resolución de SKUs ────────────────────────────────────────────────────────

type stockItemIDsRequest struct {
	SKUS []string `json:"SKUS"`
}

type stockItemIDsResponse struct {
	Items []struct {
		SKU         string `json:"SKU"`
		StockItemID string `json:"StockItemId"`
	} `json:"Items"`
}

// ── Niveles de stock ──────────────────────────────────────────────────────────

type stockLevelBatchRequest struct {
	StockItemIDs    []string `json:"StockItemIds"`
	IncludeSupplier bool     `json:"IncludeSupplier"`
}

type stockLevelBatchResponse struct {
	Items []stockLevelItem `json:"Items"`
}

type stockLevelItem struct {
	StockItemID string `json:"StockItemId"`
	SKU         string `json:"SKU"`
	StockLevel  int    `json:"StockLevel"`
	InOrderBook int    `json:"InOrderBook"`
	Due         int    `json:"Due"`
	Supplier    *struct {
		SupplierID string `json:"SupplierId"`
		Name       string `json:"SupplierName"`
	} `json:"Supplier,omitempty"`
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

type createPurchaseOrderRequest struct {
	SupplierID           string `json:"SupplierId"`
	LocationID           string `json:"LocationId"`
	Currency             string `json:"Currency"`
	ExpectedDeliveryDate string `json:"ExpectedDeliveryDate"` // yyyy-MM-dd
}

type createPurchaseOrderResponse struct {
	PurchaseID string `json:"PurchaseId"` // id opaco asignado por la plataforma
}

type addPurchaseOrderItemRequest struct {
	PurchaseID  string `json:"PurchaseId"`
	StockItemID string `json:"StockItemId"`
	Qty         int    `json:"Qty"`
	Cost        string `json:"Cost"` // decimal serializado como string, sin pérdida binaria
}

type getPurchaseOrderRequest struct {
	PurchaseID string `json:"PurchaseId"`
}

type getPurchaseOrderResponse struct {
	PurchaseID string `json:"PurchaseId"`
	LineCount  int    `json:"LineCount"`
	Status     string `json:"Status"`
}
