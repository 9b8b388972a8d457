package entity

// SupplierRef referencia al proveedor por defecto de un ítem en la plataforma externa.
type SupplierRef struct {
	ID   string
	Name string
}

// StockPosition posición de stock de un ítem en la plataforma externa en el momento
// de la consulta. Es un snapshot de solo lectura: nunca se cachea más allá de un
// cálculo de forecast, porque debe reflejar el estado externo actual.
type StockPosition struct {
	StockItemID string
	SKU         string
	OnHand      int          // unidades físicas disponibles
	InOrderBook int          // demanda de clientes abierta aún no despachada
	Due         int          // unidades entrantes en órdenes de compra existentes
	Supplier    *SupplierRef // solo si la lectura pidió metadata de proveedor
}

// NetPosition posición neta de inventario: disponible menos demanda abierta más entrante.
func (p StockPosition) NetPosition() int {
	return p.OnHand - p.InOrderBook + p.Due
}
