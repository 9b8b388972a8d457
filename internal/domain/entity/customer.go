package entity

import "github.com/shopspring/decimal"

// Customer cliente de salón a sincronizar con la tienda online. ShopifyID es el
// identificador remoto; cero significa que aún no se ha hecho push.
type Customer struct {
	ShopifyID int64
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Tags      []string
	Note      string
}

// DraftOrderLine línea de un pedido borrador en la tienda. Con VariantID la línea
// referencia un producto del catálogo; sin él es una línea personalizada (Title +
// Price obligatorios).
type DraftOrderLine struct {
	VariantID int64
	Title     string
	SKU       string
	Qty       int
	Price     decimal.Decimal
}

// DraftOrder pedido borrador creado por un representante para que el cliente lo
// confirme y pague desde el invoice de la tienda.
type DraftOrder struct {
	ShopifyID         int64
	Name              string // identificador legible asignado por la tienda, ej. "#D123"
	CustomerShopifyID int64
	Email             string
	Lines             []DraftOrderLine
	Note              string
	Tags              []string
	InvoiceURL        string
	TotalPrice        decimal.Decimal
	Status            string
}
