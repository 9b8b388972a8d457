package dto

import "github.com/shopspring/decimal"

// PushCustomerRequest alta o sincronización de un cliente de salón en la tienda online.
type PushCustomerRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Phone     string   `json:"phone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// CustomerResponse cliente sincronizado, con el identificador remoto asignado.
type CustomerResponse struct {
	ShopifyID int64    `json:"shopify_id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Phone     string   `json:"phone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// DraftOrderLineRequest línea de pedido borrador. variant_id referencia el catálogo
// de la tienda; sin él la línea es personalizada y requiere title y price.
type DraftOrderLineRequest struct {
	VariantID int64           `json:"variant_id,omitempty"`
	Title     string          `json:"title,omitempty"`
	SKU       string          `json:"sku,omitempty"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price,omitempty"`
}

// CreateDraftOrderRequest pedido borrador para que el cliente confirme y pague
// desde el invoice de la tienda.
type CreateDraftOrderRequest struct {
	CustomerShopifyID int64                   `json:"customer_shopify_id,omitempty"`
	Email             string                  `json:"email,omitempty"`
	Note              string                  `json:"note,omitempty"`
	Tags              []string                `json:"tags,omitempty"`
	Lines             []DraftOrderLineRequest `json:"lines"`
}

// DraftOrderResponse pedido borrador creado en la tienda.
type DraftOrderResponse struct {
	ShopifyID  int64           `json:"shopify_id"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	InvoiceURL string          `json:"invoice_url,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
