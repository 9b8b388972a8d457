// Package shopify adaptador Admin API hacia la tienda online: push de clientes y
// creación de pedidos borrador.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/commerce"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa StorefrontGateway.
var _ commerce.StorefrontGateway = (*Client)(nil)

// Client cliente REST del Admin API de la tienda. El token va en el header
// X-Shopify-Access-Token en cada llamada; no hay intercambio de sesión.
type Client struct {
	cfg        config.ShopifyConfig
	httpClient *http.Client
}

// NewClient construye el adaptador.
func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ── Estructuras de cable del Admin API ────────────────────────────────────────
// Los tags viajan como string separado por comas; los precios como string decimal.

type customerWire struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Tags      string `json:"tags,omitempty"`
	Note      string `json:"note,omitempty"`
}

type customerEnvelope struct {
	Customer customerWire `json:"customer"`
}

type lineItemWire struct {
	VariantID int64  `json:"variant_id,omitempty"`
	Title     string `json:"title,omitempty"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price,omitempty"`
}

type draftOrderWire struct {
	ID         int64          `json:"id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Status     string         `json:"status,omitempty"`
	Email      string         `json:"email,omitempty"`
	Note       string         `json:"note,omitempty"`
	Tags       string         `json:"tags,omitempty"`
	InvoiceURL string         `json:"invoice_url,omitempty"`
	TotalPrice string         `json:"total_price,omitempty"`
	LineItems  []lineItemWire `json:"line_items"`
	Customer   *struct {
		ID int64 `json:"id"`
	} `json:"customer,omitempty"`
}

type draftOrderEnvelope struct {
	DraftOrder draftOrderWire `json:"draft_order"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// PushCustomer crea el cliente en la tienda. Un email ya registrado (HTTP 422 con
// "has already been taken") se traduce a domain.ErrConflict.
func (c *Client) PushCustomer(ctx context.Context, customer entity.Customer) (entity.Customer, error) {
	payload := customerEnvelope{Customer: customerWire{
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Phone:     customer.Phone,
		Tags:      strings.Join(customer.Tags, ", "),
		Note:      customer.Note,
	}}

	var out customerEnvelope
	if err := c.post(ctx, "/customers.json", payload, &out); err != nil {
		return entity.Customer{}, err
	}

	customer.ShopifyID = out.Customer.ID
	customer.Tags = splitTags(out.Customer.Tags)
	return customer, nil
}

// CreateDraftOrder crea el pedido borrador y devuelve id, nombre legible, invoice
// URL y total calculados por la tienda.
func (c *Client) CreateDraftOrder(ctx context.Context, draft entity.DraftOrder) (entity.DraftOrder, error) {
	wire := draftOrderWire{
		Email:     draft.Email,
		Note:      draft.Note,
		Tags:      strings.Join(draft.Tags, ", "),
		LineItems: make([]lineItemWire, 0, len(draft.Lines)),
	}
	for _, l := range draft.Lines {
		item := lineItemWire{
			VariantID: l.VariantID,
			Title:     l.Title,
			SKU:       l.SKU,
			Quantity:  l.Qty,
		}
		if !l.Price.IsZero() {
			item.Price = l.Price.String()
		}
		wire.LineItems = append(wire.LineItems, item)
	}
	if draft.CustomerShopifyID != 0 {
		wire.Customer = &struct {
			ID int64 `json:"id"`
		}{ID: draft.CustomerShopifyID}
	}

	var out draftOrderEnvelope
	if err := c.post(ctx, "/draft_orders.json", draftOrderEnvelope{DraftOrder: wire}, &out); err != nil {
		return entity.DraftOrder{}, err
	}

	draft.ShopifyID = out.DraftOrder.ID
	draft.Name = out.DraftOrder.Name
	draft.Status = out.DraftOrder.Status
	draft.InvoiceURL = out.DraftOrder.InvoiceURL
	if out.DraftOrder.TotalPrice != "" {
		if total, err := decimal.NewFromString(out.DraftOrder.TotalPrice); err == nil {
			draft.TotalPrice = total
		}
	}
	return draft, nil
}

// post ejecuta POST {shop}/admin/api/{version}{path} con el token de acceso.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	if c.cfg.ShopDomain == "" || c.cfg.AccessToken == "" {
		return fmt.Errorf("tienda: SHOPIFY_SHOP_DOMAIN o SHOPIFY_ACCESS_TOKEN no configurado")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tienda: serializar request: %w", err)
	}

	url := fmt.Sprintf("https://%s/admin/api/%s%s", c.cfg.ShopDomain, c.cfg.APIVersion, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("tienda: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("tienda: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("tienda: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("tienda: leer respuesta: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity && strings.Contains(string(raw), "has already been taken"):
		return fmt.Errorf("%w: el recurso ya existe en la tienda: %s", domain.ErrConflict, string(raw))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: token de tienda rechazado (HTTP %d)", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &domain.UpstreamError{Op: path, Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("tienda: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

// splitTags convierte el formato "a, b, c" de la tienda en slice.
func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
