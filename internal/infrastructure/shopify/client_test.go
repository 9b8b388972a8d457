package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/config"
)

// newFakeStore levanta una tienda falsa con TLS (el cliente siempre habla https
// con el Admin API) y devuelve un Client apuntando a ella.
func newFakeStore(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.ShopifyConfig{
		ShopDomain:  strings.TrimPrefix(srv.URL, "https://"),
		AccessToken: "shp-tok",
		APIVersion:  "2024-01",
	})
	client.httpClient = srv.Client()
	return client
}

func TestPushCustomer_CreaYDevuelveIDRemoto(t *testing.T) {
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/api/2024-01/customers.json", r.URL.Path)
		require.Equal(t, "shp-tok", r.Header.Get("X-Shopify-Access-Token"))

		var req customerEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@salon.example", req.Customer.Email)
		assert.Equal(t, "vip, mayorista", req.Customer.Tags, "los tags viajan como string separado por comas")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(customerEnvelope{Customer: customerWire{
			ID:    7001,
			Email: "ana@salon.example",
			Tags:  "vip, mayorista",
		}})
	})

	out, err := client.PushCustomer(context.Background(), entity.Customer{
		Email:     "ana@salon.example",
		FirstName: "Ana",
		Tags:      []string{"vip", "mayorista"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7001), out.ShopifyID)
	assert.Equal(t, []string{"vip", "mayorista"}, out.Tags, "los tags vuelven como slice")
}

// Un email ya registrado responde 422 con "has already been taken": se traduce a
// conflicto de dominio, no a error de plataforma.
func TestPushCustomer_EmailDuplicadoEsConflicto(t *testing.T) {
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"email":["has already been taken"]}}`))
	})

	_, err := client.PushCustomer(context.Background(), entity.Customer{Email: "ana@salon.example"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPushCustomer_TokenRechazado(t *testing.T) {
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.PushCustomer(context.Background(), entity.Customer{Email: "ana@salon.example"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateDraftOrder_LineasYTotales(t *testing.T) {
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/api/2024-01/draft_orders.json", r.URL.Path)

		var req draftOrderEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.DraftOrder.LineItems, 2)
		assert.Equal(t, int64(9001), req.DraftOrder.LineItems[0].VariantID)
		assert.Empty(t, req.DraftOrder.LineItems[0].Price, "línea de catálogo: el precio lo pone la tienda")
		assert.Equal(t, "12.50", req.DraftOrder.LineItems[1].Price, "línea personalizada: precio como string decimal")
		require.NotNil(t, req.DraftOrder.Customer)
		assert.Equal(t, int64(7001), req.DraftOrder.Customer.ID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(draftOrderEnvelope{DraftOrder: draftOrderWire{
			ID:         5500,
			Name:       "#D123",
			Status:     "open",
			InvoiceURL: "https://tienda.example/invoices/abc",
			TotalPrice: "37.30",
		}})
	})

	out, err := client.CreateDraftOrder(context.Background(), entity.DraftOrder{
		CustomerShopifyID: 7001,
		Lines: []entity.DraftOrderLine{
			{VariantID: 9001, Qty: 2},
			{Title: "Tratamiento a medida", Qty: 1, Price: decimal.NewFromFloat(12.50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5500), out.ShopifyID)
	assert.Equal(t, "#D123", out.Name)
	assert.Equal(t, "https://tienda.example/invoices/abc", out.InvoiceURL)
	assert.True(t, decimal.NewFromFloat(37.30).Equal(out.TotalPrice), "el total lo calcula la tienda")
}

func TestCreateDraftOrder_ErrorDePlataforma(t *testing.T) {
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("algo salió mal"))
	})

	_, err := client.CreateDraftOrder(context.Background(), entity.DraftOrder{
		Lines: []entity.DraftOrderLine{{VariantID: 9001, Qty: 1}},
	})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, splitTags(""))
	assert.Equal(t, []string{"vip"}, splitTags("vip"))
	assert.Equal(t, []string{"vip", "mayorista"}, splitTags("vip, mayorista"))
	assert.Equal(t, []string{"a", "b"}, splitTags(" a ,, b "))
}
