package linnworks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
)

// newFakePlatform levanta un servidor que atiende tanto el intercambio de
// autenticación como el resto de rutas del API con el handler dado. El Server
// que devuelve la autenticación apunta al propio servidor de prueba.
func newFakePlatform(t *testing.T, api http.HandlerFunc) *Client {
	t.Helper()

	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authResponse{Token: "tok", Server: srvURL})
	})
	mux.HandleFunc("/", api)

	srv := httptest.NewServer(mux)
	srvURL = srv.URL
	t.Cleanup(srv.Close)

	return NewClient(NewSessionCache(testAuthConfig(srv.URL)))
}

func TestResolveIDsBySKU_ResultadoParcial(t *testing.T) {
	client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathStockItemIDsBySKU, r.URL.Path)
		require.Equal(t, "tok", r.Header.Get("Authorization"))

		var req stockItemIDsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"WELLA-500", "OSMO-250", "NO-EXISTE"}, req.SKUS)

		w.Write([]byte(`{"Items":[
			{"SKU":"WELLA-500","StockItemId":"id-a"},
			{"SKU":"OSMO-250","StockItemId":"id-b"}
		]}`))
	})

	ids, err := client.ResolveIDsBySKU(context.Background(), []string{"WELLA-500", "OSMO-250", "NO-EXISTE"})
	require.NoError(t, err)

	assert.Len(t, ids, 2, "un SKU sin correspondencia no aparece, no es un error")
	assert.Equal(t, "id-a", ids["WELLA-500"])
	assert.Equal(t, "id-b", ids["OSMO-250"])
}

func TestResolveIDsBySKU_BatchVacioSinLlamada(t *testing.T) {
	client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("un batch vacío no debe tocar la plataforma")
	})

	ids, err := client.ResolveIDsBySKU(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetStockPositions_ConProveedor(t *testing.T) {
	client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathStockLevelBatch, r.URL.Path)

		var req stockLevelBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.IncludeSupplier, "el toggle de proveedor viaja en la misma lectura")

		w.Write([]byte(`{"Items":[
			{"StockItemId":"id-a","SKU":"WELLA-500","StockLevel":50,"InOrderBook":10,"Due":0,
			 "Supplier":{"SupplierId":"SUP-001","SupplierName":"Wella Direct"}},
			{"StockItemId":"id-b","SKU":"OSMO-250","StockLevel":8,"InOrderBook":0,"Due":24}
		]}`))
	})

	positions, err := client.GetStockPositions(context.Background(), []string{"id-a", "id-b"}, true)
	require.NoError(t, err)
	require.Len(t, positions, 2)

	a := positions["id-a"]
	assert.Equal(t, 50, a.OnHand)
	assert.Equal(t, 10, a.InOrderBook)
	require.NotNil(t, a.Supplier)
	assert.Equal(t, "SUP-001", a.Supplier.ID)
	assert.Equal(t, "Wella Direct", a.Supplier.Name)
	assert.Equal(t, 40, a.NetPosition())

	b := positions["id-b"]
	assert.Nil(t, b.Supplier)
	assert.Equal(t, 32, b.NetPosition(), "on_hand - in_order_book + due")
}

// Las lecturas idempotentes se reintentan exactamente una vez ante una respuesta
// no exitosa; al segundo fallo el error sube tal cual.
func TestLecturas_ReintentoUnico(t *testing.T) {
	t.Run("transitorio se recupera", func(t *testing.T) {
		var calls atomic.Int32
		client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"Items":[{"StockItemId":"id-a","SKU":"A","StockLevel":5}]}`))
		})

		positions, err := client.GetStockPositions(context.Background(), []string{"id-a"}, false)
		require.NoError(t, err)
		assert.Len(t, positions, 1)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("fallo persistente sube tras dos intentos", func(t *testing.T) {
		var calls atomic.Int32
		client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("mantenimiento"))
		})

		_, err := client.GetStockPositions(context.Background(), []string{"id-a"}, false)
		require.Error(t, err)

		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
		assert.Equal(t, pathStockLevelBatch, upstream.Op)
		assert.Equal(t, int32(2), calls.Load(), "exactamente un reintento, nunca en bucle")
	})
}

// Un 401 con token que la caché creía fresco fuerza un refresh y un único
// reintento de esa llamada con el token nuevo.
func TestSesionVencida_RefreshYReintento(t *testing.T) {
	var authCalls atomic.Int32

	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, func(w http.ResponseWriter, r *http.Request) {
		token := "tok-1"
		if authCalls.Add(1) > 1 {
			token = "tok-2"
		}
		json.NewEncoder(w).Encode(authResponse{Token: token, Server: srvURL})
	})
	mux.HandleFunc(pathStockItemIDsBySKU, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"Items":[{"SKU":"A","StockItemId":"id-a"}]}`))
	})

	srv := httptest.NewServer(mux)
	srvURL = srv.URL
	defer srv.Close()

	client := NewClient(NewSessionCache(testAuthConfig(srv.URL)))

	ids, err := client.ResolveIDsBySKU(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, "id-a", ids["A"])
	assert.Equal(t, int32(2), authCalls.Load(), "refresh exactamente una vez tras el 401")
}

func TestCreatePurchaseOrderHeader(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, pathCreatePurchaseOrder, r.URL.Path)

			var req createPurchaseOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "SUP-001", req.SupplierID)
			assert.Equal(t, "2025-07-01", req.ExpectedDeliveryDate)

			w.Write([]byte(`{"PurchaseId":"PO-7781"}`))
		})

		id, err := client.CreatePurchaseOrderHeader(context.Background(),
			"SUP-001", "LOC-MAIN", "GBP", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "PO-7781", id)
	})

	t.Run("rechazo de la plataforma", func(t *testing.T) {
		client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("supplier desconocido"))
		})

		_, err := client.CreatePurchaseOrderHeader(context.Background(),
			"SUP-XXX", "LOC-MAIN", "GBP", time.Now())

		var headerErr *domain.HeaderCreateError
		require.ErrorAs(t, err, &headerErr)
		assert.Equal(t, http.StatusBadRequest, headerErr.Status)
		assert.Contains(t, headerErr.Body, "supplier desconocido")
	})

	t.Run("respuesta sin PurchaseId", func(t *testing.T) {
		client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		_, err := client.CreatePurchaseOrderHeader(context.Background(),
			"SUP-001", "LOC-MAIN", "GBP", time.Now())

		var headerErr *domain.HeaderCreateError
		require.ErrorAs(t, err, &headerErr)
	})
}

func TestAppendPurchaseOrderLine_CostoComoString(t *testing.T) {
	client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathAddPurchaseItem, r.URL.Path)

		var req addPurchaseOrderItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PO-7781", req.PurchaseID)
		assert.Equal(t, 24, req.Qty)
		assert.Equal(t, "4.1", req.Cost, "el costo viaja como decimal serializado, sin float binario")

		w.Write([]byte(`{}`))
	})

	err := client.AppendPurchaseOrderLine(context.Background(),
		"PO-7781", "id-a", 24, decimal.NewFromFloat(4.10))
	require.NoError(t, err)
}

func TestGetPurchaseOrderLineCount(t *testing.T) {
	client := newFakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathGetPurchaseOrder, r.URL.Path)
		w.Write([]byte(`{"PurchaseId":"PO-7781","LineCount":2,"Status":"OPEN"}`))
	})

	count, err := client.GetPurchaseOrderLineCount(context.Background(), "PO-7781")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
