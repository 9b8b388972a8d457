package linnworks

import (
	"context"
	"errors"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
)

const (
	pathStockItemIDsBySKU = "/api/Inventory/GetStockItemIdsBySKU"
	pathStockLevelBatch   = "/api/Stock/GetStockLevel_Batch"
)

// ResolveIDsBySKU traduce SKUs a identificadores internos de la plataforma.
// Resultados parciales permitidos: un SKU sin correspondencia simplemente no
// aparece en el mapa, no es un error.
func (c *Client) ResolveIDsBySKU(ctx context.Context, skus []string) (map[string]string, error) {
	if len(skus) == 0 {
		return map[string]string{}, nil
	}

	var resp stockItemIDsResponse
	err := c.readWithRetry(ctx, pathStockItemIDsBySKU, stockItemIDsRequest{SKUS: skus}, &resp)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(resp.Items))
	for _, it := range resp.Items {
		ids[it.SKU] = it.StockItemID
	}
	return ids, nil
}

// GetStockPositions lee la posición de stock actual de un lote de ítems.
// includeSupplier pide la metadata de proveedor en la misma vuelta (toggle en la
// lectura, nunca una segunda llamada). El batch completo falla o completo llega:
// no hay recuperación parcial en esta capa.
func (c *Client) GetStockPositions(ctx context.Context, ids []string, includeSupplier bool) (map[string]entity.StockPosition, error) {
	if len(ids) == 0 {
		return map[string]entity.StockPosition{}, nil
	}

	req := stockLevelBatchRequest{StockItemIDs: ids, IncludeSupplier: includeSupplier}
	var resp stockLevelBatchResponse
	if err := c.readWithRetry(ctx, pathStockLevelBatch, req, &resp); err != nil {
		return nil, err
	}

	positions := make(map[string]entity.StockPosition, len(resp.Items))
	for _, it := range resp.Items {
		pos := entity.StockPosition{
			StockItemID: it.StockItemID,
			SKU:         it.SKU,
			OnHand:      it.StockLevel,
			InOrderBook: it.InOrderBook,
			Due:         it.Due,
		}
		if it.Supplier != nil {
			pos.Supplier = &entity.SupplierRef{ID: it.Supplier.SupplierID, Name: it.Supplier.Name}
		}
		positions[it.StockItemID] = pos
	}
	return positions, nil
}

// readWithRetry lecturas idempotentes: un único reintento automático ante una
// respuesta no exitosa de la plataforma. Las mutaciones de órdenes jamás pasan
// por aquí.
func (c *Client) readWithRetry(ctx context.Context, path string, payload, out any) error {
	err := c.postJSON(ctx, path, payload, out)
	if err == nil {
		return nil
	}
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		return err
	}
	return c.postJSON(ctx, path, payload, out)
}
