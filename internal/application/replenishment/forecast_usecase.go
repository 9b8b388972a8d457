package replenishment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/replenishment"
)

// ForecastUseCase expone el cálculo de reposición: la variante pura (insumos
// completos del llamador) y el batch de sugerencias con lectura de posición de
// stock en vivo contra la plataforma externa.
type ForecastUseCase struct {
	stock StockGateway
	calc  replenishment.Calculator
}

// NewForecastUseCase construye el caso de uso.
func NewForecastUseCase(stock StockGateway, calc replenishment.Calculator) *ForecastUseCase {
	return &ForecastUseCase{stock: stock, calc: calc}
}

// Compute cálculo puro para un ítem: sin llamadas remotas, sin estado.
func (uc *ForecastUseCase) Compute(req dto.ForecastRequest) (dto.ForecastResponse, error) {
	res, err := uc.calc.Compute(replenishment.Inputs{
		AvgDaily:      req.AvgDaily,
		DailyStdDev:   req.DailyStdDev,
		LeadTimeDays:  req.LeadTimeDays,
		ReviewDays:    req.ReviewDays,
		BufferDays:    req.BufferDays,
		ServiceLevelZ: req.ServiceLevelZ,
		HorizonDays:   req.HorizonDays,
		OnHand:        req.OnHand,
		InOrderBook:   req.InOrderBook,
		Due:           req.Due,
		PackSize:      req.PackSize,
		MOQ:           req.MOQ,
	})
	if err != nil {
		return dto.ForecastResponse{}, err
	}
	return dto.ForecastResponse{
		Qty: res.Qty, ROP: res.ROP, Safety: res.Safety,
		Target: res.Target, NetPos: res.NetPos,
	}, nil
}

// Suggestions resuelve SKUs a ids internos, lee las posiciones de stock del lote
// en una sola llamada y calcula la sugerencia por ítem. Un SKU sin match en la
// plataforma se descarta del resultado (dropped_skus), no es un error. El snapshot
// de stock no se cachea: debe reflejar el estado externo al momento del cálculo.
func (uc *ForecastUseCase) Suggestions(ctx context.Context, req dto.SuggestionsRequest) (*dto.SuggestionsResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: el batch de sugerencias no puede estar vacío", domain.ErrInvalidInput)
	}

	// Resolver SKUs → ids internos (solo los ítems que no traen id).
	var skus []string
	for _, it := range req.Items {
		if it.StockItemID == "" && it.SKU != "" {
			skus = append(skus, it.SKU)
		}
	}
	idsBySKU := map[string]string{}
	if len(skus) > 0 {
		resolved, err := uc.stock.ResolveIDsBySKU(ctx, skus)
		if err != nil {
			return nil, err
		}
		idsBySKU = resolved
	}

	// Lote de ids a consultar, descartando SKUs sin correspondencia.
	var (
		ids     []string
		dropped []string
		queued  []dto.SuggestionItemRequest
	)
	for _, it := range req.Items {
		id := it.StockItemID
		if id == "" {
			var ok bool
			if id, ok = idsBySKU[it.SKU]; !ok {
				dropped = append(dropped, it.SKU)
				continue
			}
		}
		it.StockItemID = id
		ids = append(ids, id)
		queued = append(queued, it)
	}

	positions, err := uc.stock.GetStockPositions(ctx, ids, req.IncludeSupplier)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.SuggestionDTO, 0, len(queued))
	for _, it := range queued {
		pos, ok := positions[it.StockItemID]
		if !ok {
			// Id resuelto pero sin posición en la respuesta: mismo trato que un
			// SKU sin match.
			if it.SKU != "" {
				dropped = append(dropped, it.SKU)
			}
			continue
		}

		res, err := uc.calc.Compute(replenishment.Inputs{
			AvgDaily:      it.AvgDaily,
			DailyStdDev:   it.DailyStdDev,
			LeadTimeDays:  it.LeadTimeDays,
			ReviewDays:    it.ReviewDays,
			BufferDays:    it.BufferDays,
			ServiceLevelZ: it.ServiceLevelZ,
			HorizonDays:   it.HorizonDays,
			OnHand:        pos.OnHand,
			InOrderBook:   pos.InOrderBook,
			Due:           pos.Due,
			PackSize:      it.PackSize,
			MOQ:           it.MOQ,
		})
		if err != nil {
			return nil, err
		}

		s := dto.SuggestionDTO{
			StockItemID: it.StockItemID,
			SKU:         pos.SKU,
			Qty:         res.Qty,
			ROP:         res.ROP,
			Safety:      res.Safety,
			Target:      res.Target,
			NetPos:      res.NetPos,
			OnHand:      pos.OnHand,
			InOrderBook: pos.InOrderBook,
			Due:         pos.Due,
			UnitCost:    it.UnitCost,
			EstimatedCost: it.UnitCost.Mul(
				decimal.NewFromInt(int64(res.Qty)),
			),
		}
		if pos.Supplier != nil {
			s.SupplierID = pos.Supplier.ID
			s.SupplierName = pos.Supplier.Name
		}
		suggestions = append(suggestions, s)
	}

	return &dto.SuggestionsResponse{
		Total:       len(suggestions),
		DroppedSKUs: dropped,
		Suggestions: suggestions,
	}, nil
}
