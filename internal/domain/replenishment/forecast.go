// Package replenishment contiene el cálculo puro de reposición: punto de reorden
// bajo incertidumbre, stock de seguridad y cantidad sugerida de pedido.
//
// Fórmula (servicio de dominio, sin efectos secundarios):
//
//	L      = leadTimeDays + bufferDays
//	SS     = z · σ · √(L+R)            si σ > 0
//	       = factor · avg · (L+R)      si σ desconocida (fallback configurable)
//	ROP    = avg · (L+R) + SS
//	target = ROP + avg · horizonDays
//	netPos = onHand − inOrderBook + due
//	qty    = max(0, ⌈target − netPos⌉), redondeado HACIA ARRIBA a múltiplo de
//	         packSize y elevado a MOQ (el MOQ se aplica después del redondeo:
//	         un MOQ que no es múltiplo del pack igual gana).
package replenishment

import (
	"math"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
)

// DefaultFallbackSafetyFactor fracción de la demanda media sobre la ventana de
// cobertura usada como stock de seguridad cuando la variabilidad es desconocida.
// Sobre-estimar con un 30% crudo es preferible a sub-estimar: quedarse corto de
// stock cuesta más que el exceso en SKUs de baja rotación.
const DefaultFallbackSafetyFactor = 0.3

// Inputs insumos del cálculo. Inmutables por invocación; sin estado compartido.
// DailyStdDev == 0 significa "variabilidad desconocida" y activa el fallback.
// PackSize == 0 y MOQ == 0 significan "sin restricción del proveedor".
type Inputs struct {
	AvgDaily      float64
	DailyStdDev   float64
	LeadTimeDays  float64
	ReviewDays    float64
	BufferDays    float64
	ServiceLevelZ float64 // z-score del nivel de servicio deseado, típicamente [0, 3]
	HorizonDays   float64

	OnHand      int
	InOrderBook int
	Due         int

	PackSize int
	MOQ      int
}

// Result resultado del cálculo. Qty == 0 es válido: "no hace falta reponer".
type Result struct {
	Qty    int     `json:"qty"`
	ROP    float64 `json:"rop"`
	Safety float64 `json:"safety"`
	Target float64 `json:"target"`
	NetPos float64 `json:"net_pos"`
}

// Calculator calculadora de forecast. No tiene estado mutable: es segura para
// invocación concurrente sin coordinación.
type Calculator struct {
	// FallbackSafetyFactor constante de política con nombre, ajustable por
	// despliegue vía configuración (FORECAST_FALLBACK_SAFETY_FACTOR).
	FallbackSafetyFactor float64
}

// NewCalculator construye la calculadora; factor <= 0 aplica el default.
func NewCalculator(fallbackFactor float64) Calculator {
	if fallbackFactor <= 0 {
		fallbackFactor = DefaultFallbackSafetyFactor
	}
	return Calculator{FallbackSafetyFactor: fallbackFactor}
}

// Compute calcula la cantidad sugerida de pedido y las cifras intermedias.
// AvgDaily, LeadTimeDays o ReviewDays negativos son violaciones de contrato del
// llamador: fallan con InvalidForecastInputError en lugar de clamp silencioso.
func (c Calculator) Compute(in Inputs) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	lead := in.LeadTimeDays + in.BufferDays
	cover := lead + in.ReviewDays

	var safety float64
	if in.DailyStdDev > 0 {
		safety = in.ServiceLevelZ * in.DailyStdDev * math.Sqrt(cover)
	} else {
		safety = c.FallbackSafetyFactor * in.AvgDaily * cover
	}

	rop := in.AvgDaily*cover + safety
	target := rop + in.AvgDaily*in.HorizonDays
	netPos := float64(in.OnHand - in.InOrderBook + in.Due)

	qty := 0
	if raw := target - netPos; raw > 0 {
		qty = int(math.Ceil(raw))
	}

	// Redondeo a pack siempre hacia arriba: redondear hacia abajo sub-ordena y
	// derrota el propósito del cálculo.
	if in.PackSize > 0 && qty%in.PackSize != 0 {
		qty = (qty/in.PackSize + 1) * in.PackSize
	}
	if in.MOQ > 0 && qty < in.MOQ {
		qty = in.MOQ
	}

	return Result{
		Qty:    qty,
		ROP:    rop,
		Safety: safety,
		Target: target,
		NetPos: netPos,
	}, nil
}

func validate(in Inputs) error {
	switch {
	case in.AvgDaily < 0:
		return &domain.InvalidForecastInputError{Field: "avgDaily", Value: in.AvgDaily}
	case in.LeadTimeDays < 0:
		return &domain.InvalidForecastInputError{Field: "leadTimeDays", Value: in.LeadTimeDays}
	case in.ReviewDays < 0:
		return &domain.InvalidForecastInputError{Field: "reviewDays", Value: in.ReviewDays}
	case in.DailyStdDev < 0:
		return &domain.InvalidForecastInputError{Field: "dailyStdDev", Value: in.DailyStdDev}
	case in.BufferDays < 0:
		return &domain.InvalidForecastInputError{Field: "bufferDays", Value: in.BufferDays}
	case in.HorizonDays < 0:
		return &domain.InvalidForecastInputError{Field: "horizonDays", Value: in.HorizonDays}
	case in.PackSize < 0:
		return &domain.InvalidForecastInputError{Field: "packSize", Value: float64(in.PackSize)}
	case in.MOQ < 0:
		return &domain.InvalidForecastInputError{Field: "moq", Value: float64(in.MOQ)}
	}
	return nil
}
