package replenishment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/repository"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/logger"
)

// OrderResult resultado de una colocación, completa o parcial. Cualquier fallo
// durante la colocación devuelve este resultado poblado junto con el error, nunca
// un error pelado: el operador necesita el purchase id y el cursor para actuar
// sobre una orden a medio crear en lugar de perderle el rastro.
type OrderResult struct {
	AttemptID     string
	PurchaseID    string
	LinesAppended int
	Total         int
	Status        entity.AttemptStatus
	Failure       error
}

// OrderUseCase orquesta la colocación de órdenes de compra contra la plataforma
// externa:
//
//	NOT_STARTED → HEADER_CREATED → (línea a línea) → COMPLETE | PARTIALLY_FAILED | AMBIGUOUS
//
// La plataforma no ofrece transacción multi-paso, así que la máquina de estados
// se persiste con un cursor retomable (purchase id + próxima línea): un reintento
// siempre se acota a "append de las líneas restantes", nunca "rehacer todo".
//
// Las líneas se envían estrictamente en secuencia y en el orden del llamador: la
// mutación por orden de la plataforma no es segura para escritores concurrentes.
// Ante el primer fallo se corta de inmediato y se reporta el estado exacto;
// saltarse una línea fallida en silencio produciría una orden con cantidades
// equivocadas que aparenta estar completa.
type OrderUseCase struct {
	purchases PurchaseGateway
	attempts  repository.OrderAttemptRepository
	log       *logger.Logger
}

// NewOrderUseCase construye el orquestador.
func NewOrderUseCase(purchases PurchaseGateway, attempts repository.OrderAttemptRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{purchases: purchases, attempts: attempts, log: log}
}

// PlaceOrder crea la cabecera y añade las líneas en orden. Sin reintento
// automático de ninguno de los pasos: la creación de cabecera no es idempotente
// (reintentar a ciegas arriesga cabeceras duplicadas) y re-enviar una línea cuyo
// resultado se perdió la duplicaría.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, draft entity.PurchaseOrderDraft) (*OrderResult, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	attempt := &entity.OrderAttempt{
		ID:           uuid.NewString(),
		SupplierID:   draft.SupplierID,
		LocationID:   draft.LocationID,
		Currency:     draft.Currency,
		DeliveryDate: draft.DeliveryDate,
		Lines:        draft.Lines,
		Status:       entity.StatusNotStarted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("orden de compra: persistir intento: %w", err)
	}

	// Paso 1: cabecera. Un fallo aquí termina en NOT_STARTED sin efecto remoto;
	// purchase id vacío en el resultado, y es seguro reintentar la colocación
	// completa más tarde.
	purchaseID, err := uc.purchases.CreatePurchaseOrderHeader(
		ctx, draft.SupplierID, draft.LocationID, draft.Currency, draft.DeliveryDate,
	)
	if err != nil {
		uc.persistFailure(ctx, attempt, err)
		uc.log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("creación de cabecera falló")
		return uc.result(attempt, err), err
	}

	attempt.PurchaseID = purchaseID
	attempt.Status = entity.StatusHeaderCreated
	uc.save(ctx, attempt)
	uc.log.Info().
		Str("attempt_id", attempt.ID).
		Str("purchase_id", purchaseID).
		Int("lines", len(attempt.Lines)).
		Msg("cabecera de orden de compra creada")

	// Paso 2: líneas en secuencia desde el cursor.
	return uc.appendFromCursor(ctx, attempt)
}

// Resume retoma un intento añadiendo solo las líneas restantes a la orden ya
// creada. Son retomables PARTIALLY_FAILED y HEADER_CREATED: el segundo es el
// estado que deja una caída del proceso a mitad de los appends (el cursor avanza
// línea a línea pero el estado no cambia hasta terminar o fallar); su cabecera
// remota existe, así que colocar de nuevo duplicaría la orden entera. Un intento
// AMBIGUOUS debe reconciliarse primero: retomar sin saber si el append en duda
// llegó duplicaría esa línea.
func (uc *OrderUseCase) Resume(ctx context.Context, attemptID string) (*OrderResult, error) {
	attempt, err := uc.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	switch attempt.Status {
	case entity.StatusPartiallyFailed, entity.StatusHeaderCreated:
		if attempt.PurchaseID == "" {
			return nil, fmt.Errorf("%w: intento %s sin purchase id registrado, reconciliar a mano", domain.ErrConflict, attemptID)
		}
	case entity.StatusAmbiguous:
		return nil, fmt.Errorf("%w: intento %s en estado AMBIGUOUS, reconciliar antes de retomar", domain.ErrConflict, attemptID)
	case entity.StatusComplete:
		return nil, fmt.Errorf("%w: intento %s ya está completo", domain.ErrConflict, attemptID)
	default:
		// NOT_STARTED: no hay cabecera remota; lo correcto es una colocación nueva.
		return nil, fmt.Errorf("%w: intento %s sin cabecera creada, colocar la orden de nuevo", domain.ErrConflict, attemptID)
	}

	uc.log.Info().
		Str("attempt_id", attempt.ID).
		Str("purchase_id", attempt.PurchaseID).
		Int("next_line", attempt.NextLine).
		Msg("retomando colocación de orden")

	return uc.appendFromCursor(ctx, attempt)
}

// Reconcile consulta cuántas líneas tiene realmente la orden en la plataforma y
// reposiciona el cursor. Es el único camino de salida de AMBIGUOUS: nunca se
// adivina si el append en duda llegó; se verifica.
func (uc *OrderUseCase) Reconcile(ctx context.Context, attemptID string) (*entity.OrderAttempt, error) {
	attempt, err := uc.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.PurchaseID == "" {
		return nil, fmt.Errorf("%w: intento %s sin cabecera remota, nada que reconciliar", domain.ErrConflict, attemptID)
	}

	count, err := uc.purchases.GetPurchaseOrderLineCount(ctx, attempt.PurchaseID)
	if err != nil {
		return nil, err
	}

	attempt.NextLine = count
	if count >= len(attempt.Lines) {
		attempt.Status = entity.StatusComplete
	} else {
		attempt.Status = entity.StatusPartiallyFailed
	}
	attempt.LastError = ""
	uc.save(ctx, attempt)

	uc.log.Info().
		Str("attempt_id", attempt.ID).
		Str("purchase_id", attempt.PurchaseID).
		Int("remote_lines", count).
		Str("status", string(attempt.Status)).
		Msg("intento reconciliado contra la plataforma")

	return attempt, nil
}

// Get devuelve el estado persistido de un intento.
func (uc *OrderUseCase) Get(ctx context.Context, attemptID string) (*entity.OrderAttempt, error) {
	return uc.attempts.GetByID(ctx, attemptID)
}

// ListOpen intentos que esperan acción del operador, incluido HEADER_CREATED:
// un intento varado en ese estado es una colocación interrumpida por una caída
// del proceso y debe ser visible para retomarlo.
func (uc *OrderUseCase) ListOpen(ctx context.Context, limit int) ([]*entity.OrderAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.attempts.ListOpen(ctx, limit)
}

// appendFromCursor añade líneas desde attempt.NextLine, persistiendo el cursor
// tras cada confirmación. Una vez enviado un append su resultado debe conocerse
// antes de avanzar: un timeout con la petición en vuelo es AMBIGUOUS, no un fallo
// limpio.
func (uc *OrderUseCase) appendFromCursor(ctx context.Context, attempt *entity.OrderAttempt) (*OrderResult, error) {
	for i := attempt.NextLine; i < len(attempt.Lines); i++ {
		line := attempt.Lines[i]

		err := uc.purchases.AppendPurchaseOrderLine(ctx, attempt.PurchaseID, line.StockItemID, line.Qty, line.UnitCost)
		if err != nil {
			failure := uc.classifyAppendError(i, err)
			uc.persistFailure(ctx, attempt, failure)
			uc.log.Error().Err(failure).
				Str("attempt_id", attempt.ID).
				Str("purchase_id", attempt.PurchaseID).
				Int("line_index", i).
				Msg("append de línea interrumpió la colocación")
			return uc.result(attempt, failure), failure
		}

		attempt.NextLine = i + 1
		uc.save(ctx, attempt)
	}

	attempt.Status = entity.StatusComplete
	attempt.LastError = ""
	uc.save(ctx, attempt)
	uc.log.Info().
		Str("attempt_id", attempt.ID).
		Str("purchase_id", attempt.PurchaseID).
		Int("lines", len(attempt.Lines)).
		Msg("orden de compra colocada completa")

	return uc.result(attempt, nil), nil
}

// classifyAppendError separa el fallo limpio (la plataforma respondió que no) del
// resultado ambiguo (timeout con el append en vuelo, resultado desconocido).
func (uc *OrderUseCase) classifyAppendError(index int, err error) error {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return &domain.LineAppendError{Index: index, Status: upstream.Status, Body: upstream.Body}
	}
	if domain.IsInFlightTimeout(err) {
		return &domain.AmbiguousOutcomeError{Index: index, Cause: err}
	}
	// Transporte falló antes de que la petición fuera aceptada (ej. conexión
	// rechazada): fallo limpio sin status remoto.
	return &domain.LineAppendError{Index: index, Status: 0, Body: err.Error()}
}

// persistFailure fija el estado terminal del intento según el tipo de fallo.
func (uc *OrderUseCase) persistFailure(ctx context.Context, attempt *entity.OrderAttempt, failure error) {
	var ambiguous *domain.AmbiguousOutcomeError
	var headerErr *domain.HeaderCreateError

	switch {
	case errors.As(failure, &ambiguous):
		attempt.Status = entity.StatusAmbiguous
	case errors.As(failure, &headerErr):
		attempt.Status = entity.StatusNotStarted
	default:
		attempt.Status = entity.StatusPartiallyFailed
	}
	attempt.LastError = failure.Error()
	uc.save(ctx, attempt)
}

// save persiste el intento; un fallo de persistencia se loguea pero no interrumpe
// la colocación: el estado remoto ya avanzó y perderlo sería peor.
func (uc *OrderUseCase) save(ctx context.Context, attempt *entity.OrderAttempt) {
	attempt.UpdatedAt = time.Now()
	if err := uc.attempts.Save(ctx, attempt); err != nil {
		uc.log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("no se pudo persistir el intento")
	}
}

// result arma el resultado a partir del estado actual del intento.
func (uc *OrderUseCase) result(attempt *entity.OrderAttempt, failure error) *OrderResult {
	return &OrderResult{
		AttemptID:     attempt.ID,
		PurchaseID:    attempt.PurchaseID,
		LinesAppended: attempt.NextLine,
		Total:         len(attempt.Lines),
		Status:        attempt.Status,
		Failure:       failure,
	}
}
