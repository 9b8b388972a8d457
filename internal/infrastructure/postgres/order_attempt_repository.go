package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/repository"
)

// Querier subconjunto común de pgxpool.Pool y pgx.Tx: los repos aceptan ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ repository.OrderAttemptRepository = (*OrderAttemptRepo)(nil)

// OrderAttemptRepo persistencia de la máquina de estados de colocación de órdenes.
// Las líneas del borrador se guardan como JSONB: son inmutables tras la creación
// del intento y solo el cursor (purchase_id, next_line, status) cambia después.
type OrderAttemptRepo struct {
	q Querier
}

// NewOrderAttemptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderAttemptRepository(q Querier) *OrderAttemptRepo {
	return &OrderAttemptRepo{q: q}
}

// Create persiste un intento nuevo con su borrador completo.
func (r *OrderAttemptRepo) Create(ctx context.Context, attempt *entity.OrderAttempt) error {
	lines, err := json.Marshal(attempt.Lines)
	if err != nil {
		return fmt.Errorf("serializar líneas del intento: %w", err)
	}
	query := `
		INSERT INTO order_attempts (id, supplier_id, location_id, currency, delivery_date, lines,
			purchase_id, next_line, status, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		attempt.ID, attempt.SupplierID, attempt.LocationID, attempt.Currency,
		attempt.DeliveryDate, lines,
		attempt.PurchaseID, attempt.NextLine, string(attempt.Status), attempt.LastError,
		attempt.CreatedAt, attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order attempt: %w", err)
	}
	return nil
}

// Save persiste el cursor y el estado tras cada transición. El borrador (líneas,
// cabecera) no se reescribe: es inmutable desde Create.
func (r *OrderAttemptRepo) Save(ctx context.Context, attempt *entity.OrderAttempt) error {
	query := `
		UPDATE order_attempts
		SET purchase_id = $2, next_line = $3, status = $4, last_error = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		attempt.ID, attempt.PurchaseID, attempt.NextLine, string(attempt.Status),
		attempt.LastError, attempt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un intento por ID. Devuelve domain.ErrNotFound si no existe.
func (r *OrderAttemptRepo) GetByID(ctx context.Context, id string) (*entity.OrderAttempt, error) {
	query := `
		SELECT id, supplier_id, location_id, currency, delivery_date, lines,
			purchase_id, next_line, status, last_error, created_at, updated_at
		FROM order_attempts WHERE id = $1`
	attempt, err := scanAttempt(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order attempt: %w", err)
	}
	return attempt, nil
}

// ListOpen intentos que esperan acción del operador: fallo limpio retomable,
// resultado ambiguo pendiente de reconciliación, o colocación interrumpida por
// una caída del proceso (HEADER_CREATED con cursor a medio avanzar).
func (r *OrderAttemptRepo) ListOpen(ctx context.Context, limit int) ([]*entity.OrderAttempt, error) {
	query := `
		SELECT id, supplier_id, location_id, currency, delivery_date, lines,
			purchase_id, next_line, status, last_error, created_at, updated_at
		FROM order_attempts
		WHERE status IN ($1, $2, $3)
		ORDER BY updated_at DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query,
		string(entity.StatusPartiallyFailed), string(entity.StatusAmbiguous),
		string(entity.StatusHeaderCreated), limit)
	if err != nil {
		return nil, fmt.Errorf("list open attempts: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderAttempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order attempt: %w", err)
		}
		list = append(list, attempt)
	}
	return list, rows.Err()
}

func scanAttempt(row pgx.Row) (*entity.OrderAttempt, error) {
	var (
		a      entity.OrderAttempt
		lines  []byte
		status string
	)
	err := row.Scan(
		&a.ID, &a.SupplierID, &a.LocationID, &a.Currency, &a.DeliveryDate, &lines,
		&a.PurchaseID, &a.NextLine, &status, &a.LastError, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &a.Lines); err != nil {
		return nil, fmt.Errorf("deserializar líneas: %w", err)
	}
	a.Status = entity.AttemptStatus(status)
	return &a, nil
}
