// Package linnworks implementa el adaptador hacia la plataforma externa de
// inventario y órdenes de compra: sesión cacheada, lectura de posiciones de
// stock y mutaciones de órdenes de compra.
package linnworks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/replenishment"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
)

// Verificación en compilación de que Client satisface los puertos de la aplicación.
var (
	_ replenishment.StockGateway    = (*Client)(nil)
	_ replenishment.PurchaseGateway = (*Client)(nil)
)

// Client cliente JSON autenticado contra la plataforma. Todas las llamadas llevan
// el bearer cacheado; una respuesta 401/403 se trata como señal de sesión vencida:
// se fuerza un refresh de caché y se reintenta esa única llamada exactamente una
// vez, nunca en bucle.
type Client struct {
	sessions   *SessionCache
	httpClient *http.Client
}

// NewClient construye el cliente con un timeout de red propio. El timeout del
// llamador (context) manda; este es la red de seguridad.
func NewClient(sessions *SessionCache) *Client {
	return &Client{
		sessions:   sessions,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// postJSON ejecuta POST {base}/{path} con el bearer de la sesión actual y
// deserializa la respuesta en out (out puede ser nil).
//
// Errores: *domain.AuthError si no hay sesión; *domain.UpstreamError con status y
// body para respuestas no exitosas; errores de transporte envueltos tal cual para
// que el llamador distinga un timeout en vuelo de un rechazo limpio.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	sess, err := c.sessions.Acquire(ctx)
	if err != nil {
		return err
	}

	status, raw, err := c.do(ctx, sess, path, payload)
	if err != nil {
		return err
	}

	// 401/403 = sesión vencida antes de la ventana de frescura: refresh y un reintento.
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		c.sessions.Invalidate()
		sess, err = c.sessions.Acquire(ctx)
		if err != nil {
			return err
		}
		status, raw, err = c.do(ctx, sess, path, payload)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return &domain.UpstreamError{Op: path, Status: status, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("plataforma: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

// do ejecuta una única petición y devuelve status y body. Los errores de red se
// devuelven sin clasificar; esa decisión es del llamador (domain.IsInFlightTimeout).
func (c *Client) do(ctx context.Context, sess *Session, path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("plataforma: serializar request de %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sess.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("plataforma: crear HTTP request de %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", sess.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("plataforma: llamada a %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("plataforma: leer respuesta de %s: %w", path, err)
	}
	return resp.StatusCode, raw, nil
}
