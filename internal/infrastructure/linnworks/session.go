package linnworks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/config"
)

const (
	authPath = "/api/Auth/AuthorizeByApplication"

	// defaultSessionTTL margen de frescura por debajo de la vida real del token
	// que emite la plataforma.
	defaultSessionTTL = 25 * time.Minute
)

// Session credencial de sesión con la plataforma: bearer + host que sirve a la
// cuenta. Inmutable una vez creada; vive solo en memoria del proceso.
type Session struct {
	Token     string
	BaseURL   string // siempre con esquema explícito y sin slash final
	FetchedAt time.Time
}

// SessionCache memoización acotada en el tiempo del intercambio de autenticación,
// compartida por todas las peticiones concurrentes.
//
// El snapshot se intercambia atómicamente en lugar de serializar el refresh con un
// lock: bajo Acquire concurrente con caché vencida puede haber varios intercambios
// simultáneos (la plataforma es idempotente emitiendo tokens) y gana el último en
// escribir. Cualquier sesión válida sirve por igual; lo único garantizado es
// frescura eventual, no refresh exactamente-una-vez.
type SessionCache struct {
	cfg        config.LinnworksConfig
	httpClient *http.Client
	ttl        time.Duration

	current atomic.Pointer[Session]
}

// NewSessionCache construye la caché. cfg.SessionTTL en minutos; <= 0 aplica el default.
func NewSessionCache(cfg config.LinnworksConfig) *SessionCache {
	ttl := time.Duration(cfg.SessionTTL) * time.Minute
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		ttl:        ttl,
	}
}

// Acquire devuelve la sesión cacheada si su edad está bajo la ventana de frescura;
// si no, ejecuta el intercambio de autenticación y reemplaza la caché.
func (c *SessionCache) Acquire(ctx context.Context) (*Session, error) {
	if s := c.current.Load(); s != nil && time.Since(s.FetchedAt) < c.ttl {
		return s, nil
	}

	s, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	c.current.Store(s)
	return s, nil
}

// Invalidate descarta el snapshot actual. Se usa cuando la plataforma responde
// 401/403 con un token que la caché aún consideraba fresco.
func (c *SessionCache) Invalidate() {
	c.current.Store(nil)
}

// authenticate intercambia las credenciales estáticas por un bearer y el host de
// servicio. Falla ruidosamente: jamás devuelve una sesión parcial o vencida.
func (c *SessionCache) authenticate(ctx context.Context) (*Session, error) {
	payload := authRequest{
		ApplicationID:     c.cfg.AppID,
		ApplicationSecret: c.cfg.AppSecret,
		Token:             c.cfg.InstallToken,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sesión: serializar request: %w", err)
	}

	url := strings.TrimRight(c.cfg.AuthURL, "/") + authPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sesión: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.AuthError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, &domain.AuthError{Status: resp.StatusCode, Body: "leer respuesta: " + err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.AuthError{Status: resp.StatusCode, Body: string(raw)}
	}

	var auth authResponse
	if err := json.Unmarshal(raw, &auth); err != nil {
		return nil, &domain.AuthError{Status: resp.StatusCode, Body: "respuesta malformada: " + err.Error()}
	}
	if auth.Token == "" || auth.Server == "" {
		return nil, &domain.AuthError{Status: resp.StatusCode, Body: "respuesta sin token o server"}
	}

	return &Session{
		Token:     auth.Token,
		BaseURL:   normalizeBaseURL(auth.Server),
		FetchedAt: time.Now(),
	}, nil
}

// normalizeBaseURL acepta un hostname pelado o una URL completa y normaliza a URL
// con esquema explícito y sin slash final, para que la concatenación de paths
// aguas abajo sea inequívoca.
func normalizeBaseURL(server string) string {
	s := strings.TrimSpace(server)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	return strings.TrimRight(s, "/")
}
