// Package severryba implementa el cliente HTTP del catálogo externo Север-Рыба.
package severryba

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/katarymba/ais-api/internal/application/sync"
	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/pkg/config"
	"github.com/katarymba/ais-api/pkg/logger"
)

var _ sync.ExternalCatalog = (*Client)(nil)

// Client consume la API de inventario de Север-Рыба.
// Autenticación doble: Bearer token + X-API-Key (la API acepta cualquiera
// de las dos; se mandan las que estén configuradas).
type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente con la configuración dada.
func NewClient(cfg config.SeverRybaConfig, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type inventoryResponse struct {
	Products []sync.ExternalProduct `json:"products"`
}

// FetchInventory hace GET /inventory y devuelve el catálogo completo.
// Cualquier fallo (red, timeout, status != 200, JSON inválido) se reporta
// como domain.ErrSourceUnavailable para que la pasada de sincronización
// degrade en vez de abortar.
func (c *Client) FetchInventory(ctx context.Context) ([]sync.ExternalProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/inventory", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("base_url", c.baseURL).Msg("catálogo Север-Рыба inaccesible")
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("catálogo Север-Рыба respondió con error")
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var body inventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decodificando respuesta: %v", domain.ErrSourceUnavailable, err)
	}

	c.log.Debug().Int("products", len(body.Products)).Msg("catálogo Север-Рыба recuperado")
	return body.Products, nil
}
