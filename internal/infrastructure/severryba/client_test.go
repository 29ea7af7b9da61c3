package severryba

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/pkg/config"
	"github.com/katarymba/ais-api/pkg/logger"
)

func testClient(baseURL string) *Client {
	return NewClient(config.SeverRybaConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Token:          "test-token",
		TimeoutSeconds: 2,
	}, logger.New(logger.Config{Env: "production", Level: "error"}))
}

// El cliente manda ambas cabeceras de autenticación y decodifica el
// catálogo, preservando la distinción entre campo ausente y campo en cero.
func TestFetchInventory_DecodificaCatalogo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":1,"sku":"FISH-001","name":"Треска","price":"119.90","quantity":35,"category":"Рыба свежая"},
			{"id":2,"sku":"FISH-002","name":"Минтай","quantity":0},
			{"id":3,"sku":"FISH-003","name":"Сёмга"}
		]}`))
	}))
	defer srv.Close()

	products, err := testClient(srv.URL).FetchInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "FISH-001", products[0].SKU)
	require.NotNil(t, products[0].Quantity)
	assert.Equal(t, int64(35), *products[0].Quantity)
	require.NotNil(t, products[0].Price)
	assert.Equal(t, "119.9", products[0].Price.String())

	require.NotNil(t, products[1].Quantity, "quantity 0 explícito no es ausencia")
	assert.Equal(t, int64(0), *products[1].Quantity)

	assert.Nil(t, products[2].Quantity, "quantity ausente queda nil")
	assert.Nil(t, products[2].Price)
}

// Cualquier status distinto de 200 se reporta como fuente no disponible.
func TestFetchInventory_StatusNoOKEsFuenteNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchInventory(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

// Un JSON corrupto también degrada a fuente no disponible.
func TestFetchInventory_JSONInvalidoEsFuenteNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": [{`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchInventory(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

// Servidor inaccesible: error de red envuelto en ErrSourceUnavailable.
func TestFetchInventory_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // cerrar antes de llamar

	_, err := testClient(srv.URL).FetchInventory(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
