package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/consultas"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/external/datajud"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

type fakeConsultaService struct {
	consultarFunc func(ctx context.Context, numero string) (*consultas.Result, error)
}

func (f *fakeConsultaService) Consultar(ctx context.Context, numero string) (*consultas.Result, error) {
	return f.consultarFunc(ctx, numero)
}

func newConsultaRouter(svc ConsultaService) chi.Router {
	r := chi.NewRouter()
	NewConsultaHandler(svc, logging.NewNopLogger()).RegisterRoutes(r)
	return r
}

func TestConsultaHandler_Consultar(t *testing.T) {
	svc := &fakeConsultaService{
		consultarFunc: func(ctx context.Context, numero string) (*consultas.Result, error) {
			assert.Equal(t, "0001234-56.2024.4.01.3300", numero)
			return &consultas.Result{
				Processo: &datajud.Processo{Numero: numero, Tribunal: "TRF1"},
				Cached:   true,
			}, nil
		},
	}
	router := newConsultaRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodGet, "/consultas/0001234-56.2024.4.01.3300", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp consultas.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	require.NotNil(t, resp.Processo)
	assert.Equal(t, "TRF1", resp.Processo.Tribunal)
}

func TestConsultaHandler_InvalidNumero(t *testing.T) {
	svc := &fakeConsultaService{
		consultarFunc: func(ctx context.Context, numero string) (*consultas.Result, error) {
			return nil, errors.New(errors.CodeNumeroInvalid, "numero does not match the CNJ format")
		},
	}
	router := newConsultaRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodGet, "/consultas/not-a-number", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PROC_003")
}

func TestConsultaHandler_DataJudUnavailable(t *testing.T) {
	svc := &fakeConsultaService{
		consultarFunc: func(ctx context.Context, numero string) (*consultas.Result, error) {
			return nil, errors.New(errors.CodeDataJudUnavailable, "datajud timed out")
		},
	}
	router := newConsultaRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodGet, "/consultas/0001234-56.2024.4.01.3300", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "DJD_001")
}

//Personal.AI order the ending
