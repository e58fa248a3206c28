package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessosClient_List(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/processos", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("page_size"))
		assert.Equal(t, "active", q.Get("status"))
		assert.Equal(t, "trabalhista", q.Get("search"))

		json.NewEncoder(w).Encode(ProcessoList{
			Processos:  []Processo{{ID: "p-1", Numero: "0001234-56.2024.4.01.3300"}},
			Total:      11,
			Page:       2,
			PageSize:   10,
			TotalPages: 2,
		})
	}
	c := newTestClient(t, handler)

	list, err := c.Processos().List(context.Background(), ListProcessosOptions{
		Page: 2, PageSize: 10, Status: "active", Search: "trabalhista",
	})
	require.NoError(t, err)
	require.Len(t, list.Processos, 1)
	assert.Equal(t, "p-1", list.Processos[0].ID)
	assert.Equal(t, int64(11), list.Total)
}

func TestProcessosClient_Create(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/processos", r.URL.Path)

		var input CreateProcessoInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "0001234-56.2024.4.01.3300", input.Numero)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Processo{ID: "p-1", Numero: input.Numero, Status: "active"})
	}
	c := newTestClient(t, handler)

	p, err := c.Processos().Create(context.Background(), &CreateProcessoInput{
		Numero: "0001234-56.2024.4.01.3300",
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "active", p.Status)
}

func TestProcessosClient_Update_OmitsNilFields(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/processos/p-1", r.URL.Path)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "status")
		assert.NotContains(t, raw, "classe")

		json.NewEncoder(w).Encode(Processo{ID: "p-1", Status: "archived"})
	}
	c := newTestClient(t, handler)

	status := "archived"
	p, err := c.Processos().Update(context.Background(), "p-1", &UpdateProcessoInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "archived", p.Status)
}

func TestProcessosClient_History(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/processos/p-1/historico", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(HistoryResponse{
			Eventos: []IngestionEvent{{ID: "e-1", ProcessoID: "p-1", Source: "email"}},
			Total:   1,
		})
	}
	c := newTestClient(t, handler)

	h, err := c.Processos().History(context.Background(), "p-1", 5)
	require.NoError(t, err)
	require.Len(t, h.Eventos, 1)
	assert.Equal(t, "email", h.Eventos[0].Source)
}

func TestAlertasClient_ListAndMarkRead(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/alertas":
			assert.Equal(t, "true", r.URL.Query().Get("unread_only"))
			assert.Equal(t, "p-1", r.URL.Query().Get("processo_id"))
			json.NewEncoder(w).Encode(AlertaList{
				Alertas: []Alerta{{ID: "a-1", Tipo: "hearing", Lido: false}},
				Total:   1,
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/alertas/a-1/read":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
	c := newTestClient(t, handler)
	ctx := context.Background()

	list, err := c.Alertas().List(ctx, ListAlertasOptions{UnreadOnly: true, ProcessoID: "p-1"})
	require.NoError(t, err)
	require.Len(t, list.Alertas, 1)
	assert.Equal(t, "hearing", list.Alertas[0].Tipo)

	assert.NoError(t, c.Alertas().MarkRead(ctx, "a-1"))
}

func TestConsultasClient_Consultar(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/consultas/0001234-56.2024.4.01.3300", r.URL.Path)
		json.NewEncoder(w).Encode(ConsultaResult{
			Processo: &ConsultaProcesso{Numero: "0001234-56.2024.4.01.3300", Tribunal: "TRF1"},
			Cached:   true,
		})
	}
	c := newTestClient(t, handler)

	res, err := c.Consultas().Consultar(context.Background(), "0001234-56.2024.4.01.3300")
	require.NoError(t, err)
	require.NotNil(t, res.Processo)
	assert.Equal(t, "TRF1", res.Processo.Tribunal)
	assert.True(t, res.Cached)
}

//Personal.AI order the ending
