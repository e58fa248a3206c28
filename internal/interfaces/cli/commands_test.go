package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/client"
)

// runCommand executes cmd with a CLIContext wired to the given API client
// and returns stdout.
func runCommand(t *testing.T, cmd *cobra.Command, api *client.Client, args ...string) (string, error) {
	t.Helper()

	cliCtx := &CLIContext{
		Client:       api,
		Logger:       logging.NewNopLogger(),
		OutputFormat: "json",
	}
	ctx := context.WithValue(context.Background(), cliContextKey{}, cliCtx)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func newAPIClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := client.NewClient(server.URL, "cli-token")
	require.NoError(t, err)
	return api
}

func TestProcessosListCmd(t *testing.T) {
	api := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/processos", r.URL.Path)
		assert.Equal(t, "archived", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(client.ProcessoList{
			Processos: []client.Processo{{ID: "p-1", Numero: "0001234-56.2024.4.01.3300", Status: "archived"}},
			Total:     1,
		})
	})

	out, err := runCommand(t, NewProcessosCmd(), api, "list", "--status", "archived")
	require.NoError(t, err)
	assert.Contains(t, out, "0001234-56.2024.4.01.3300")
}

func TestProcessosCreateCmd(t *testing.T) {
	api := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var input client.CreateProcessoInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "0001234-56.2024.4.01.3300", input.Numero)
		assert.Equal(t, "TRF1", input.Tribunal)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client.Processo{ID: "p-9", Numero: input.Numero})
	})

	out, err := runCommand(t, NewProcessosCmd(), api,
		"create", "--numero", "0001234-56.2024.4.01.3300", "--tribunal", "TRF1")
	require.NoError(t, err)
	assert.Contains(t, out, "OK:")
	assert.Contains(t, out, "p-9")
}

func TestProcessosCreateCmd_RequiresNumero(t *testing.T) {
	_, err := runCommand(t, NewProcessosCmd(), nil, "create")
	assert.Error(t, err)
}

func TestAlertasListCmd_UnreadFilter(t *testing.T) {
	api := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/alertas", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("unread_only"))
		json.NewEncoder(w).Encode(client.AlertaList{
			Alertas: []client.Alerta{{ID: "a-1", Tipo: "hearing", Titulo: "Audiência marcada"}},
			Total:   1,
		})
	})

	out, err := runCommand(t, NewAlertasCmd(), api, "list", "--unread")
	require.NoError(t, err)
	assert.Contains(t, out, "Audiência marcada")
}

func TestAlertasReadCmd(t *testing.T) {
	var called bool
	api := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/alertas/a-1/read", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	out, err := runCommand(t, NewAlertasCmd(), api, "read", "a-1")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, out, "marked as read")
}

func TestConsultasCmd(t *testing.T) {
	api := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/consultas/0001234-56.2024.4.01.3300", r.URL.Path)
		json.NewEncoder(w).Encode(client.ConsultaResult{
			Processo: &client.ConsultaProcesso{Numero: "0001234-56.2024.4.01.3300", Tribunal: "TRF1"},
		})
	})

	out, err := runCommand(t, NewConsultasCmd(), api, "0001234-56.2024.4.01.3300")
	require.NoError(t, err)
	assert.Contains(t, out, "TRF1")
}

const sampleNotificationBody = `Prezado(a) Senhor(a),

Informamos a movimentação do processo abaixo.

Polo Ativo: MARIA DA SILVA
Polo Passivo: INSTITUTO NACIONAL DO SEGURO SOCIAL
Classe Judicial: PROCEDIMENTO COMUM CÍVEL
Órgão: 1ª Vara Federal de Salvador
Data de Autuação: 12/03/2024
Assunto: Aposentadoria por Invalidez

Data Movimento Documento
15/08/2024 Expedição de intimação
`

func TestParseCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notificacao.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleNotificationBody), 0o600))

	out, err := runCommand(t, NewParseCmd(), nil, path,
		"--subject", "Movimentação processual do processo 0001234-56.2024.4.01.3300")
	require.NoError(t, err)
	assert.Contains(t, out, "0001234-56.2024.4.01.3300")
	assert.Contains(t, out, "MARIA DA SILVA")
}

func TestMigrateCmd_Flags(t *testing.T) {
	cmd := NewMigrateCmd()
	for _, name := range []string{"path", "status", "down", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
	}
}

func TestParseCmd_NotANotification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spam.txt")
	require.NoError(t, os.WriteFile(path, []byte("click here for a prize"), 0o600))

	_, err := runCommand(t, NewParseCmd(), nil, path, "--subject", "oferta imperdível")
	assert.Error(t, err)
}

//Personal.AI order the ending
