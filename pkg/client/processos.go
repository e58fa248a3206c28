package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ProcessosClient accesses the /api/v1/processos resource.
type ProcessosClient struct {
	client *Client
}

// Processo mirrors the API's case representation.
type Processo struct {
	ID      string `json:"id"`
	Numero  string `json:"numero"`
	Classe  string `json:"classe"`
	Assunto string `json:"assunto"`

	Tribunal string `json:"tribunal"`
	Comarca  string `json:"comarca"`

	Status string `json:"status"`

	DataDistribuicao *time.Time `json:"data_distribuicao"`
	DataSentenca     *time.Time `json:"data_sentenca"`
	PrazoRecurso     *time.Time `json:"prazo_recurso"`
	PrazoEmbargos    *time.Time `json:"prazo_embargos"`
	ProximaAudiencia *time.Time `json:"proxima_audiencia"`

	Observacoes string `json:"observacoes"`

	UserID string `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProcessoList is a paginated page of processos.
type ProcessoList struct {
	Processos  []Processo `json:"processos"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// IngestionEvent is one entry of a processo's ingestion history.
type IngestionEvent struct {
	ID            string    `json:"id"`
	ProcessoID    string    `json:"processo_id"`
	UserID        string    `json:"user_id"`
	Source        string    `json:"source"`
	Subject       string    `json:"subject"`
	MovementCount int       `json:"movement_count"`
	Excerpt       string    `json:"excerpt"`
	ReceivedAt    time.Time `json:"received_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryResponse is the processo history payload.
type HistoryResponse struct {
	Eventos []IngestionEvent `json:"eventos"`
	Total   int              `json:"total"`
}

// CreateProcessoInput is the body for registering a case by hand.
type CreateProcessoInput struct {
	Numero           string     `json:"numero"`
	Classe           string     `json:"classe,omitempty"`
	Assunto          string     `json:"assunto,omitempty"`
	Tribunal         string     `json:"tribunal,omitempty"`
	Comarca          string     `json:"comarca,omitempty"`
	DataDistribuicao *time.Time `json:"data_distribuicao,omitempty"`
	ProximaAudiencia *time.Time `json:"proxima_audiencia,omitempty"`
	Observacoes      string     `json:"observacoes,omitempty"`
}

// UpdateProcessoInput is the body for a partial update.  Nil fields are left
// untouched by the server.
type UpdateProcessoInput struct {
	Classe           *string    `json:"classe,omitempty"`
	Assunto          *string    `json:"assunto,omitempty"`
	Tribunal         *string    `json:"tribunal,omitempty"`
	Comarca          *string    `json:"comarca,omitempty"`
	Status           *string    `json:"status,omitempty"`
	DataSentenca     *time.Time `json:"data_sentenca,omitempty"`
	PrazoRecurso     *time.Time `json:"prazo_recurso,omitempty"`
	PrazoEmbargos    *time.Time `json:"prazo_embargos,omitempty"`
	ProximaAudiencia *time.Time `json:"proxima_audiencia,omitempty"`
	Observacoes      *string    `json:"observacoes,omitempty"`
}

// ListProcessosOptions narrows a List call.
type ListProcessosOptions struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// List fetches a page of the caller's processos.
func (pc *ProcessosClient) List(ctx context.Context, opts ListProcessosOptions) (*ProcessoList, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	path := "/api/v1/processos"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result ProcessoList
	if err := pc.client.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches one processo by ID.
func (pc *ProcessosClient) Get(ctx context.Context, id string) (*Processo, error) {
	var result Processo
	if err := pc.client.get(ctx, "/api/v1/processos/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create registers a new processo.
func (pc *ProcessosClient) Create(ctx context.Context, input *CreateProcessoInput) (*Processo, error) {
	var result Processo
	if err := pc.client.post(ctx, "/api/v1/processos", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update applies a partial update to a processo.
func (pc *ProcessosClient) Update(ctx context.Context, id string, input *UpdateProcessoInput) (*Processo, error) {
	var result Processo
	if err := pc.client.put(ctx, "/api/v1/processos/"+url.PathEscape(id), input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a processo.
func (pc *ProcessosClient) Delete(ctx context.Context, id string) error {
	return pc.client.delete(ctx, "/api/v1/processos/"+url.PathEscape(id))
}

// History fetches the ingestion history of a processo, newest first.
func (pc *ProcessosClient) History(ctx context.Context, id string, limit int) (*HistoryResponse, error) {
	path := fmt.Sprintf("/api/v1/processos/%s/historico", url.PathEscape(id))
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var result HistoryResponse
	if err := pc.client.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

//Personal.AI order the ending
