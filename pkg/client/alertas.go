package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// AlertasClient accesses the /api/v1/alertas resource.
type AlertasClient struct {
	client *Client
}

// Alerta mirrors the API's alert representation.
type Alerta struct {
	ID         string `json:"id"`
	Tipo       string `json:"tipo"`
	Titulo     string `json:"titulo"`
	Mensagem   string `json:"mensagem"`
	Prioridade string `json:"prioridade"`

	DataVencimento  *time.Time `json:"data_vencimento"`
	DataNotificacao time.Time  `json:"data_notificacao"`

	Lido bool `json:"lido"`

	UserID     string `json:"user_id"`
	ProcessoID string `json:"processo_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlertaList is a paginated page of alertas.
type AlertaList struct {
	Alertas  []Alerta `json:"alertas"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// ListAlertasOptions narrows a List call.
type ListAlertasOptions struct {
	Page       int
	PageSize   int
	UnreadOnly bool
	ProcessoID string
}

// List fetches a page of the caller's alertas.
func (ac *AlertasClient) List(ctx context.Context, opts ListAlertasOptions) (*AlertaList, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.UnreadOnly {
		q.Set("unread_only", "true")
	}
	if opts.ProcessoID != "" {
		q.Set("processo_id", opts.ProcessoID)
	}

	path := "/api/v1/alertas"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result AlertaList
	if err := ac.client.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches one alerta by ID.
func (ac *AlertasClient) Get(ctx context.Context, id string) (*Alerta, error) {
	var result Alerta
	if err := ac.client.get(ctx, "/api/v1/alertas/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkRead marks an alerta as read.
func (ac *AlertasClient) MarkRead(ctx context.Context, id string) error {
	return ac.client.post(ctx, "/api/v1/alertas/"+url.PathEscape(id)+"/read", nil, nil)
}

// Delete removes an alerta.
func (ac *AlertasClient) Delete(ctx context.Context, id string) error {
	return ac.client.delete(ctx, "/api/v1/alertas/"+url.PathEscape(id))
}

//Personal.AI order the ending
