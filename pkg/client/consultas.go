package client

import (
	"context"
	"net/url"
	"time"
)

// ConsultasClient accesses the /api/v1/consultas resource.
type ConsultasClient struct {
	client *Client
}

// ConsultaMovimento is one movement row returned by DataJud.
type ConsultaMovimento struct {
	Data      *time.Time `json:"data"`
	Descricao string     `json:"descricao"`
}

// ConsultaProcesso is the public case record returned by DataJud.
type ConsultaProcesso struct {
	Numero            string              `json:"numero"`
	Classe            string              `json:"classe"`
	Assunto           string              `json:"assunto"`
	Tribunal          string              `json:"tribunal"`
	OrgaoJulgador     string              `json:"orgao_julgador"`
	Grau              string              `json:"grau"`
	DataAjuizamento   *time.Time          `json:"data_ajuizamento"`
	UltimaAtualizacao *time.Time          `json:"ultima_atualizacao"`
	Movimentos        []ConsultaMovimento `json:"movimentos"`
}

// ConsultaResult is the consultation payload.
type ConsultaResult struct {
	Processo *ConsultaProcesso `json:"processo"`
	Cached   bool              `json:"cached"`
}

// Consultar looks up a case number in the public DataJud registry.
func (cc *ConsultasClient) Consultar(ctx context.Context, numero string) (*ConsultaResult, error) {
	var result ConsultaResult
	if err := cc.client.get(ctx, "/api/v1/consultas/"+url.PathEscape(numero), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

//Personal.AI order the ending
