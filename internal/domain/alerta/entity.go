package alerta

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tipo classifies an alert by the deadline or event it announces.
type Tipo string

const (
	TipoAudiencia     Tipo = "hearing"
	TipoPrazoRecurso  Tipo = "appeal_deadline"
	TipoPrazoEmbargos Tipo = "embargo_deadline"
	TipoDespacho      Tipo = "dispatch"
	TipoDistribuicao  Tipo = "distribution"
)

// Prioridade ranks alert urgency.
type Prioridade string

const (
	PrioridadeBaixa   Prioridade = "low"
	PrioridadeMedia   Prioridade = "medium"
	PrioridadeAlta    Prioridade = "high"
	PrioridadeUrgente Prioridade = "urgent"
)

// Alerta is a typed notification bound to exactly one processo.
//
// Deduplication invariant: at most one alert per (processo, tipo, data de
// vencimento).  The alert repository enforces it with a unique index so a
// conflicting insert is the dedup signal, not an error.
type Alerta struct {
	ID         string     `json:"id"`
	Tipo       Tipo       `json:"tipo"`
	Titulo     string     `json:"titulo"`
	Mensagem   string     `json:"mensagem"`
	Prioridade Prioridade `json:"prioridade"`

	// DataVencimento is the deadline the alert announces; nil for purely
	// informational movement alerts.
	DataVencimento *time.Time `json:"data_vencimento"`

	// DataNotificacao is when the alert was raised.
	DataNotificacao time.Time `json:"data_notificacao"`

	Lido bool `json:"lido"`

	UserID     string `json:"user_id"`
	ProcessoID string `json:"processo_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidTipo reports whether t is a known alert type.
func ValidTipo(t Tipo) bool {
	switch t {
	case TipoAudiencia, TipoPrazoRecurso, TipoPrazoEmbargos, TipoDespacho, TipoDistribuicao:
		return true
	}
	return false
}

// ValidPrioridade reports whether p is a known priority.
func ValidPrioridade(p Prioridade) bool {
	switch p {
	case PrioridadeBaixa, PrioridadeMedia, PrioridadeAlta, PrioridadeUrgente:
		return true
	}
	return false
}

// NewAlerta creates an unread alert raised now.
func NewAlerta(tipo Tipo, titulo, mensagem string, prioridade Prioridade, userID, processoID string, dataVencimento *time.Time) (*Alerta, error) {
	if !ValidTipo(tipo) {
		return nil, errors.New("invalid alerta tipo: " + string(tipo))
	}
	if !ValidPrioridade(prioridade) {
		return nil, errors.New("invalid alerta prioridade: " + string(prioridade))
	}
	if titulo == "" {
		return nil, errors.New("titulo cannot be empty")
	}
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if processoID == "" {
		return nil, errors.New("processo ID cannot be empty")
	}

	now := time.Now().UTC()
	return &Alerta{
		ID:              uuid.New().String(),
		Tipo:            tipo,
		Titulo:          titulo,
		Mensagem:        mensagem,
		Prioridade:      prioridade,
		DataVencimento:  dataVencimento,
		DataNotificacao: now,
		Lido:            false,
		UserID:          userID,
		ProcessoID:      processoID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// MarkRead flips the read flag.
func (a *Alerta) MarkRead() {
	a.Lido = true
	a.UpdatedAt = time.Now().UTC()
}

//Personal.AI order the ending
