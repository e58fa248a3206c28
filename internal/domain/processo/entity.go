package processo

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status defines the lifecycle state of a Processo.
type Status string

const (
	StatusActive    Status = "active"
	StatusArchived  Status = "archived"
	StatusSuspended Status = "suspended"
)

// NotInformed is the sentinel stored in text fields the tribunal notification
// did not provide.  Date fields stay nil instead.
const NotInformed = "Não informado"

// numeroPattern matches the CNJ unified numbering format used by Brazilian
// courts: NNNNNNN-DD.AAAA.J.TR.OOOO.
var numeroPattern = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.\d\.\d{2}\.\d{4}$`)

// ValidNumero reports whether numero is a well-formed CNJ process number.
func ValidNumero(numero string) bool {
	return numeroPattern.MatchString(numero)
}

// Processo is the aggregate root for a tracked legal process.
//
// Numero is unique within the owner's scope; the same process number may be
// tracked by different users independently.
type Processo struct {
	ID      string `json:"id"`
	Numero  string `json:"numero"`
	Classe  string `json:"classe"`
	Assunto string `json:"assunto"`

	Tribunal string `json:"tribunal"`
	Comarca  string `json:"comarca"`

	Status Status `json:"status"`

	DataDistribuicao *time.Time `json:"data_distribuicao"`
	DataSentenca     *time.Time `json:"data_sentenca"`
	PrazoRecurso     *time.Time `json:"prazo_recurso"`
	PrazoEmbargos    *time.Time `json:"prazo_embargos"`
	ProximaAudiencia *time.Time `json:"proxima_audiencia"`

	// Observacoes holds user-authored notes.  Ingestion history lives in the
	// append-only ingestion-event log, not here.
	Observacoes string `json:"observacoes"`

	UserID string `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProcesso creates a Processo owned by userID.  Text fields left empty are
// filled with the NotInformed sentinel so records created from partial
// tribunal data never carry empty strings.
func NewProcesso(numero, userID string) (*Processo, error) {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return nil, errors.New("numero cannot be empty")
	}
	if !ValidNumero(numero) {
		return nil, errors.New("numero does not match the CNJ format")
	}
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	now := time.Now().UTC()
	return &Processo{
		ID:        uuid.New().String(),
		Numero:    numero,
		Classe:    NotInformed,
		Assunto:   NotInformed,
		Tribunal:  NotInformed,
		Comarca:   NotInformed,
		Status:    StatusActive,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetStatus transitions the processo to the given status.
func (p *Processo) SetStatus(s Status) error {
	switch s {
	case StatusActive, StatusArchived, StatusSuspended:
	default:
		return errors.New("invalid processo status: " + string(s))
	}
	p.Status = s
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsActive reports whether the processo participates in deadline sweeps.
func (p *Processo) IsActive() bool {
	return p.Status == StatusActive
}

// Touch refreshes the UpdatedAt timestamp.
func (p *Processo) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// DeadlineFields returns the deadline dates the scheduler watches, keyed by a
// stable field name.  Nil entries are omitted.
func (p *Processo) DeadlineFields() map[string]time.Time {
	out := make(map[string]time.Time, 4)
	if p.ProximaAudiencia != nil {
		out["proxima_audiencia"] = *p.ProximaAudiencia
	}
	if p.PrazoRecurso != nil {
		out["prazo_recurso"] = *p.PrazoRecurso
	}
	if p.PrazoEmbargos != nil {
		out["prazo_embargos"] = *p.PrazoEmbargos
	}
	if p.DataDistribuicao != nil {
		out["data_distribuicao"] = *p.DataDistribuicao
	}
	return out
}

//Personal.AI order the ending
