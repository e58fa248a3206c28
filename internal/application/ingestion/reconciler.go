package ingestion

import (
	"context"
	"strings"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/alerting"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	domainIngestion "github.com/MP-oliveira/jurisacompanha-backend/internal/domain/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// Publisher pushes domain events onto the message bus.  A nil publisher
// disables publishing.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// EventProcessoUpdated is emitted after every successful reconciliation,
// for creations and updates alike.
const EventProcessoUpdated = "juris.processo.updated"

// ProcessoUpdatedPayload is the bus payload for EventProcessoUpdated.
type ProcessoUpdatedPayload struct {
	ProcessoID string `json:"processo_id"`
	Numero     string `json:"numero"`
	UserID     string `json:"user_id"`
	Created    bool   `json:"created"`
	Movements  int    `json:"movements"`
}

// Result is returned to the webhook layer after a reconciliation attempt.
// Store failures surface here as Success=false with Err attached; the
// pipeline never panics on persistence errors.
type Result struct {
	Success            bool   `json:"success"`
	Created            bool   `json:"created"`
	Message            string `json:"message"`
	ProcessNumber      string `json:"process_number"`
	CaseID             string `json:"case_id,omitempty"`
	MovementsProcessed int    `json:"movements_processed"`
	AlertsCreated      int    `json:"alerts_created"`
	Err                error  `json:"-"`
}

// Reconciler merges parsed notifications into the case store and raises the
// resulting alerts through the deduplicating alert service.
type Reconciler struct {
	processos processo.Repository
	events    domainIngestion.Repository
	alerts    *alerting.Service
	interp    *Interpreter
	publisher Publisher
	logger    logging.Logger
	now       func() time.Time
}

// NewReconciler creates a reconciler.  publisher may be nil.
func NewReconciler(
	processos processo.Repository,
	events domainIngestion.Repository,
	alerts *alerting.Service,
	interp *Interpreter,
	publisher Publisher,
	logger logging.Logger,
) *Reconciler {
	return &Reconciler{
		processos: processos,
		events:    events,
		alerts:    alerts,
		interp:    interp,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Reconcile applies one parsed notification to the owner's case records.
// An existing processo with the same number is merged and reactivated; an
// unknown number auto-creates one seeded with the extracted fields.
func (r *Reconciler) Reconcile(ctx context.Context, parsed *ParsedNotification, ownerID string) *Result {
	res := &Result{ProcessNumber: parsed.Numero}

	p, err := r.processos.FindByNumero(ctx, parsed.Numero, ownerID)
	if err != nil {
		return r.fail(res, "falha ao consultar o processo", err)
	}

	created := false
	if p == nil {
		p, err = r.newFromNotification(parsed, ownerID)
		if err != nil {
			return r.fail(res, "falha ao montar o processo", err)
		}
		created = true
	} else {
		r.merge(p, parsed)
	}

	now := r.now().UTC()
	changed := r.interp.Interpret(p, parsed.Movimentos, now)

	// A freshly inferred sentence implies the statutory windows unless the
	// notification carried explicit ones in the same batch.
	if changed[FieldDataSentenca] && p.DataSentenca != nil {
		if !changed[FieldPrazoRecurso] {
			d := processo.PrazoRecursoFrom(*p.DataSentenca)
			p.PrazoRecurso = &d
		}
		if !changed[FieldPrazoEmbargos] {
			d := processo.PrazoEmbargosFrom(*p.DataSentenca)
			p.PrazoEmbargos = &d
		}
	}

	p.Touch()
	if created {
		err = r.processos.Create(ctx, p)
	} else {
		err = r.processos.Update(ctx, p)
	}
	if err != nil {
		return r.fail(res, "falha ao persistir o processo", err)
	}

	r.recordEvent(ctx, p, parsed)
	alertsCreated := r.raiseAlerts(ctx, p, parsed)
	r.publishUpdate(ctx, p, created, len(parsed.Movimentos))

	res.Success = true
	res.Created = created
	res.CaseID = p.ID
	res.MovementsProcessed = len(parsed.Movimentos)
	res.AlertsCreated = alertsCreated
	if created {
		res.Message = "processo criado a partir da notificação"
	} else {
		res.Message = "processo atualizado a partir da notificação"
	}

	r.logger.Info("notification reconciled",
		logging.String("numero", p.Numero),
		logging.String("processo_id", p.ID),
		logging.Bool("created", created),
		logging.Int("movements", res.MovementsProcessed),
		logging.Int("alerts_created", alertsCreated))
	return res
}

// merge overwrites processo fields with the extracted values when present.
// The notification carries a single court field; it feeds both the tribunal
// and the comarca slots.  Status always returns to active: an inbound
// movement means the case is live again even if the user had archived it.
func (r *Reconciler) merge(p *processo.Processo, parsed *ParsedNotification) {
	if parsed.Classe != "" {
		p.Classe = parsed.Classe
	}
	if parsed.Assunto != "" {
		p.Assunto = parsed.Assunto
	}
	if parsed.Orgao != "" {
		p.Tribunal = parsed.Orgao
		p.Comarca = parsed.Orgao
	}
	if parsed.DataAutuacao != nil {
		p.DataDistribuicao = parsed.DataAutuacao
	}
	p.Status = processo.StatusActive
}

func (r *Reconciler) newFromNotification(parsed *ParsedNotification, ownerID string) (*processo.Processo, error) {
	p, err := processo.NewProcesso(parsed.Numero, ownerID)
	if err != nil {
		return nil, err
	}
	r.merge(p, parsed)
	p.Observacoes = creationBanner(parsed, r.now().UTC())
	return p, nil
}

// creationBanner seeds the notes of an auto-created processo.  Notes stay
// user-authored after this point; the ingestion history lives in the event
// log instead.
func creationBanner(parsed *ParsedNotification, now time.Time) string {
	var b strings.Builder
	b.WriteString("Processo criado automaticamente a partir de notificação do PJe Push em ")
	b.WriteString(now.Format("02/01/2006 15:04"))
	b.WriteString(".")
	if parsed.PoloAtivo != "" {
		b.WriteString("\nPolo Ativo: " + parsed.PoloAtivo)
	}
	if parsed.PoloPassivo != "" {
		b.WriteString("\nPolo Passivo: " + parsed.PoloPassivo)
	}
	if parsed.Classe != "" {
		b.WriteString("\nClasse Judicial: " + parsed.Classe)
	}
	return b.String()
}

func (r *Reconciler) recordEvent(ctx context.Context, p *processo.Processo, parsed *ParsedNotification) {
	excerpt := ""
	if len(parsed.Movimentos) > 0 {
		excerpt = parsed.Movimentos[0].Descricao
	}
	receivedAt := parsed.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = r.now()
	}
	ev := domainIngestion.NewEvent(p.ID, p.UserID, domainIngestion.SourceEmailPush,
		parsed.Subject, len(parsed.Movimentos), excerpt, receivedAt)
	if err := r.events.Record(ctx, ev); err != nil {
		// The audit trail is best-effort; the reconciliation stands.
		r.logger.Warn("failed to record ingestion event",
			logging.Err(err), logging.String("processo_id", p.ID))
	}
}

// raiseAlerts ensures one movement alert per extracted row.  A failed
// insert is logged and skipped; it never aborts the remaining movements.
func (r *Reconciler) raiseAlerts(ctx context.Context, p *processo.Processo, parsed *ParsedNotification) int {
	created := 0
	for _, mov := range parsed.Movimentos {
		ok, err := r.alerts.EnsureAlert(ctx, alerting.EnsureInput{
			Tipo:           alerta.TipoDespacho,
			Titulo:         alerting.TituloMovimentacao,
			Mensagem:       alerting.MensagemMovimentacao(p.Numero, mov.Descricao),
			Prioridade:     alerta.PrioridadeMedia,
			UserID:         p.UserID,
			ProcessoID:     p.ID,
			DataVencimento: mov.Data,
		})
		if err != nil {
			r.logger.Warn("failed to create movement alert",
				logging.Err(err), logging.String("processo_id", p.ID))
			continue
		}
		if ok {
			created++
		}
	}
	return created
}

func (r *Reconciler) publishUpdate(ctx context.Context, p *processo.Processo, created bool, movements int) {
	if r.publisher == nil {
		return
	}
	payload := ProcessoUpdatedPayload{
		ProcessoID: p.ID,
		Numero:     p.Numero,
		UserID:     p.UserID,
		Created:    created,
		Movements:  movements,
	}
	if err := r.publisher.Publish(ctx, EventProcessoUpdated, p.ID, payload); err != nil {
		r.logger.Warn("failed to publish processo event",
			logging.Err(err), logging.String("processo_id", p.ID))
	}
}

func (r *Reconciler) fail(res *Result, msg string, err error) *Result {
	r.logger.Error("reconciliation failed",
		logging.Err(err), logging.String("numero", res.ProcessNumber))
	res.Success = false
	res.Message = msg
	res.Err = err
	return res
}

//Personal.AI order the ending
