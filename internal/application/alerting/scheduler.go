package alerting

import (
	"context"
	"sync"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// Job names reported by GetStatus.
const (
	JobHourlySweep = "hourly_sweep"
	JobDailySweep  = "daily_sweep"
)

// sweepLockKey guards against concurrent sweeps across instances.
const sweepLockKey = "scheduler:sweep"

// Locker serialises sweeps across processes.  A nil locker lets every sweep
// proceed, which is safe because alert creation deduplicates at the store.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// SchedulerOptions tune the sweep cadence.
type SchedulerOptions struct {
	// HourlyInterval is the period of the rolling sweep.
	HourlyInterval time.Duration

	// DailyHour is the local hour (0-23) of the once-a-day sweep.
	DailyHour int

	// Horizon is how far ahead a deadline may be to raise an alert.
	Horizon time.Duration

	// LockTTL bounds how long a crashed instance can hold the sweep lock.
	LockTTL time.Duration
}

func (o *SchedulerOptions) applyDefaults() {
	if o.HourlyInterval <= 0 {
		o.HourlyInterval = time.Hour
	}
	if o.DailyHour < 0 || o.DailyHour > 23 {
		o.DailyHour = 8
	}
	if o.Horizon <= 0 {
		o.Horizon = 24 * time.Hour
	}
	if o.LockTTL <= 0 {
		o.LockTTL = 5 * time.Minute
	}
}

// Status is the scheduler's control-surface snapshot.
type Status struct {
	Running    bool     `json:"running"`
	ActiveJobs []string `json:"active_jobs"`
}

// Scheduler periodically scans active processos for deadlines inside the
// horizon and raises alerts through the deduplicating alert service.  It is
// an explicit object owned by the process lifecycle: construct once at
// startup, Start it, Stop it on shutdown.
type Scheduler struct {
	processos processo.Repository
	alerts    *Service
	locker    Locker
	logger    logging.Logger
	opts      SchedulerOptions

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	now func() time.Time
}

// NewScheduler creates a stopped scheduler.  locker may be nil.
func NewScheduler(processos processo.Repository, alerts *Service, locker Locker, logger logging.Logger, opts SchedulerOptions) *Scheduler {
	opts.applyDefaults()
	return &Scheduler{
		processos: processos,
		alerts:    alerts,
		locker:    locker,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// Start launches the hourly and daily sweep loops.  Starting a running
// scheduler logs a warning and is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.logger.Warn("scheduler already running, start ignored")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	s.wg.Add(2)
	go s.hourlyLoop(runCtx)
	go s.dailyLoop(runCtx)

	s.logger.Info("scheduler started",
		logging.Duration("hourly_interval", s.opts.HourlyInterval),
		logging.Int("daily_hour", s.opts.DailyHour),
		logging.Duration("horizon", s.opts.Horizon))
}

// Stop halts the loops and waits for an in-flight sweep to finish.  Stopping
// a stopped scheduler logs a warning and is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.logger.Warn("scheduler not running, stop ignored")
		return
	}
	s.running = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// GetStatus reports whether the scheduler runs and which jobs are armed.
func (s *Scheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{Running: s.running, ActiveJobs: []string{}}
	if s.running {
		st.ActiveJobs = []string{JobHourlySweep, JobDailySweep}
	}
	return st
}

func (s *Scheduler) hourlyLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.HourlyInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweep(ctx, JobHourlySweep)
		}
	}
}

func (s *Scheduler) dailyLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		timer := time.NewTimer(s.untilDailyRun())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runSweep(ctx, JobDailySweep)
		}
	}
}

func (s *Scheduler) untilDailyRun() time.Duration {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.opts.DailyHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// runSweep wraps Sweep with the cross-instance lock.  Losing the lock means
// another instance is already sweeping; that is not an error.
func (s *Scheduler) runSweep(ctx context.Context, job string) {
	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, sweepLockKey, s.opts.LockTTL)
		if err != nil {
			s.logger.Warn("sweep lock unavailable, sweeping anyway", logging.Err(err))
		} else if !ok {
			s.logger.Debug("sweep skipped, lock held elsewhere", logging.String("job", job))
			return
		} else {
			defer func() {
				if err := s.locker.Unlock(ctx, sweepLockKey); err != nil {
					s.logger.Warn("failed to release sweep lock", logging.Err(err))
				}
			}()
		}
	}

	if err := s.Sweep(ctx); err != nil {
		s.logger.Error("sweep failed", logging.Err(err), logging.String("job", job))
	}
}

// Sweep runs one deadline scan: every active processo with a watched date
// inside [now, now+horizon] gets one alert per due field.  A failure on one
// processo is logged and does not abort the rest.
func (s *Scheduler) Sweep(ctx context.Context) error {
	now := s.now().UTC()
	until := now.Add(s.opts.Horizon)

	processos, err := s.processos.FindWithDeadlinesBetween(ctx, now, until)
	if err != nil {
		return err
	}

	checked := 0
	created := 0
	for _, p := range processos {
		n, err := s.sweepProcesso(ctx, p, now, until)
		if err != nil {
			s.logger.Error("failed to alert on processo deadlines",
				logging.Err(err),
				logging.String("processo_id", p.ID),
				logging.String("numero", p.Numero))
			continue
		}
		checked++
		created += n
	}

	s.logger.Info("deadline sweep finished",
		logging.Int("processos", checked),
		logging.Int("alerts_created", created))
	return nil
}

func (s *Scheduler) sweepProcesso(ctx context.Context, p *processo.Processo, from, until time.Time) (int, error) {
	created := 0
	for field, due := range p.DeadlineFields() {
		if due.Before(from) || due.After(until) {
			continue
		}
		in, ok := deadlineAlert(p, field, due)
		if !ok {
			continue
		}
		wasCreated, err := s.alerts.EnsureAlert(ctx, in)
		if err != nil {
			return created, err
		}
		if wasCreated {
			created++
		}
	}
	return created, nil
}

// deadlineAlert maps a due deadline field onto an alert, with the priority
// ladder: hearings are high, statutory windows urgent, distributions medium.
func deadlineAlert(p *processo.Processo, field string, due time.Time) (EnsureInput, bool) {
	in := EnsureInput{
		UserID:         p.UserID,
		ProcessoID:     p.ID,
		DataVencimento: &due,
	}
	switch field {
	case "proxima_audiencia":
		in.Tipo = alerta.TipoAudiencia
		in.Prioridade = alerta.PrioridadeAlta
		in.Titulo = TituloAudiencia
		in.Mensagem = MensagemAudiencia(p.Numero, due)
	case "prazo_recurso":
		in.Tipo = alerta.TipoPrazoRecurso
		in.Prioridade = alerta.PrioridadeUrgente
		in.Titulo = TituloPrazoRecurso
		in.Mensagem = MensagemPrazoRecurso(p.Numero, due)
	case "prazo_embargos":
		in.Tipo = alerta.TipoPrazoEmbargos
		in.Prioridade = alerta.PrioridadeUrgente
		in.Titulo = TituloPrazoEmbargos
		in.Mensagem = MensagemPrazoEmbargos(p.Numero, due)
	case "data_distribuicao":
		in.Tipo = alerta.TipoDistribuicao
		in.Prioridade = alerta.PrioridadeMedia
		in.Titulo = TituloDistribuicao
		in.Mensagem = MensagemDistribuicao(p.Numero, due)
	default:
		return EnsureInput{}, false
	}
	return in, true
}

//Personal.AI order the ending
