package alerting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
)

type fakeAlertaRepo struct {
	mu       sync.Mutex
	byKey    map[string]*alerta.Alerta
	failNext error
}

func newFakeAlertaRepo() *fakeAlertaRepo {
	return &fakeAlertaRepo{byKey: make(map[string]*alerta.Alerta)}
}

func dedupKey(processoID string, tipo alerta.Tipo, venc *time.Time) string {
	v := ""
	if venc != nil {
		v = venc.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s|%s|%s", processoID, tipo, v)
}

func (f *fakeAlertaRepo) CreateIfAbsent(ctx context.Context, a *alerta.Alerta) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return false, err
	}
	k := dedupKey(a.ProcessoID, a.Tipo, a.DataVencimento)
	if _, ok := f.byKey[k]; ok {
		return false, nil
	}
	f.byKey[k] = a
	return true, nil
}

func (f *fakeAlertaRepo) FindMatching(ctx context.Context, processoID string, tipo alerta.Tipo, venc *time.Time) (*alerta.Alerta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byKey[dedupKey(processoID, tipo, venc)], nil
}

func (f *fakeAlertaRepo) FindByID(ctx context.Context, id, userID string) (*alerta.Alerta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byKey {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAlertaRepo) List(ctx context.Context, filter alerta.ListFilter) ([]*alerta.Alerta, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*alerta.Alerta
	for _, a := range f.byKey {
		if a.UserID == filter.UserID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAlertaRepo) MarkRead(ctx context.Context, id, userID string) error { return nil }

func (f *fakeAlertaRepo) Delete(ctx context.Context, id, userID string) error { return nil }

func (f *fakeAlertaRepo) all() []*alerta.Alerta {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*alerta.Alerta
	for _, a := range f.byKey {
		out = append(out, a)
	}
	return out
}

type fakeProcessoRepo struct {
	processos []*processo.Processo
	failNext  error
}

func (f *fakeProcessoRepo) Create(ctx context.Context, p *processo.Processo) error {
	f.processos = append(f.processos, p)
	return nil
}

func (f *fakeProcessoRepo) Update(ctx context.Context, p *processo.Processo) error { return nil }

func (f *fakeProcessoRepo) FindByID(ctx context.Context, id, userID string) (*processo.Processo, error) {
	return nil, nil
}

func (f *fakeProcessoRepo) FindByNumero(ctx context.Context, numero, userID string) (*processo.Processo, error) {
	return nil, nil
}

func (f *fakeProcessoRepo) List(ctx context.Context, filter processo.ListFilter) ([]*processo.Processo, int64, error) {
	return f.processos, int64(len(f.processos)), nil
}

func (f *fakeProcessoRepo) FindWithDeadlinesBetween(ctx context.Context, from, to time.Time) ([]*processo.Processo, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	var out []*processo.Processo
	for _, p := range f.processos {
		if !p.IsActive() {
			continue
		}
		for _, d := range p.DeadlineFields() {
			if !d.Before(from) && !d.After(to) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeProcessoRepo) Delete(ctx context.Context, id, userID string) error { return nil }

type fakeLocker struct {
	mu     sync.Mutex
	held   map[string]bool
	denied bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied || f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, eventType)
	return nil
}

//Personal.AI order the ending
