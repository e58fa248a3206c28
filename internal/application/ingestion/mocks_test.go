package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/alerta"
	domainIngestion "github.com/MP-oliveira/jurisacompanha-backend/internal/domain/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/user"
)

// In-memory fakes for the store interfaces the pipeline consumes.

type fakeProcessoRepo struct {
	byNumero map[string]*processo.Processo
	failNext error
	creates  int
	updates  int
}

func newFakeProcessoRepo() *fakeProcessoRepo {
	return &fakeProcessoRepo{byNumero: make(map[string]*processo.Processo)}
}

func (f *fakeProcessoRepo) key(numero, userID string) string {
	return numero + "|" + userID
}

func (f *fakeProcessoRepo) Create(ctx context.Context, p *processo.Processo) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.creates++
	f.byNumero[f.key(p.Numero, p.UserID)] = p
	return nil
}

func (f *fakeProcessoRepo) Update(ctx context.Context, p *processo.Processo) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.updates++
	f.byNumero[f.key(p.Numero, p.UserID)] = p
	return nil
}

func (f *fakeProcessoRepo) FindByID(ctx context.Context, id, userID string) (*processo.Processo, error) {
	for _, p := range f.byNumero {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProcessoRepo) FindByNumero(ctx context.Context, numero, userID string) (*processo.Processo, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	return f.byNumero[f.key(numero, userID)], nil
}

func (f *fakeProcessoRepo) List(ctx context.Context, filter processo.ListFilter) ([]*processo.Processo, int64, error) {
	var out []*processo.Processo
	for _, p := range f.byNumero {
		if p.UserID == filter.UserID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProcessoRepo) FindWithDeadlinesBetween(ctx context.Context, from, to time.Time) ([]*processo.Processo, error) {
	var out []*processo.Processo
	for _, p := range f.byNumero {
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

func (f *fakeProcessoRepo) Delete(ctx context.Context, id, userID string) error {
	for k, p := range f.byNumero {
		if p.ID == id && p.UserID == userID {
			delete(f.byNumero, k)
			return nil
		}
	}
	return nil
}

type fakeAlertaRepo struct {
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
	return f.byKey[dedupKey(processoID, tipo, venc)], nil
}

func (f *fakeAlertaRepo) FindByID(ctx context.Context, id, userID string) (*alerta.Alerta, error) {
	for _, a := range f.byKey {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAlertaRepo) List(ctx context.Context, filter alerta.ListFilter) ([]*alerta.Alerta, int64, error) {
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

type fakeEventRepo struct {
	events []*domainIngestion.Event
}

func (f *fakeEventRepo) Record(ctx context.Context, e *domainIngestion.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) ListByProcesso(ctx context.Context, processoID string, limit int) ([]*domainIngestion.Event, error) {
	var out []*domainIngestion.Event
	for _, e := range f.events {
		if e.ProcessoID == processoID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{byEmail: make(map[string]*user.User)}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range f.byEmail {
		out = append(out, u)
	}
	return out, nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	f.published = append(f.published, eventType)
	return nil
}

//Personal.AI order the ending
