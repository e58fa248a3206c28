// Package consultas provides on-demand lookups of case metadata in the CNJ
// DataJud service, with a read-through cache in front of the upstream API.
package consultas

import (
	"context"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/external/datajud"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// Cache is the narrow slice of the redis cache the service needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Searcher is implemented by the DataJud client.
type Searcher interface {
	SearchByNumero(ctx context.Context, alias, numero string) (*datajud.Processo, error)
}

// cacheTTL bounds staleness of consultation results.  DataJud updates at
// most daily, so an hour is conservative.
const cacheTTL = time.Hour

// Service answers consultation requests.
type Service struct {
	client Searcher
	cache  Cache
	logger logging.Logger
}

// NewService creates the consultation service.  cache may be nil, which
// disables the read-through layer.
func NewService(client Searcher, cache Cache, logger logging.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Result is a consultation response.
type Result struct {
	Processo *datajud.Processo `json:"processo"`
	Cached   bool              `json:"cached"`
}

// Consultar looks a case number up in DataJud.  The number is validated
// against the CNJ format before going upstream.
func (s *Service) Consultar(ctx context.Context, numero string) (*Result, error) {
	if !processo.ValidNumero(numero) {
		return nil, errors.New(errors.CodeNumeroInvalid, "numero does not match the CNJ format")
	}

	cacheKey := "consulta:" + numero
	if s.cache != nil {
		var cached datajud.Processo
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &Result{Processo: &cached, Cached: true}, nil
		}
	}

	p, err := s.client.SearchByNumero(ctx, datajud.AliasForNumero(numero), numero)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, p, cacheTTL); err != nil {
			// Caching is opportunistic.
			s.logger.Warn("failed to cache consulta", logging.Err(err), logging.String("numero", numero))
		}
	}
	return &Result{Processo: p}, nil
}

//Personal.AI order the ending
