// Package datajud implements a client for the CNJ DataJud public API, the
// national judiciary metadata service.  The API speaks the Elasticsearch
// search DSL over HTTPS with an APIKey authorization scheme.
package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// DefaultBaseURL is the public DataJud endpoint.
const DefaultBaseURL = "https://api-publica.datajud.cnj.jus.br"

// AliasTRF1 is the search alias for TRF1 cases, the tribunal whose push
// notifications this system ingests.  It is the fallback when an alias
// cannot be derived from a case number.
const AliasTRF1 = "api_publica_trf1"

// numeroSegments captures the J (justice segment) and TR (tribunal) fields
// of a formatted CNJ number, NNNNNNN-DD.AAAA.J.TR.OOOO.
var numeroSegments = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.(\d)\.(\d{2})\.\d{4}$`)

// ufByTribunal maps the TR field of state-court numbers to the state
// acronym used in the DataJud aliases.  The codes follow the alphabetical
// UF ordering of the CNJ numbering resolution.
var ufByTribunal = map[string]string{
	"01": "ac", "02": "al", "03": "ap", "04": "am", "05": "ba",
	"06": "ce", "07": "df", "08": "es", "09": "go", "10": "ma",
	"11": "mt", "12": "ms", "13": "mg", "14": "pa", "15": "pb",
	"16": "pr", "17": "pe", "18": "pi", "19": "rj", "20": "rn",
	"21": "rs", "22": "ro", "23": "rr", "24": "sc", "25": "se",
	"26": "sp", "27": "to",
}

// AliasForNumero derives the DataJud search alias from a case number's
// segment and tribunal fields: federal regions map to api_publica_trf1..6,
// labor to api_publica_tst / api_publica_trt1..24, states to
// api_publica_tj<uf>, the STJ to its own alias.  Numbers that do not match
// the formatted CNJ shape, or combinations DataJud does not index, fall
// back to AliasTRF1.
func AliasForNumero(numero string) string {
	m := numeroSegments.FindStringSubmatch(numero)
	if m == nil {
		return AliasTRF1
	}
	tr, err := strconv.Atoi(m[2])
	if err != nil {
		return AliasTRF1
	}
	switch m[1] {
	case "3":
		return "api_publica_stj"
	case "4":
		if tr >= 1 && tr <= 6 {
			return fmt.Sprintf("api_publica_trf%d", tr)
		}
	case "5":
		if tr == 0 {
			return "api_publica_tst"
		}
		if tr >= 1 && tr <= 24 {
			return fmt.Sprintf("api_publica_trt%d", tr)
		}
	case "8":
		if uf, ok := ufByTribunal[m[2]]; ok {
			return "api_publica_tj" + uf
		}
	}
	return AliasTRF1
}

// Config carries the client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client queries DataJud.  Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     logging.Logger
}

// NewClient builds a DataJud client.
func NewClient(cfg Config, logger logging.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// Movimento is one movement entry as recorded by the tribunal.
type Movimento struct {
	Nome     string     `json:"nome"`
	DataHora *time.Time `json:"data_hora"`
}

// Processo is a DataJud hit normalized into the internal shape.
type Processo struct {
	Numero            string      `json:"numero"`
	Classe            string      `json:"classe"`
	Assunto           string      `json:"assunto"`
	Tribunal          string      `json:"tribunal"`
	OrgaoJulgador     string      `json:"orgao_julgador"`
	Grau              string      `json:"grau"`
	DataAjuizamento   *time.Time  `json:"data_ajuizamento"`
	UltimaAtualizacao *time.Time  `json:"ultima_atualizacao"`
	Movimentos        []Movimento `json:"movimentos"`
}

var nonDigits = regexp.MustCompile(`\D`)

// searchRequest is the Elasticsearch query DataJud expects: an exact match
// on the unformatted process number.
type searchRequest struct {
	Query struct {
		Match struct {
			NumeroProcesso string `json:"numeroProcesso"`
		} `json:"match"`
	} `json:"query"`
	Size int `json:"size"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source hitSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type hitSource struct {
	NumeroProcesso string `json:"numeroProcesso"`
	Tribunal       string `json:"tribunal"`
	Grau           string `json:"grau"`
	Classe         struct {
		Nome string `json:"nome"`
	} `json:"classe"`
	Assuntos []struct {
		Nome string `json:"nome"`
	} `json:"assuntos"`
	OrgaoJulgador struct {
		Nome string `json:"nome"`
	} `json:"orgaoJulgador"`
	DataAjuizamento           string `json:"dataAjuizamento"`
	DataHoraUltimaAtualizacao string `json:"dataHoraUltimaAtualizacao"`
	Movimentos                []struct {
		Nome     string `json:"nome"`
		DataHora string `json:"dataHora"`
	} `json:"movimentos"`
}

// SearchByNumero looks a case up by its CNJ number under the given tribunal
// alias.  The number may be formatted or bare digits.
func (c *Client) SearchByNumero(ctx context.Context, alias, numero string) (*Processo, error) {
	digits := nonDigits.ReplaceAllString(numero, "")
	if digits == "" {
		return nil, errors.InvalidParam("numero must contain digits")
	}
	if alias == "" {
		alias = AliasTRF1
	}

	var req searchRequest
	req.Query.Match.NumeroProcesso = digits
	req.Size = 1

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSerialization, "failed to encode search request")
	}

	url := fmt.Sprintf("%s/%s/_search", c.baseURL, alias)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "APIKey "+c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataJudUnavailable, "datajud request failed")
	}
	defer resp.Body.Close()

	c.logger.Debug("datajud search",
		logging.String("alias", alias),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.New(errors.CodeDataJudAuthFailed, "datajud rejected the API key")
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.CodeDataJudUnavailable,
			fmt.Sprintf("datajud returned status %d", resp.StatusCode))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataJudUnavailable, "failed to read datajud response")
	}

	var sr searchResponse
	if err := json.Unmarshal(payload, &sr); err != nil {
		return nil, errors.Wrap(err, errors.CodeDataJudParseError, "failed to decode datajud response")
	}
	if len(sr.Hits.Hits) == 0 {
		return nil, errors.New(errors.CodeDataJudNoResults, "no datajud record for "+numero)
	}

	return normalize(sr.Hits.Hits[0].Source), nil
}

// normalize flattens a DataJud hit into the internal processo shape.  The
// first listed assunto is taken as the primary subject.
func normalize(src hitSource) *Processo {
	p := &Processo{
		Numero:            src.NumeroProcesso,
		Tribunal:          src.Tribunal,
		Grau:              src.Grau,
		Classe:            src.Classe.Nome,
		OrgaoJulgador:     src.OrgaoJulgador.Nome,
		DataAjuizamento:   parseTimestamp(src.DataAjuizamento),
		UltimaAtualizacao: parseTimestamp(src.DataHoraUltimaAtualizacao),
	}
	if len(src.Assuntos) > 0 {
		p.Assunto = src.Assuntos[0].Nome
	}
	for _, m := range src.Movimentos {
		p.Movimentos = append(p.Movimentos, Movimento{
			Nome:     m.Nome,
			DataHora: parseTimestamp(m.DataHora),
		})
	}
	return p
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

//Personal.AI order the ending
