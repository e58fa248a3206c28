// Package ingestion implements the email-derived process-update pipeline:
// recognising tribunal push notifications, extracting structured fields and
// movements, and reconciling them against the tracked processos.
package ingestion

import (
	"regexp"
	"strings"
	"time"
)

// EmailMessage is the inbound payload delivered by the mail webhook.
type EmailMessage struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// Movimento is one row of a notification's movement table.  Movements are
// transient: they drive processo updates and alerts within the request that
// parsed them, then are discarded.
type Movimento struct {
	Data      *time.Time `json:"data"`
	Descricao string     `json:"descricao"`
	Documento string     `json:"documento"`
}

// ParsedNotification is the structured extraction of one push notification.
// Every field except Numero is optional; Movimentos is always non-nil.
type ParsedNotification struct {
	Numero           string      `json:"numero"`
	PoloAtivo        string      `json:"polo_ativo"`
	PoloPassivo      string      `json:"polo_passivo"`
	Classe           string      `json:"classe"`
	Orgao            string      `json:"orgao"`
	DataAutuacao     *time.Time  `json:"data_autuacao"`
	TipoDistribuicao string      `json:"tipo_distribuicao"`
	Assunto          string      `json:"assunto"`
	Movimentos       []Movimento `json:"movimentos"`

	// Provenance of the notification.
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	ReceivedAt time.Time `json:"received_at"`
}

var (
	// The TRF1 automated notifier.  Messages from anyone else are ignored.
	senderPattern = regexp.MustCompile(`(?i)naoresponda\.pje\.push1@trf1\.jus\.br`)

	// Subject phrasing used by PJe Push movement notifications.  The phrase
	// must be followed by something, usually the case number itself.
	subjectPattern = regexp.MustCompile(`(?i)movimenta[çc][ãa]o\s+processual\s+do\s+processo\s+\S`)

	// CNJ unified case number, unanchored for free-text search.
	numeroSearch = regexp.MustCompile(`\d{7}-\d{2}\.\d{4}\.\d\.\d{2}\.\d{4}`)

	movementHeader = regexp.MustCompile(`(?i)^\s*Data\s+Movimento\s+Documento`)
	movementRow    = regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{4})\s*(.*)$`)
	dateToken      = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

	poloAtivoLabel    = labelPattern(`Polo\s+Ativo`)
	poloPassivoLabel  = labelPattern(`Polo\s+Passivo`)
	classeLabel       = labelPattern(`Classe\s+Judicial`)
	orgaoLabel        = labelPattern(`[ÓO]rg[ãa]o`)
	autuacaoLabel     = labelPattern(`Data\s+de\s+Autua[çc][ãa]o`)
	distribuicaoLabel = labelPattern(`Tipo\s+de\s+Distribui[çc][ãa]o`)
	assuntoLabel      = labelPattern(`Assunto`)
)

func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^\s*` + label + `\s*:\s*(.+)$`)
}

// dateLayouts are the accepted date spellings, tried in order.
var dateLayouts = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

// ParseDate tries the accepted layouts in order and returns nil when none
// match.  An unparseable date is never an error anywhere in the pipeline.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// Parse recognises and extracts a tribunal push notification.  It is a pure
// function over the message text with no side effects.
//
// It returns nil, not an error, when the sender or subject does not match
// the notifier signature, or when no process number can be found in either
// the subject or the body.  The subject is searched for the number first;
// the body is only a fallback.  Missing labelled fields are left empty.
func Parse(msg EmailMessage) *ParsedNotification {
	if !senderPattern.MatchString(msg.From) {
		return nil
	}
	if !subjectPattern.MatchString(msg.Subject) {
		return nil
	}

	numero := numeroSearch.FindString(msg.Subject)
	if numero == "" {
		numero = numeroSearch.FindString(msg.Body)
	}
	if numero == "" {
		return nil
	}

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")

	n := &ParsedNotification{
		Numero:           numero,
		PoloAtivo:        firstGroup(poloAtivoLabel, body),
		PoloPassivo:      firstGroup(poloPassivoLabel, body),
		Classe:           firstGroup(classeLabel, body),
		Orgao:            firstGroup(orgaoLabel, body),
		TipoDistribuicao: firstGroup(distribuicaoLabel, body),
		Assunto:          firstGroup(assuntoLabel, body),
		Movimentos:       parseMovimentos(body),
		From:             msg.From,
		Subject:          msg.Subject,
		ReceivedAt:       msg.ReceivedAt,
	}

	if raw := firstGroup(autuacaoLabel, body); raw != "" {
		n.DataAutuacao = ParseDate(raw)
		if n.DataAutuacao == nil {
			// The label line may carry a time suffix; retry on the first
			// bare date token.
			if tok := dateToken.FindString(raw); tok != "" {
				n.DataAutuacao = ParseDate(tok)
			}
		}
	}

	return n
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseMovimentos extracts the movement table: the block starts at the
// Data/Movimento/Documento header and ends at the first blank line or end of
// text.  Rows must start with a DD/MM/YYYY token; lines that do not are
// skipped silently.
func parseMovimentos(body string) []Movimento {
	movs := []Movimento{}
	inBlock := false
	for _, line := range strings.Split(body, "\n") {
		if !inBlock {
			if movementHeader.MatchString(line) {
				inBlock = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		m := movementRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		desc := m[2]
		doc := ""
		if i := strings.IndexByte(desc, '\t'); i >= 0 {
			doc = strings.TrimSpace(desc[i+1:])
			desc = desc[:i]
		}
		movs = append(movs, Movimento{
			Data:      ParseDate(m[1]),
			Descricao: strings.TrimSpace(desc),
			Documento: doc,
		})
	}
	return movs
}

//Personal.AI order the ending
