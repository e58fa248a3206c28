package ingestion

import (
	"strings"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/processo"
)

// Field names reported by the interpreter when a rule fires.
const (
	FieldPrazoRecurso     = "prazo_recurso"
	FieldPrazoEmbargos    = "prazo_embargos"
	FieldProximaAudiencia = "proxima_audiencia"
	FieldDataSentenca     = "data_sentenca"
)

// Rule maps a keyword group in movement text onto a processo date field.
// Rules are independent and non-exclusive: one movement description can
// trigger several rules.
type Rule struct {
	// Field is the stable name reported when the rule fires.
	Field string

	// Keywords match case-insensitively anywhere in the description.  List
	// both the accented and the plain spelling.
	Keywords []string

	// FromDescription selects where the date comes from.  True scans the
	// description for DD/MM/YYYY tokens strictly in the future, applying
	// each in order so the last future token wins.  False uses the
	// movement's own date column.
	FromDescription bool

	// Assign writes the chosen date onto the processo.
	Assign func(p *processo.Processo, d time.Time)
}

// DefaultRules returns the keyword heuristics for Brazilian procedural text.
// Matching on free-text legal terminology is best-effort by nature; rules
// are data so new heuristics slot in without touching reconciliation.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field:           FieldPrazoRecurso,
			Keywords:        []string{"prazo", "recurso"},
			FromDescription: true,
			Assign:          func(p *processo.Processo, d time.Time) { p.PrazoRecurso = &d },
		},
		{
			Field:           FieldPrazoEmbargos,
			Keywords:        []string{"embargos"},
			FromDescription: true,
			Assign:          func(p *processo.Processo, d time.Time) { p.PrazoEmbargos = &d },
		},
		{
			Field:           FieldProximaAudiencia,
			Keywords:        []string{"audiência", "audiencia"},
			FromDescription: true,
			Assign:          func(p *processo.Processo, d time.Time) { p.ProximaAudiencia = &d },
		},
		{
			Field:           FieldDataSentenca,
			Keywords:        []string{"sentença", "sentenca"},
			FromDescription: false,
			Assign:          func(p *processo.Processo, d time.Time) { p.DataSentenca = &d },
		},
	}
}

// Interpreter classifies movement descriptions and applies inferred dates to
// a processo.
type Interpreter struct {
	rules []Rule
}

// NewInterpreter builds an interpreter; with no rules it uses DefaultRules.
func NewInterpreter(rules ...Rule) *Interpreter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Interpreter{rules: rules}
}

// Interpret applies every rule to every movement and returns the set of
// field names that were written.  now anchors the strictly-in-the-future
// check for description-derived dates.
func (i *Interpreter) Interpret(p *processo.Processo, movs []Movimento, now time.Time) map[string]bool {
	changed := make(map[string]bool)
	for _, mov := range movs {
		desc := strings.ToLower(mov.Descricao)
		for _, rule := range i.rules {
			if !containsAny(desc, rule.Keywords) {
				continue
			}
			if !rule.FromDescription {
				if mov.Data != nil {
					rule.Assign(p, *mov.Data)
					changed[rule.Field] = true
				}
				continue
			}
			for _, tok := range dateToken.FindAllString(mov.Descricao, -1) {
				d := ParseDate(tok)
				if d == nil || !d.After(now) {
					continue
				}
				rule.Assign(p, *d)
				changed[rule.Field] = true
			}
		}
	}
	return changed
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
