package alerting

import (
	"fmt"
	"time"
)

// Titles shown in the alert list.
const (
	TituloAudiencia     = "Audiência próxima"
	TituloPrazoRecurso  = "Prazo de recurso vencendo"
	TituloPrazoEmbargos = "Prazo de embargos vencendo"
	TituloDistribuicao  = "Processo distribuído recentemente"
	TituloMovimentacao  = "Nova movimentação processual"
)

const dateLayout = "02/01/2006"

// MensagemAudiencia formats the hearing reminder.
func MensagemAudiencia(numero string, data time.Time) string {
	return fmt.Sprintf("O processo %s tem audiência marcada para %s.", numero, data.Format(dateLayout))
}

// MensagemPrazoRecurso formats the appeal-deadline reminder.
func MensagemPrazoRecurso(numero string, data time.Time) string {
	return fmt.Sprintf("O prazo para recurso do processo %s vence em %s.", numero, data.Format(dateLayout))
}

// MensagemPrazoEmbargos formats the embargos-deadline reminder.
func MensagemPrazoEmbargos(numero string, data time.Time) string {
	return fmt.Sprintf("O prazo para embargos do processo %s vence em %s.", numero, data.Format(dateLayout))
}

// MensagemDistribuicao formats the recent-distribution notice.
func MensagemDistribuicao(numero string, data time.Time) string {
	return fmt.Sprintf("O processo %s foi distribuído em %s.", numero, data.Format(dateLayout))
}

// MensagemMovimentacao formats the new-movement notice raised by ingestion.
func MensagemMovimentacao(numero, descricao string) string {
	if descricao == "" {
		return fmt.Sprintf("O processo %s recebeu uma nova movimentação.", numero)
	}
	return fmt.Sprintf("O processo %s recebeu uma nova movimentação: %s", numero, descricao)
}

//Personal.AI order the ending
